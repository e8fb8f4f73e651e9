package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/products"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

func setupWishlistTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.WishlistEntry{}))

	svc, err := NewService(ServiceParams{
		WishlistRepo: NewRepository(conn),
		ProductRepo:  products.NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, conn
}

func seedWishProduct(t *testing.T, conn *gorm.DB, title string, priceCents int) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:       title,
		Author:      "Author",
		Description: "desc",
		Category:    "books",
		Stock:       "3",
		PriceCents:  priceCents,
		CreatorID:   uuid.New(),
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestWishlistAddSnapshotsProduct(t *testing.T) {
	svc, conn := setupWishlistTest(t)
	userID := uuid.New()
	product := seedWishProduct(t, conn, "Widget", 1000)

	entry, err := svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Title, entry.Title)
	assert.Equal(t, product.PriceCents, entry.PriceCents)
	assert.NotEqual(t, uuid.Nil, entry.ID)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc, _ := setupWishlistTest(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestWishlistEntrySurvivesProductDeletion(t *testing.T) {
	svc, conn := setupWishlistTest(t)
	ctx := context.Background()
	userID := uuid.New()
	product := seedWishProduct(t, conn, "Ephemeral", 500)

	entry, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	require.NoError(t, conn.Delete(&models.Product{}, "id = ?", product.ID).Error)

	entries, err := svc.ListEntries(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "Ephemeral", entries[0].Title)
	assert.Equal(t, 500, entries[0].PriceCents)
}

func TestWishlistRemoveRequiresOwnership(t *testing.T) {
	svc, conn := setupWishlistTest(t)
	ctx := context.Background()
	owner := uuid.New()
	product := seedWishProduct(t, conn, "Guarded", 500)

	entry, err := svc.AddItem(ctx, owner, product.ID)
	require.NoError(t, err)

	err = svc.RemoveItem(ctx, uuid.New(), entry.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	require.NoError(t, svc.RemoveItem(ctx, owner, entry.ID))

	entries, err := svc.ListEntries(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
