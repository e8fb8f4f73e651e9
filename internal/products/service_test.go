package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/users"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	"github.com/jkmondal/shopline-backend/pkg/enums"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

func setupProductTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Product{}, &models.Comment{}))

	svc, err := NewService(ServiceParams{
		ProductRepo: NewRepository(conn),
		UserRepo:    users.NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, conn
}

func adminActor() Actor {
	return Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Title:       "Widget",
		Author:      "Maker",
		Description: "a widget",
		Category:    "tools",
		Stock:       "7",
		PriceCents:  1500,
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	svc, _ := setupProductTest(t)

	_, err := svc.CreateProduct(context.Background(), Actor{UserID: uuid.New(), Role: enums.UserRoleShopper}, validInput())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestCreateProductRequiresAuthentication(t *testing.T) {
	svc, _ := setupProductTest(t)

	_, err := svc.CreateProduct(context.Background(), Actor{}, validInput())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestCreateProductSetsCreator(t *testing.T) {
	svc, _ := setupProductTest(t)
	actor := adminActor()

	product, err := svc.CreateProduct(context.Background(), actor, validInput())
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, product.CreatorID)
	assert.Equal(t, "Widget", product.Title)
	assert.Equal(t, 1500, product.PriceCents)

	list, err := svc.ListByCreator(context.Background(), actor.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestUpdateProductOnlyByCreator(t *testing.T) {
	svc, _ := setupProductTest(t)
	ctx := context.Background()
	creator := adminActor()

	product, err := svc.CreateProduct(ctx, creator, validInput())
	require.NoError(t, err)

	otherAdmin := adminActor()
	newTitle := "Renamed"
	_, err = svc.UpdateProduct(ctx, otherAdmin, product.ID, UpdateProductInput{Title: &newTitle})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	updated, err := svc.UpdateProduct(ctx, creator, product.ID, UpdateProductInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestUpdateProductRejectsNegativePrice(t *testing.T) {
	svc, _ := setupProductTest(t)
	ctx := context.Background()
	creator := adminActor()

	product, err := svc.CreateProduct(ctx, creator, validInput())
	require.NoError(t, err)

	bad := -1
	_, err = svc.UpdateProduct(ctx, creator, product.ID, UpdateProductInput{PriceCents: &bad})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteProductOnlyByCreator(t *testing.T) {
	svc, _ := setupProductTest(t)
	ctx := context.Background()
	creator := adminActor()

	product, err := svc.CreateProduct(ctx, creator, validInput())
	require.NoError(t, err)

	err = svc.DeleteProduct(ctx, adminActor(), product.ID)
	require.Error(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, creator, product.ID))

	_, err = svc.GetProduct(ctx, product.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAddCommentToMissingProduct(t *testing.T) {
	svc, _ := setupProductTest(t)

	_, err := svc.AddComment(context.Background(), CreateCommentInput{
		ProductID:   uuid.New(),
		Title:       "great",
		Description: "really great",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCommentsRoundTrip(t *testing.T) {
	svc, _ := setupProductTest(t)
	ctx := context.Background()
	creator := adminActor()

	product, err := svc.CreateProduct(ctx, creator, validInput())
	require.NoError(t, err)

	created, err := svc.AddComment(ctx, CreateCommentInput{
		ProductID:   product.ID,
		Title:       "solid",
		Description: "does what it says",
	})
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, created.ID, comments[0].ID)
	assert.Equal(t, "solid", comments[0].Title)
}
