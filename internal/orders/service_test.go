package orders

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/cart"
	"github.com/jkmondal/shopline-backend/internal/products"
	"github.com/jkmondal/shopline-backend/internal/users"
	"github.com/jkmondal/shopline-backend/pkg/db"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/logger"
)

type orderTestEnv struct {
	svc     Service
	cartSvc cart.Service
	conn    *gorm.DB
}

func setupOrderTest(t *testing.T) orderTestEnv {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	client := db.NewFromConn(conn)

	cartSvc, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cart.NewRepository(conn),
		ProductRepo: products.NewRepository(conn),
		DB:          client,
	})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		OrderRepo: NewRepository(conn),
		CartRepo:  cart.NewRepository(conn),
		UserRepo:  users.NewRepository(conn),
		DB:        client,
		Logger:    logger.Nop(),
	})
	require.NoError(t, err)

	return orderTestEnv{svc: svc, cartSvc: cartSvc, conn: conn}
}

func seedUser(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Shopper",
		Email:        email,
		PasswordHash: "x",
		Role:         "shopper",
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func seedCatalogProduct(t *testing.T, conn *gorm.DB, title string, priceCents int) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:       title,
		Author:      "Author",
		Description: "desc",
		Category:    "books",
		Stock:       "10",
		PriceCents:  priceCents,
		CreatorID:   uuid.New(),
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestCheckoutSnapshotsCartAndClearsIt(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()
	user := seedUser(t, env.conn, "buyer@example.com")
	tenDollar := seedCatalogProduct(t, env.conn, "Widget", 1000)
	fiveDollar := seedCatalogProduct(t, env.conn, "Gadget", 500)

	require.NoError(t, env.cartSvc.AddItem(ctx, user.ID, tenDollar.ID))
	require.NoError(t, env.cartSvc.IncreaseQuantity(ctx, user.ID, tenDollar.ID))
	require.NoError(t, env.cartSvc.AddItem(ctx, user.ID, fiveDollar.ID))

	order, err := env.svc.Checkout(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2500, order.TotalCents)
	assert.Equal(t, user.Email, order.UserEmail)
	require.Len(t, order.Items, 2)

	dto, err := env.cartSvc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, dto.Items, "cart must be empty after checkout")
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	env := setupOrderTest(t)
	user := seedUser(t, env.conn, "empty@example.com")

	_, err := env.svc.Checkout(context.Background(), user.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutUnknownUser(t *testing.T) {
	env := setupOrderTest(t)

	_, err := env.svc.Checkout(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestOrderTotalSurvivesPriceChange(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()
	user := seedUser(t, env.conn, "frozen@example.com")
	product := seedCatalogProduct(t, env.conn, "Widget", 1000)

	require.NoError(t, env.cartSvc.AddItem(ctx, user.ID, product.ID))
	order, err := env.svc.Checkout(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1000, order.TotalCents)

	require.NoError(t, env.conn.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price_cents", 9999).Error)

	list, err := env.svc.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, 1000, list.Orders[0].TotalCents)
	assert.Equal(t, 1000, list.TotalCents)
}

func TestListOrdersGrandTotal(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()
	user := seedUser(t, env.conn, "totals@example.com")
	product := seedCatalogProduct(t, env.conn, "Widget", 750)

	require.NoError(t, env.cartSvc.AddItem(ctx, user.ID, product.ID))
	_, err := env.svc.Checkout(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, env.cartSvc.AddItem(ctx, user.ID, product.ID))
	require.NoError(t, env.cartSvc.IncreaseQuantity(ctx, user.ID, product.ID))
	_, err = env.svc.Checkout(ctx, user.ID)
	require.NoError(t, err)

	list, err := env.svc.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, 750+1500, list.TotalCents)
}

func TestCancelOrderDeletesIt(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()
	user := seedUser(t, env.conn, "cancel@example.com")
	product := seedCatalogProduct(t, env.conn, "Widget", 1000)

	require.NoError(t, env.cartSvc.AddItem(ctx, user.ID, product.ID))
	order, err := env.svc.Checkout(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.CancelOrder(ctx, user.ID, order.ID))

	list, err := env.svc.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Orders)
}

func TestCancelUnknownOrder(t *testing.T) {
	env := setupOrderTest(t)

	err := env.svc.CancelOrder(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestInvoiceRequiresOwnership(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()
	owner := seedUser(t, env.conn, "owner@example.com")
	other := seedUser(t, env.conn, "other@example.com")
	product := seedCatalogProduct(t, env.conn, "Widget", 1000)

	require.NoError(t, env.cartSvc.AddItem(ctx, owner.ID, product.ID))
	order, err := env.svc.Checkout(ctx, owner.ID)
	require.NoError(t, err)

	_, _, err = env.svc.Invoice(ctx, other.ID, order.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestInvoiceRendersPDF(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()
	user := seedUser(t, env.conn, "pdf@example.com")
	product := seedCatalogProduct(t, env.conn, "Widget", 1234)

	require.NoError(t, env.cartSvc.AddItem(ctx, user.ID, product.ID))
	order, err := env.svc.Checkout(ctx, user.ID)
	require.NoError(t, err)

	pdf, filename, err := env.svc.Invoice(ctx, user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-"+order.ID.String()+".pdf", filename)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "invoice must be a PDF document")
}
