package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jkmondal/shopline-backend/api/controllers"
	"github.com/jkmondal/shopline-backend/api/middleware"
	authsvc "github.com/jkmondal/shopline-backend/internal/auth"
	"github.com/jkmondal/shopline-backend/internal/cart"
	"github.com/jkmondal/shopline-backend/internal/media"
	"github.com/jkmondal/shopline-backend/internal/orders"
	"github.com/jkmondal/shopline-backend/internal/products"
	"github.com/jkmondal/shopline-backend/internal/users"
	"github.com/jkmondal/shopline-backend/internal/wishlist"
	"github.com/jkmondal/shopline-backend/pkg/config"
	"github.com/jkmondal/shopline-backend/pkg/db"
	"github.com/jkmondal/shopline-backend/pkg/logger"
	"github.com/jkmondal/shopline-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth     authsvc.Service
	Users    users.Service
	Products products.Service
	Cart     cart.Service
	Orders   orders.Service
	Wishlist wishlist.Service
	Media    media.Service
}

func passThrough(next http.Handler) http.Handler { return next }

// NewRouter assembles the full HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginLimit := passThrough
	signupLimit := passThrough
	if redisClient != nil {
		loginPolicy := middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginEmailLimit,
		)
		signupPolicy := middleware.NewAuthRateLimitPolicy(
			"signup",
			cfg.AuthRateLimit.SignupWindow,
			cfg.AuthRateLimit.SignupIPLimit,
			cfg.AuthRateLimit.SignupEmailLimit,
		)
		loginLimit = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		signupLimit = middleware.AuthRateLimit(signupPolicy, redisClient, logg)
	}

	requireAuth := middleware.Auth(cfg.JWT, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Health())
		r.Get("/ready", controllers.Ready(dbClient, redisClient, logg))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.With(signupLimit).Post("/signup", controllers.Signup(svcs.Auth, svcs.Media, logg))
		r.With(loginLimit).Post("/login", controllers.Login(svcs.Auth, logg))

		r.Get("/{userID}", controllers.GetUser(svcs.Users, logg))
		r.Get("/list/{userID}", controllers.WishlistEntries(svcs.Wishlist, logg))
		r.Get("/product/cart/{userID}", controllers.GetCart(svcs.Cart, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Patch("/{userID}", controllers.UpdateProfile(svcs.Users, logg))
			r.Post("/cart/add", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/cart/increase-quantity", controllers.CartIncreaseQuantity(svcs.Cart, logg))
			r.Patch("/cart/decrease-quantity", controllers.CartDecreaseQuantity(svcs.Cart, logg))
			r.Delete("/{userID}/cart/{productID}", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Post("/wishlist", controllers.WishlistAddItem(svcs.Wishlist, logg))
			r.Delete("/wishlist/{entryID}", controllers.WishlistRemoveItem(svcs.Wishlist, logg))
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(svcs.Products, logg))
		r.Get("/{productID}", controllers.GetProduct(svcs.Products, logg))
		r.Get("/user/{userID}", controllers.ListProductsByCreator(svcs.Products, logg))
		r.Get("/comments/{productID}", controllers.ListComments(svcs.Products, logg))
		r.Post("/comments/add", controllers.AddComment(svcs.Products, logg))

		r.Get("/order/{userID}", controllers.ListOrders(svcs.Orders, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/order/{userID}", controllers.Checkout(svcs.Orders, logg))
			r.Delete("/order/{orderID}", controllers.CancelOrder(svcs.Orders, logg))
			r.Get("/user/{userID}/orders/{orderID}", controllers.OrderInvoice(svcs.Orders, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/users", controllers.ListUsers(svcs.Users, logg))
		r.Get("/", controllers.ListProducts(svcs.Products, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireRole("admin", logg))
			r.Post("/create-product", controllers.AdminCreateProduct(svcs.Products, svcs.Media, logg))
			r.Patch("/{productID}", controllers.AdminUpdateProduct(svcs.Products, svcs.Media, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(svcs.Products, logg))
		})

		r.Get("/{productID}", controllers.GetProduct(svcs.Products, logg))
	})

	// Locally stored upload images are served straight off disk.
	if strings.EqualFold(cfg.Media.Backend, "local") || cfg.Media.Backend == "" {
		prefix := strings.TrimSuffix(cfg.Media.PublicBaseURL, "/")
		if prefix != "" && strings.HasPrefix(prefix, "/") {
			fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.Media.LocalDir)))
			r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
				fs.ServeHTTP(w, req)
			})
		}
	}

	return r
}
