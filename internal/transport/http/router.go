package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/storefront-api/internal/application/auth"
	"github.com/storefront-api/internal/application/category"
	fileapp "github.com/storefront-api/internal/application/file"
	"github.com/storefront-api/internal/application/order"
	"github.com/storefront-api/internal/application/otp"
	"github.com/storefront-api/internal/application/product"
	"github.com/storefront-api/internal/application/settings"
	"github.com/storefront-api/internal/application/stats"
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/transport/http/handler"
	appmiddleware "github.com/storefront-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	adminMw := appmiddleware.RequireRole(domain.RoleAdmin)

	// 5 requests/second, burst of 10. Applied to the credential endpoints so a
	// single client cannot brute-force codes or passwords.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(otp.ServiceDeps{OtpRepo: deps.OtpRepo, TTL: cfg.OtpTTL})
	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo: deps.UserRepo,
		OtpSvc:   otpSvc,
		Mailer:   deps.Mailer,
		Signer:   deps.JWTProvider,
		OtpTTL:   cfg.OtpTTL,
	})
	productSvc := product.NewService(deps.ProductRepo)
	categorySvc := category.NewService(deps.CategoryRepo)
	orderSvc := order.NewService(deps.OrderRepo, deps.SMSSender)
	settingsSvc := settings.NewService(deps.SettingRepo)
	fileSvc := fileapp.NewService(deps.S3Store, deps.UploadRepo)
	statsSvc := stats.NewService(deps.ProductRepo, deps.CategoryRepo, deps.OrderRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(productSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	orderH := handler.NewOrderHandler(orderSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	uploadH := handler.NewUploadHandler(fileSvc)
	statsH := handler.NewStatsHandler(statsSvc)

	r.Route("/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOtp)
		r.With(sensitiveRL.Limit).Post("/auth/resend-otp", authH.Resend)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)

		r.Get("/products", productH.List)
		r.Get("/products/slug/{slug}", productH.GetBySlug)
		r.Get("/products/{id}", productH.Get)
		r.Get("/categories", categoryH.List)
		r.Get("/categories/{id}", categoryH.Get)
		r.Get("/settings", settingsH.Get)
		r.Post("/orders", orderH.Create)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/me", authH.Me)
			r.Put("/auth/profile", authH.UpdateProfile)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(adminMw)

				r.Post("/products", productH.Create)
				r.Put("/products/{id}", productH.Update)
				r.Delete("/products/{id}", productH.Delete)

				r.Post("/categories", categoryH.Create)
				r.Post("/categories/reorder", categoryH.Reorder)
				r.Put("/categories/{id}", categoryH.Update)
				r.Delete("/categories/{id}", categoryH.Delete)

				r.Put("/settings", settingsH.Update)

				r.Get("/orders", orderH.List)
				r.Put("/orders/{id}/status", orderH.UpdateStatus)

				r.Post("/upload", uploadH.Upload)
				r.Get("/admin/stats", statsH.Summary)
			})
		})
	})

	return r
}
