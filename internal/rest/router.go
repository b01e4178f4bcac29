package rest

import (
	"net/http"

	"storefront-be/internal/logger"
	mw "storefront-be/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	JWTSecret  string
	CORSOrigin string
	Limiter    *mw.RateLimiter
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(mw.CORS(cfg.CORSOrigin))
	r.Use(mw.AuthMiddleware(cfg.JWTSecret))
	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Middleware)
	}

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Route("/product", func(r chi.Router) {
			r.Get("/list", h.ListProducts)
			r.Post("/single", h.SingleProduct)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin)
				r.Post("/add", h.AddProduct)
				r.Post("/update", h.UpdateProduct)
				r.Post("/remove", h.RemoveProduct)
				r.Post("/update-discount", h.UpdateProductDiscount)
			})
		})

		r.Route("/maxDiscount", func(r chi.Router) {
			r.Get("/get", h.GetMaxDiscount)
			r.With(mw.RequireAdmin).Post("/update", h.UpdateMaxDiscount)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Post("/add", h.AddToCart)
			r.Post("/update", h.UpdateCart)
			r.Post("/get", h.GetCart)
			r.Get("/get", h.GetCart)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Post("/toggle", h.ToggleWishlist)
			r.Get("/", h.GetWishlist)
		})

		r.Route("/order", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth)
				r.Post("/place", h.PlaceOrder)
				r.Post("/userorders", h.UserOrders)
				r.Post("/cancel", h.CancelOrder)
				r.Put("/update", h.UpdateOrderDetails)
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin)
				r.Post("/list", h.AllOrders)
				r.Post("/status", h.UpdateOrderStatus)
				r.Put("/admin/update", h.AdminUpdateOrderDetails)
			})
		})
	})

	return r
}
