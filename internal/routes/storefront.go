package routes

import (
	"github.com/duvindu/saffron/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Home page
	r.Get("/{$}", deps.HomeHandler.ServeHTTP)

	// Product browsing
	r.Get("/products", deps.ProductHandler.List)
	r.Get("/products/{slug}", deps.ProductHandler.Detail)

	// Shopping cart
	r.Get("/cart", deps.CartHandler.View)
	r.Post("/cart/add", deps.CartHandler.Add)
	r.Post("/cart/update", deps.CartHandler.Update)
	r.Post("/cart/remove", deps.CartHandler.Remove)

	// Display currency
	r.Post("/currency", deps.CurrencyHandler.Select)

	// Checkout flow
	r.Get("/checkout", deps.CheckoutHandler.Page)
	r.Post("/checkout/payment-intent", deps.CheckoutHandler.CreatePaymentIntent)
	r.Post("/checkout/complete", deps.CheckoutHandler.Complete)
	r.Get("/order-confirmation", deps.CheckoutHandler.Confirmation)

	// Order tracking
	r.Get("/orders/track", deps.TrackingHandler.Form)
	r.Post("/orders/track", deps.TrackingHandler.Lookup)

	// Contact
	r.Get("/contact", deps.ContactHandler.Form)
	r.Post("/contact", deps.ContactHandler.Submit)
}
