// Package routes wires handlers onto the router in named groups.
package routes

import (
	"net/http"

	"github.com/duvindu/saffron/internal/handler/admin"
	"github.com/duvindu/saffron/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for the customer-facing routes.
type StorefrontDeps struct {
	HomeHandler http.Handler

	ProductHandler  *storefront.ProductHandler
	CartHandler     *storefront.CartHandler
	CurrencyHandler *storefront.CurrencyHandler
	CheckoutHandler *storefront.CheckoutHandler
	TrackingHandler *storefront.TrackingHandler
	ContactHandler  *storefront.ContactHandler
}

// AdminDeps contains dependencies for the back-office routes.
type AdminDeps struct {
	AuthHandler      *admin.AuthHandler
	DashboardHandler http.Handler
	ProductHandler   *admin.ProductHandler
	OrderHandler     *admin.OrderHandler
	MessageHandler   *admin.MessageHandler
	CustomerHandler  *admin.CustomerHandler
}
