package routes

import (
	"github.com/duvindu/saffron/internal/router"
)

// RegisterAdminRoutes registers the back-office routes. Everything except
// the login page goes through the gate middleware; the login POST carries
// its own stricter rate limit.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps, gate, loginLimit router.Middleware) {
	// Login is outside the gate.
	r.Get("/admin/login", deps.AuthHandler.LoginForm)
	r.Post("/admin/login", deps.AuthHandler.Login, loginLimit)

	g := r.Group(gate)

	g.Get("/admin", deps.DashboardHandler.ServeHTTP)
	g.Post("/admin/logout", deps.AuthHandler.Logout)

	// Catalog
	g.Get("/admin/products", deps.ProductHandler.List)
	g.Get("/admin/products/new", deps.ProductHandler.NewForm)
	g.Post("/admin/products", deps.ProductHandler.Create)
	g.Get("/admin/products/{id}/edit", deps.ProductHandler.EditForm)
	g.Post("/admin/products/{id}", deps.ProductHandler.Update)
	g.Post("/admin/products/{id}/archive", deps.ProductHandler.Archive)

	// Orders
	g.Get("/admin/orders", deps.OrderHandler.List)
	g.Get("/admin/orders/{id}", deps.OrderHandler.Detail)
	g.Post("/admin/orders/{id}/status", deps.OrderHandler.UpdateStatus)

	// Messages
	g.Get("/admin/messages", deps.MessageHandler.List)
	g.Post("/admin/messages/{id}/handled", deps.MessageHandler.MarkHandled)

	// Customers
	g.Get("/admin/customers", deps.CustomerHandler.List)
}
