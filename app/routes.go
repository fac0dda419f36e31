package app

import (
	"github.com/km-arc/payload-validator/app/controllers"
	"github.com/km-arc/payload-validator/framework/routing"
)

// RegisterRoutes mounts the HTTP API (the routes/api.php of this service).
func RegisterRoutes(r *routing.Router, validation *controllers.ValidationController) {
	r.Get("/health", validation.Health)

	r.Prefix("/api", func(api *routing.Router) {
		api.Post("/validate", validation.Validate)
		api.Get("/rules", validation.Rules)
	})
}
