package router

import (
	"net/http"

	"github.com/GameIsFlash/Purchase-Generator/app/controller"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Controllers struct {
	Catalog    *controller.CatalogController
	Order      *controller.OrderController
	Generation *controller.GenerationController
	Image      *controller.ImageController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the HTTP handler for all endpoints
func SetupRoutes(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	// Catalog
	r.Get("/catalog/search", controllers.Catalog.Search)
	r.Post("/catalog/reload", controllers.Catalog.Reload)
	r.Put("/settings/paths", controllers.Catalog.UpdatePaths)

	// Order
	r.Route("/order", func(r chi.Router) {
		r.Get("/", controllers.Order.GetOrder)
		r.Post("/items", controllers.Order.AddItem)
		r.Delete("/items/{article}", controllers.Order.RemoveItem)
		r.Put("/items/{article}/quantity", controllers.Order.SetQuantity)
		r.Post("/items/{article}/toggle", controllers.Order.ToggleItem)
		r.Put("/items/{article}/supplier", controllers.Order.SetSupplier)
		r.Post("/default", controllers.Order.LoadDefault)
		r.Post("/clear", controllers.Order.Clear)
		r.Get("/export", controllers.Order.Export)
		r.Post("/import", controllers.Order.Import)
	})

	// Generation
	r.Post("/generate/purchase", controllers.Generation.StartPurchase)
	r.Post("/generate/availability", controllers.Generation.StartAvailability)
	r.Get("/jobs/{id}", controllers.Generation.GetJob)

	// Images
	r.Post("/images/sync", controllers.Image.SyncImages)

	return r
}
