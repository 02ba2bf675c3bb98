package router

import (
	"net/http"
	"strings"

	"menu-price-map/app/controller"
)

type Controllers struct {
	Session *controller.SessionController
	Map     *controller.MapController
	Menu    *controller.MenuController
	Layer   *controller.LayerController
	Admin   *controller.AdminController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Map page
	mux.HandleFunc("/", controllers.Map.Home)
	mux.HandleFunc("/map", controllers.Map.Page)
	mux.HandleFunc("/map/snapshot.png", controllers.Map.Snapshot)

	// Brands and menu panel
	mux.HandleFunc("/brands", controllers.Menu.Brands)
	mux.HandleFunc("/menu/categories", controllers.Menu.Categories)
	mux.HandleFunc("/menu/search", controllers.Menu.Search)
	mux.HandleFunc("/menu/item-image", controllers.Menu.ItemImage)

	// Auxiliary layers
	mux.HandleFunc("/layers/colleges", controllers.Layer.Colleges)
	mux.HandleFunc("/layers/poverty/states", controllers.Layer.StatePoverty)
	mux.HandleFunc("/layers/poverty/counties", controllers.Layer.CountyPoverty)
	mux.HandleFunc("/layers/boundaries/states", controllers.Layer.StateBoundaries)
	mux.HandleFunc("/layers/boundaries/counties", controllers.Layer.CountyBoundaries)
	mux.HandleFunc("/legend", controllers.Layer.Legend)
	mux.HandleFunc("/legend.png", controllers.Layer.LegendPNG)

	// Admin
	mux.HandleFunc("/admin/datasets/reload", controllers.Admin.Reload)
	mux.HandleFunc("/admin/datasets/import", controllers.Admin.Import)
	mux.HandleFunc("/admin/feeds", controllers.Admin.Feeds)
	mux.HandleFunc("/admin/feeds/sync", controllers.Admin.SyncFeeds)

	// Sessions
	mux.HandleFunc("/sessions", controllers.Session.Create)

	// Session actions (everything under /sessions/:id)
	mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sessions/"), "/")
		if path == "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		// Route to specific actions first
		if strings.HasSuffix(path, "/order/increment") {
			controllers.Session.Increment(w, r)
			return
		}
		if strings.HasSuffix(path, "/order/decrement") {
			controllers.Session.Decrement(w, r)
			return
		}
		if strings.HasSuffix(path, "/order/clear") {
			controllers.Session.Clear(w, r)
			return
		}
		if strings.HasSuffix(path, "/brand") {
			controllers.Session.SwitchBrand(w, r)
			return
		}
		if strings.HasSuffix(path, "/pricing") {
			controllers.Session.Pricing(w, r)
			return
		}
		// Handle GET /sessions/:id/stores/:storeId/breakdown
		if strings.Contains(path, "/stores/") && strings.HasSuffix(path, "/breakdown") {
			controllers.Session.Breakdown(w, r)
			return
		}
		if strings.HasSuffix(path, "/markers") {
			controllers.Map.Markers(w, r)
			return
		}
		if strings.HasSuffix(path, "/heat") {
			controllers.Map.Heat(w, r)
			return
		}

		// Otherwise, treat as GET /sessions/:id
		if !strings.Contains(path, "/") {
			controllers.Session.Get(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
