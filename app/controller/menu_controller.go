package controller

import (
	"log"
	"net/http"

	"menu-price-map/models"
	"menu-price-map/service"
)

// MenuController handles HTTP requests for brands and the menu panel
type MenuController struct {
	menu     *service.MenuService
	datasets service.DatasetServiceInterface
	sessions service.SessionServiceInterface
}

// NewMenuController creates a new MenuController
func NewMenuController(menu *service.MenuService, datasets service.DatasetServiceInterface, sessions service.SessionServiceInterface) *MenuController {
	return &MenuController{menu: menu, datasets: datasets, sessions: sessions}
}

// Brands handles GET /brands
func (c *MenuController) Brands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	brands, err := c.datasets.Brands()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

// sessionOrder returns the order of the ?session= session, or nil when absent or unknown
func (c *MenuController) sessionOrder(r *http.Request) models.Order {
	id := r.URL.Query().Get("session")
	if id == "" {
		return nil
	}
	state, err := c.sessions.State(id)
	if err != nil {
		log.Printf("⚠️  Menu: ignoring session %s: %v", id, err)
		return nil
	}
	return state.Order
}

// Categories handles GET /menu/categories?brand=&session=
func (c *MenuController) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	brand := r.URL.Query().Get("brand")
	if brand == "" {
		http.Error(w, "brand parameter is required", http.StatusBadRequest)
		return
	}
	categories, err := c.menu.Categories(r.Context(), brand, c.sessionOrder(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Search handles GET /menu/search?brand=&q=&session=
func (c *MenuController) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	brand := r.URL.Query().Get("brand")
	if brand == "" {
		http.Error(w, "brand parameter is required", http.StatusBadRequest)
		return
	}
	items, err := c.menu.Search(r.Context(), brand, r.URL.Query().Get("q"), c.sessionOrder(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ItemImage handles GET /menu/item-image?brand=&category=&item=&size=thumb|medium
func (c *MenuController) ItemImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	brand, category, item := q.Get("brand"), q.Get("category"), q.Get("item")
	if brand == "" || category == "" || item == "" {
		http.Error(w, "brand, category and item parameters are required", http.StatusBadRequest)
		return
	}

	data, err := c.menu.ItemImage(r.Context(), brand, category, item, q.Get("size"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
