package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"menu-price-map/models"
	"menu-price-map/service"
)

// SessionController handles HTTP requests for the order state of a map page
type SessionController struct {
	sessions service.SessionServiceInterface
}

// NewSessionController creates a new SessionController
func NewSessionController(sessions service.SessionServiceInterface) *SessionController {
	return &SessionController{sessions: sessions}
}

// Create handles POST /sessions
func (c *SessionController) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view, err := c.sessions.Create(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /sessions/{id}
func (c *SessionController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, _ := sessionPath(r.URL.Path)
	view, err := c.sessions.View(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Increment handles POST /sessions/{id}/order/increment
func (c *SessionController) Increment(w http.ResponseWriter, r *http.Request) {
	c.itemTransition(w, r, "Increment", c.sessions.Increment)
}

// Decrement handles POST /sessions/{id}/order/decrement
func (c *SessionController) Decrement(w http.ResponseWriter, r *http.Request) {
	c.itemTransition(w, r, "Decrement", c.sessions.Decrement)
}

func (c *SessionController) itemTransition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	fn func(id, item string) (*models.SessionView, error),
) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, _ := sessionPath(r.URL.Path)

	var req models.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Item == "" {
		http.Error(w, "item is required", http.StatusBadRequest)
		return
	}

	log.Printf("📥 %s: session=%s item=%s", name, id, req.Item)
	view, err := fn(id, req.Item)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Clear handles POST /sessions/{id}/order/clear
func (c *SessionController) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, _ := sessionPath(r.URL.Path)
	view, err := c.sessions.Clear(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SwitchBrand handles POST /sessions/{id}/brand
func (c *SessionController) SwitchBrand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, _ := sessionPath(r.URL.Path)

	var req models.BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Brand == "" {
		http.Error(w, "brand is required", http.StatusBadRequest)
		return
	}

	log.Printf("📥 SwitchBrand: session=%s brand=%s", id, req.Brand)
	view, err := c.sessions.SwitchBrand(r.Context(), id, req.Brand)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Pricing handles GET /sessions/{id}/pricing
// Returns per-store totals, per-item averages and stats (absent for an empty order)
func (c *SessionController) Pricing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, _ := sessionPath(r.URL.Path)
	state, err := c.sessions.State(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state.Pricing)
}

// Breakdown handles GET /sessions/{id}/stores/{storeId}/breakdown
func (c *SessionController) Breakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, rest := sessionPath(r.URL.Path)
	if len(rest) != 3 || rest[0] != "stores" || rest[1] == "" {
		http.Error(w, "store id is required", http.StatusBadRequest)
		return
	}
	breakdown, err := c.sessions.Breakdown(id, rest[1])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
