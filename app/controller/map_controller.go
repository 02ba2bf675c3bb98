package controller

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"menu-price-map/service"
)

// MapController handles HTTP requests for the map page and its marker layers
type MapController struct {
	sessions service.SessionServiceInterface
	maps     *service.MapService
	pages    *service.PageService
}

// NewMapController creates a new MapController
func NewMapController(sessions service.SessionServiceInterface, maps *service.MapService, pages *service.PageService) *MapController {
	return &MapController{sessions: sessions, maps: maps, pages: pages}
}

// Markers handles GET /sessions/{id}/markers?priceColor=true
func (c *MapController) Markers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, _ := sessionPath(r.URL.Path)

	priceColor := true
	if v := r.URL.Query().Get("priceColor"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid priceColor: %v", err), http.StatusBadRequest)
			return
		}
		priceColor = parsed
	}

	markers, err := c.maps.Markers(id, priceColor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, markers)
}

// Heat handles GET /sessions/{id}/heat
func (c *MapController) Heat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, _ := sessionPath(r.URL.Path)
	points, err := c.maps.Heat(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// Page handles GET /map?session={id}
// Renders the HTML map page for an existing session
func (c *MapController) Page(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter is required", http.StatusBadRequest)
		return
	}
	snapshot := r.URL.Query().Get("snapshot") == "true"

	html, err := c.pages.RenderMap(sessionID, snapshot)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// Snapshot handles GET /map/snapshot.png?session={id}
func (c *MapController) Snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter is required", http.StatusBadRequest)
		return
	}

	log.Printf("📥 Snapshot: session=%s", sessionID)
	png, err := c.pages.Snapshot(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="map-%s.png"`, sessionID))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Home handles GET /
// Opens a new session on the default brand and redirects to its map page
func (c *MapController) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view, err := c.sessions.Create(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	http.Redirect(w, r, "/map?session="+view.ID, http.StatusSeeOther)
}
