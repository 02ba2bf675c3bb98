package controller

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"menu-price-map/service"
)

// LayerController handles HTTP requests for auxiliary layers and legends
type LayerController struct {
	maps    *service.MapService
	legends *service.LegendService
}

// NewLayerController creates a new LayerController
func NewLayerController(maps *service.MapService, legends *service.LegendService) *LayerController {
	return &LayerController{maps: maps, legends: legends}
}

// Colleges handles GET /layers/colleges
func (c *LayerController) Colleges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, c.maps.Colleges(r.Context()))
}

// StatePoverty handles GET /layers/poverty/states
func (c *LayerController) StatePoverty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, c.maps.StatePoverty(r.Context()))
}

// CountyPoverty handles GET /layers/poverty/counties?prefix=
func (c *LayerController) CountyPoverty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, c.maps.CountyPoverty(r.Context(), r.URL.Query().Get("prefix")))
}

// StateBoundaries handles GET /layers/boundaries/states
func (c *LayerController) StateBoundaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fc, err := c.maps.StateBoundaries(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load state boundaries: %v", err), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// CountyBoundaries handles GET /layers/boundaries/counties?prefix=
func (c *LayerController) CountyBoundaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fc, err := c.maps.CountyBoundaries(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load county boundaries: %v", err), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// Legend handles GET /legend?gradient=&min=&max=&unit=usd|percent
func (c *LayerController) Legend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	min, errMin := strconv.ParseFloat(q.Get("min"), 64)
	max, errMax := strconv.ParseFloat(q.Get("max"), 64)
	if errMin != nil || errMax != nil {
		http.Error(w, "min and max must be numbers", http.StatusBadRequest)
		return
	}
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		http.Error(w, "min and max must be finite", http.StatusBadRequest)
		return
	}

	legend, err := c.legends.Legend(q.Get("gradient"), min, max, q.Get("unit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, legend)
}

// LegendPNG handles GET /legend.png?gradient=&width=&height=
func (c *LayerController) LegendPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	width, _ := strconv.Atoi(q.Get("width"))
	height, _ := strconv.Atoi(q.Get("height"))

	data, err := c.legends.LegendPNG(q.Get("gradient"), width, height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
