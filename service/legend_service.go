package service

import (
	"fmt"
	"log"
	"math"

	"menu-price-map/colormap"
	"menu-price-map/models"
	"menu-price-map/utils"

	"github.com/shopspring/decimal"
)

const (
	defaultLegendWidth  = 256
	defaultLegendHeight = 16
	maxLegendDimension  = 2048
)

// LegendService describes gradients for the page legends
type LegendService struct {
	images *ImageCache
}

// NewLegendService creates a new LegendService
func NewLegendService(images *ImageCache) *LegendService {
	return &LegendService{images: images}
}

// Legend labels the gradient at min, mid and max. A degenerate range yields a
// single fallback entry. A "No data" entry is always last.
func (s *LegendService) Legend(name string, min, max float64, unit string) (*models.Legend, error) {
	if !finite(min) || !finite(max) {
		return nil, fmt.Errorf("min=%v max=%v: %w", min, max, ErrInvalidRange)
	}
	g, err := colormap.Lookup(name)
	if err != nil {
		return nil, err
	}

	legend := &models.Legend{Gradient: g.Name}
	if _, ok := colormap.Normalize(min, min, max); !ok {
		legend.Entries = append(legend.Entries, models.LegendEntry{
			Label: formatLegendValue(min, unit),
			Color: colormap.FallbackColor(g).CSS(g.Alpha),
		})
	} else {
		mid := min/2 + max/2
		for _, v := range []float64{min, mid, max} {
			legend.Entries = append(legend.Entries, models.LegendEntry{
				Label: formatLegendValue(v, unit),
				Color: colormap.CSSFor(v, min, max, g),
			})
		}
	}
	legend.Entries = append(legend.Entries, models.LegendEntry{
		Label: "No data",
		Color: colormap.MissingCSS(g),
	})
	return legend, nil
}

// LegendPNG renders the gradient swatch, cached on disk by name and size
func (s *LegendService) LegendPNG(name string, width, height int) ([]byte, error) {
	g, err := colormap.Lookup(name)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		width = defaultLegendWidth
	}
	if height <= 0 {
		height = defaultLegendHeight
	}
	if width > maxLegendDimension || height > maxLegendDimension {
		return nil, fmt.Errorf("legend size %dx%d exceeds %d", width, height, maxLegendDimension)
	}

	cachePath := s.images.Path("legends", fmt.Sprintf("%s_%dx%d.png", g.Name, width, height))
	if s.images.Exists(cachePath) {
		return s.images.Read(cachePath)
	}

	data, err := RenderGradientPNG(g, width, height)
	if err != nil {
		return nil, err
	}
	if err := s.images.Save(cachePath, data); err != nil {
		log.Printf("⚠️  LegendPNG: %v", err)
	}
	return data, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatLegendValue(v float64, unit string) string {
	if !finite(v) {
		return "N/A"
	}
	switch unit {
	case "usd":
		return utils.FormatUSD(decimal.NewFromFloat(v))
	case "percent":
		return fmt.Sprintf("%.1f%%", v)
	default:
		return fmt.Sprintf("%g", v)
	}
}
