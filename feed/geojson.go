package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Feature is a GeoJSON feature; geometry is carried through untouched
type Feature struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// FeatureID returns the feature id as a string, whether encoded as string or number
func (f Feature) FeatureID() string {
	return rawString(f.ID)
}

// Name returns the NAME property, if any
func (f Feature) Name() string {
	if f.Properties == nil {
		return ""
	}
	if name, ok := f.Properties["NAME"].(string); ok {
		return name
	}
	if name, ok := f.Properties["name"].(string); ok {
		return name
	}
	return ""
}

// DecodeFeatureCollection decodes boundary GeoJSON. When prefix is set only
// features whose id starts with it are kept (e.g. "12" for Florida counties).
func DecodeFeatureCollection(r io.Reader, prefix string) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode geojson: %w", err)
	}
	if fc.Type == "" {
		fc.Type = "FeatureCollection"
	}
	if prefix == "" {
		return &fc, nil
	}

	kept := fc.Features[:0]
	for _, f := range fc.Features {
		if strings.HasPrefix(f.FeatureID(), prefix) {
			kept = append(kept, f)
		}
	}
	fc.Features = kept
	return &fc, nil
}
