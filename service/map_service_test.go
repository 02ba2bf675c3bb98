package service

import (
	"context"
	"testing"
	"time"

	"menu-price-map/feed"
	"menu-price-map/models"
)

var layerFeeds = map[string]string{
	"colleges.csv": "name,lat,lng,students,city,state\n" +
		"UCF,28.60,-81.20,70406,Orlando,FL\n",
	"civics.csv": "state_code,state_name,poverty_rate\n" +
		"FL,Florida,10\n" +
		"GA,Georgia,20\n" +
		"AL,Alabama,15\n",
	"counties.json": `[
		{"county": "Orange County", "fips": "12095", "poverty_rate": 12},
		{"county": "Miami-Dade County", "fips": "12086", "poverty_rate": 16},
		{"county": "Fulton County", "fips": "13121", "poverty_rate": 30}
	]`,
	"states.geojson": `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"12","properties":{"NAME":"Florida"},"geometry":null},
		{"type":"Feature","properties":{"NAME":"Georgia"},"geometry":null},
		{"type":"Feature","id":"72","properties":{"NAME":"Puerto Rico"},"geometry":null}
	]}`,
	"counties.geojson": `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"12095","properties":{"NAME":"Orange"},"geometry":null},
		{"type":"Feature","id":"12086","properties":{"NAME":"Miami-Dade"},"geometry":null},
		{"type":"Feature","id":"13121","properties":{"NAME":"Fulton"},"geometry":null}
	]}`,
}

func newTestMap(t *testing.T) (*MapService, *SessionService, string) {
	t.Helper()
	sessions, id := newTestSessions(t)
	feeds := LayerFeeds{
		Colleges:         "colleges.csv",
		StatePoverty:     "civics.csv",
		CountyPoverty:    "counties.json",
		StateBoundaries:  "states.geojson",
		CountyBoundaries: "counties.geojson",
	}
	return NewMapService(sessions, newFakeSource(layerFeeds), feeds, time.Minute), sessions, id
}

func markerByID(markers []models.Marker, id string) models.Marker {
	for _, m := range markers {
		if m.StoreID == id {
			return m
		}
	}
	return models.Marker{}
}

func TestMarkersColoredByOrderTotal(t *testing.T) {
	maps, sessions, id := newTestMap(t)
	sessions.Increment(id, "Taco")
	sessions.Increment(id, "Burrito")

	markers, err := maps.Markers(id, true)
	if err != nil {
		t.Fatalf("Markers failed: %v", err)
	}
	if len(markers) != 3 {
		t.Fatalf("markers = %d, want 3", len(markers))
	}
	cheapest := markerByID(markers, "S1")
	if cheapest.FillColor != "#009600" || cheapest.Price == nil || *cheapest.Price != "$6.00" {
		t.Fatalf("S1 = %+v", cheapest)
	}
	if cheapest.PopupPrice != "Your Order: $6.00" {
		t.Fatalf("S1 popup = %q", cheapest.PopupPrice)
	}
	if dearest := markerByID(markers, "S2"); dearest.FillColor != "#b40000" {
		t.Fatalf("S2 color = %s, want #b40000", dearest.FillColor)
	}
	// S9 has a location but no menu row
	if unpriced := markerByID(markers, "S9"); unpriced.Price != nil || unpriced.FillColor != "#7b3ff2" {
		t.Fatalf("S9 = %+v, want unpriced default color", unpriced)
	}

	plain, _ := maps.Markers(id, false)
	if m := markerByID(plain, "S1"); m.FillColor != "#7b3ff2" || m.Price == nil {
		t.Fatalf("uncolored S1 = %+v", m)
	}
}

func TestMarkersWithoutOrderHaveNoPrice(t *testing.T) {
	maps, _, id := newTestMap(t)
	markers, err := maps.Markers(id, true)
	if err != nil {
		t.Fatalf("Markers failed: %v", err)
	}
	for _, m := range markers {
		if m.Price != nil || m.FillColor != "#7b3ff2" {
			t.Fatalf("marker %s = %+v, want default", m.StoreID, m)
		}
	}
	points, _ := maps.Heat(id)
	if len(points) != 0 {
		t.Fatalf("heat = %v, want none", points)
	}
}

func TestDegenerateRangeUsesFallback(t *testing.T) {
	maps, sessions, id := newTestMap(t)
	if _, err := sessions.SwitchBrand(context.Background(), id, "kfc"); err != nil {
		t.Fatalf("SwitchBrand failed: %v", err)
	}
	sessions.Increment(id, "Biscuit")

	markers, _ := maps.Markers(id, true)
	if len(markers) != 1 || markers[0].FillColor != "#b8860b" {
		t.Fatalf("markers = %+v, want fallback color", markers)
	}
	points, _ := maps.Heat(id)
	if len(points) != 1 || points[0][2] != 0 {
		t.Fatalf("heat = %v, want one point at intensity 0", points)
	}
}

func TestHeatIntensityIsNormalized(t *testing.T) {
	maps, sessions, id := newTestMap(t)
	sessions.Increment(id, "Taco")
	sessions.Increment(id, "Burrito")

	points, err := maps.Heat(id)
	if err != nil {
		t.Fatalf("Heat failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points = %v, want 2", points)
	}
	if points[0] != (models.HeatPoint{28.5, -81.3, 0}) || points[1] != (models.HeatPoint{28.4, -81.3, 1}) {
		t.Fatalf("points = %v", points)
	}
}

func TestPovertyLayers(t *testing.T) {
	maps, _, _ := newTestMap(t)
	ctx := context.Background()

	states := maps.StatePoverty(ctx)
	if len(states) != 3 || states[0].Code != "01" {
		t.Fatalf("states = %+v", states)
	}
	// FL is the lowest rate, GA the highest
	if states[1].FillColor != "rgba(200, 255, 200, 0.4)" || states[2].FillColor != "rgba(255, 0, 0, 0.4)" {
		t.Fatalf("colors = %s %s", states[1].FillColor, states[2].FillColor)
	}

	counties := maps.CountyPoverty(ctx, "12")
	if len(counties) != 2 || counties[0].Code != "12086" {
		t.Fatalf("counties = %+v", counties)
	}
	if counties[0].FillColor != "rgba(255, 0, 0, 0.4)" {
		t.Fatalf("Miami-Dade color = %s", counties[0].FillColor)
	}
}

func TestStateBoundariesDecorated(t *testing.T) {
	maps, _, _ := newTestMap(t)
	fc, err := maps.StateBoundaries(context.Background())
	if err != nil {
		t.Fatalf("StateBoundaries failed: %v", err)
	}
	if len(fc.Features) != 3 {
		t.Fatalf("features = %d", len(fc.Features))
	}
	if fc.Features[0].Properties["povertyRate"] != 10.0 {
		t.Fatalf("Florida = %+v", fc.Features[0].Properties)
	}
	// Georgia has no id and is matched by name
	if fc.Features[1].Properties["povertyRate"] != 20.0 {
		t.Fatalf("Georgia = %+v", fc.Features[1].Properties)
	}
	pr := fc.Features[2].Properties
	if pr["povertyRate"] != nil || pr["fillColor"] != "rgba(128, 128, 128, 0.3)" {
		t.Fatalf("Puerto Rico = %+v", pr)
	}

	// the cached collection is not mutated
	again, _ := maps.boundaryFeed(context.Background(), "states.geojson")
	if _, ok := again.Features[0].Properties["fillColor"]; ok {
		t.Fatal("decoration leaked into the cached feed")
	}
}

func TestCountyBoundariesFilteredByPrefix(t *testing.T) {
	maps, _, _ := newTestMap(t)
	fc, err := maps.CountyBoundaries(context.Background(), "12")
	if err != nil {
		t.Fatalf("CountyBoundaries failed: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("features = %d, want 2", len(fc.Features))
	}
}

func TestMissingLayerFeedsYieldEmptyLayers(t *testing.T) {
	sessions, _ := newTestSessions(t)
	maps := NewMapService(sessions, newFakeSource(nil), LayerFeeds{StatePoverty: "gone.csv"}, time.Minute)
	ctx := context.Background()

	if c := maps.Colleges(ctx); c == nil || len(c) != 0 {
		t.Fatalf("colleges = %v, want empty", c)
	}
	if s := maps.StatePoverty(ctx); len(s) != 0 {
		t.Fatalf("states = %v, want empty", s)
	}
	if _, err := maps.StateBoundaries(ctx); err == nil {
		t.Fatal("expected error without a boundary feed")
	}
}

func TestColleges(t *testing.T) {
	maps, _, _ := newTestMap(t)
	colleges := maps.Colleges(context.Background())
	if len(colleges) != 1 || colleges[0].Students != 70406 {
		t.Fatalf("colleges = %+v", colleges)
	}
}

func TestDecorateEmptyStats(t *testing.T) {
	fc := &feed.FeatureCollection{Type: "FeatureCollection", Features: []feed.Feature{{Type: "Feature"}}}
	out := Decorate(fc, nil, "")
	if out.Features[0].Properties["fillColor"] != "rgba(128, 128, 128, 0.3)" {
		t.Fatalf("props = %+v", out.Features[0].Properties)
	}
}
