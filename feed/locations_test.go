package feed

import (
	"strings"
	"testing"
)

func TestDecodeLocationsCSVWithCoordinateColumns(t *testing.T) {
	csv := "store_id,name,page,map,lat,lng\n" +
		"101,Main St,https://x/101,,28.5,-81.3\n" +
		"102,Broken,https://x/102,,north,-81.3\n" +
		"103,Short\n"

	locs, skipped, err := DecodeLocationsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("DecodeLocationsCSV failed: %v", err)
	}
	if len(locs) != 1 || skipped != 2 {
		t.Fatalf("got %d locations, %d skipped; want 1, 2", len(locs), skipped)
	}
	if locs[0].StoreID != "101" || locs[0].Lat != 28.5 || locs[0].Lng != -81.3 {
		t.Fatalf("location = %+v", locs[0])
	}
}

func TestDecodeLocationsCSVWithMapURL(t *testing.T) {
	csv := "store_id,name,page,map\n" +
		"201,Orlando,https://x/201,https://www.google.com/maps/dir/?api=1&destination=28.5383,-81.3792\n" +
		"202,Nowhere,https://x/202,https://www.google.com/maps/search/?q=nowhere\n"

	locs, skipped, err := DecodeLocationsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("DecodeLocationsCSV failed: %v", err)
	}
	if len(locs) != 1 || skipped != 1 {
		t.Fatalf("got %d locations, %d skipped; want 1, 1", len(locs), skipped)
	}
	if locs[0].Lat != 28.5383 || locs[0].Lng != -81.3792 {
		t.Fatalf("coords = %v,%v", locs[0].Lat, locs[0].Lng)
	}
}

func TestDecodeLocationsJSON(t *testing.T) {
	body := `[
		{"store_number": 4411, "state": "FL", "county": "Orange", "lat": 28.1, "lng": -81.2, "url": "https://x/4411"},
		{"store_number": "A7", "lat": 30, "lng": -90},
		{"store_number": 9, "lat": null, "lng": -90},
		{"lat": 1, "lng": 2},
		"garbage"
	]`
	locs, skipped, err := DecodeLocationsJSON(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeLocationsJSON failed: %v", err)
	}
	if len(locs) != 2 || skipped != 3 {
		t.Fatalf("got %d locations, %d skipped; want 2, 3", len(locs), skipped)
	}
	if locs[0].StoreID != "4411" || locs[0].Name != "Store #4411" || locs[0].County != "Orange" {
		t.Fatalf("first = %+v", locs[0])
	}
	if locs[1].StoreID != "A7" {
		t.Fatalf("second id = %q", locs[1].StoreID)
	}
	if _, _, err := DecodeLocationsJSON(strings.NewReader("{")); err == nil {
		t.Fatal("expected error for unreadable json")
	}
}
