package feed

import (
	"strings"
	"testing"
)

func TestDecodeColleges(t *testing.T) {
	csv := "name,lat,lng,students,city,state\n" +
		"UCF,28.60,-81.20,\"70,406\",Orlando,FL\n" +
		"Nowhere U,,,10,Nowhere,ZZ\n" +
		"Partial,1,2\n"
	colleges, skipped, err := DecodeColleges(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("DecodeColleges failed: %v", err)
	}
	if len(colleges) != 1 || skipped != 2 {
		t.Fatalf("got %d colleges, %d skipped; want 1, 2", len(colleges), skipped)
	}
	if colleges[0].Students != 70406 || colleges[0].City != "Orlando" {
		t.Fatalf("college = %+v", colleges[0])
	}
}

func TestDecodeStatePoverty(t *testing.T) {
	csv := "state_code,state_name,poverty_rate\n" +
		"FL,Florida,12.7\n" +
		"ca,California,11.5\n" +
		"XX,Atlantis,9\n" +
		"TX,Texas,unknown\n"
	stats, skipped, err := DecodeStatePoverty(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("DecodeStatePoverty failed: %v", err)
	}
	if len(stats) != 2 || skipped != 2 {
		t.Fatalf("got %d states, %d skipped; want 2, 2", len(stats), skipped)
	}
	if fl := stats["12"]; fl.Name != "Florida" || fl.Rate != 12.7 {
		t.Fatalf("FL = %+v", fl)
	}
	if _, ok := stats["06"]; !ok {
		t.Fatal("lower-case state code must be accepted")
	}
}

func TestDecodeCountyPoverty(t *testing.T) {
	body := `[
		{"county": "Orange County", "fips": "12095", "poverty_rate": 13.1},
		{"county": "Mystery", "fips": "12999", "poverty_rate": null},
		{"county": "No FIPS", "poverty_rate": 5}
	]`
	stats, skipped, err := DecodeCountyPoverty(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeCountyPoverty failed: %v", err)
	}
	if len(stats) != 1 || skipped != 2 {
		t.Fatalf("got %d counties, %d skipped; want 1, 2", len(stats), skipped)
	}
	if stats["12095"].Rate != 13.1 {
		t.Fatalf("Orange = %+v", stats["12095"])
	}
}

func TestDecodeFeatureCollectionFiltersByPrefix(t *testing.T) {
	body := `{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"12095","properties":{"NAME":"Orange"},"geometry":null},
		{"type":"Feature","id":12086,"properties":{"name":"Miami-Dade"},"geometry":null},
		{"type":"Feature","id":"06037","properties":{"NAME":"Los Angeles"},"geometry":null}
	]}`
	fc, err := DecodeFeatureCollection(strings.NewReader(body), "12")
	if err != nil {
		t.Fatalf("DecodeFeatureCollection failed: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("kept %d features, want 2", len(fc.Features))
	}
	if fc.Features[1].FeatureID() != "12086" || fc.Features[1].Name() != "Miami-Dade" {
		t.Fatalf("second = %q %q", fc.Features[1].FeatureID(), fc.Features[1].Name())
	}
}
