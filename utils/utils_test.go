package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatUSD(t *testing.T) {
	cases := map[string]string{
		"0":       "$0.00",
		"6.5":     "$6.50",
		"999.999": "$1,000.00",
		"1234567": "$1,234,567.00",
		"-12.3":   "-$12.30",
		"100.004": "$100.00",
	}
	for in, want := range cases {
		if got := FormatUSD(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatUSD(%s) = %q, want %q", in, got, want)
		}
	}
	if got := FormatUSDOrNA(nil); got != "N/A" {
		t.Fatalf("got %q, want N/A", got)
	}
}

func TestExtractCoordinates(t *testing.T) {
	lat, lng, ok := ExtractCoordinates("https://www.google.com/maps/dir/?api=1&destination=28.5383,-81.3792")
	if !ok || lat != 28.5383 || lng != -81.3792 {
		t.Fatalf("got %v %v %v", lat, lng, ok)
	}
	for _, bad := range []string{"", "https://maps.example.com/?q=here", "destination=95.0,10.0"} {
		if _, _, ok := ExtractCoordinates(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestStateFIPS(t *testing.T) {
	if fips, ok := StateFIPS(" fl "); !ok || fips != "12" {
		t.Fatalf("got %q %v", fips, ok)
	}
	if _, ok := StateFIPS("PR"); ok {
		t.Fatal("PR is not in the table")
	}
}
