package feed

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodePriceTable(t *testing.T) {
	csv := "\ufeffstore_id,Taco,Burrito\n" +
		"S1,2.00,$4.00\n" +
		"S2,2.50,\n" +
		",1.00,1.00\n" +
		"S3,-1.00,abc\n" +
		"S1,2.10,4.10\n"

	table, skipped, err := DecodePriceTable(strings.NewReader(csv), "tacobell")
	if err != nil {
		t.Fatalf("DecodePriceTable failed: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
	if table.Len() != 3 {
		t.Fatalf("stores = %d, want 3", table.Len())
	}
	if table.Items[0] != "Taco" || table.Items[1] != "Burrito" {
		t.Fatalf("items = %v", table.Items)
	}
	// the second S1 row replaces the first
	if p, _ := table.Price("S1", "Taco"); !p.Equal(decimal.RequireFromString("2.10")) {
		t.Fatalf("S1 Taco = %s, want 2.10", p)
	}
	if _, ok := table.Price("S2", "Burrito"); ok {
		t.Fatal("empty cell must mean not carried")
	}
	if len(table.Stores[2].Prices) != 0 {
		t.Fatalf("S3 prices = %v, want none", table.Stores[2].Prices)
	}
}

func TestDecodePriceTableWithoutHeader(t *testing.T) {
	_, _, err := DecodePriceTable(strings.NewReader(""), "kfc")
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("got %v, want ErrNoHeader", err)
	}
	if _, _, err := DecodePriceTable(strings.NewReader("store_id\nS1\n"), "kfc"); err == nil {
		t.Fatal("expected error for a header without items")
	}
}

func TestDecodePriceTableRepeatedItemColumn(t *testing.T) {
	csv := "store_id,Taco,Burrito,Taco,\n" +
		"S1,2.00,4.00,9.99,1.00\n"

	table, _, err := DecodePriceTable(strings.NewReader(csv), "tacobell")
	if err != nil {
		t.Fatalf("DecodePriceTable failed: %v", err)
	}
	if len(table.Items) != 2 || table.Items[0] != "Taco" || table.Items[1] != "Burrito" {
		t.Fatalf("items = %v, want [Taco Burrito]", table.Items)
	}
	// the first Taco column wins
	if p, _ := table.Price("S1", "Taco"); !p.Equal(decimal.RequireFromString("2.00")) {
		t.Fatalf("S1 Taco = %s, want 2.00", p)
	}
	if len(table.Stores[0].Prices) != 2 {
		t.Fatalf("S1 prices = %v", table.Stores[0].Prices)
	}
}

func TestParsePrice(t *testing.T) {
	if p, ok := ParsePrice(" $1,049.99 "); !ok || !p.Equal(decimal.RequireFromString("1049.99")) {
		t.Fatalf("got %s %v", p, ok)
	}
	for _, bad := range []string{"", "  ", "n/a", "-0.50"} {
		if _, ok := ParsePrice(bad); ok {
			t.Fatalf("%q must not parse", bad)
		}
	}
}
