package repository

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"menu-price-map/models"
)

type fakeSource struct {
	bodies map[string]string
	opens  int
}

func (f *fakeSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	f.opens++
	body, ok := f.bodies[ref]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

type fakeCache struct {
	data    map[string][]byte
	failGet bool
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := c.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = bytes.Clone(value)
	return nil
}

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return string(b)
}

func TestSourceRouterDispatchesByScheme(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "menu.csv"), []byte("local"), 0644); err != nil {
		t.Fatal(err)
	}
	router := NewSourceRouter(dir)
	router.Register("S3", &fakeSource{bodies: map[string]string{"s3://bucket/menu.csv": "remote"}})

	ctx := context.Background()
	for ref, want := range map[string]string{
		"menu.csv":             "local",
		"file://menu.csv":      "local",
		"s3://bucket/menu.csv": "remote",
	} {
		rc, err := router.Open(ctx, ref)
		if err != nil {
			t.Fatalf("Open(%s) failed: %v", ref, err)
		}
		if got := readAll(t, rc); got != want {
			t.Fatalf("Open(%s) = %q, want %q", ref, got, want)
		}
	}
	if _, err := router.Open(ctx, "ftp://host/file"); err == nil {
		t.Fatal("expected error for unregistered scheme")
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		w.Write([]byte("store_id,Taco\n"))
	}))
	defer srv.Close()

	source := NewHTTPSource(5 * time.Second)
	rc, err := source.Open(context.Background(), srv.URL+"/menu.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := readAll(t, rc); got != "store_id,Taco\n" {
		t.Fatalf("body = %q", got)
	}
	if _, err := source.Open(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("expected error on 404")
	}
}

func TestCachedSourceReadsThrough(t *testing.T) {
	source := &fakeSource{bodies: map[string]string{"menu.csv": "body"}}
	cache := &fakeCache{data: map[string][]byte{}}
	cached := NewCachedSource(source, cache, time.Minute)

	for i := 0; i < 3; i++ {
		rc, err := cached.Open(context.Background(), "menu.csv")
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if got := readAll(t, rc); got != "body" {
			t.Fatalf("body = %q", got)
		}
	}
	if source.opens != 1 {
		t.Fatalf("source opened %d times, want 1", source.opens)
	}
	if string(cache.data["feed:menu.csv"]) != "body" {
		t.Fatalf("cache = %v", cache.data)
	}
}

func TestCachedSourceFallsBackWhenCacheFails(t *testing.T) {
	source := &fakeSource{bodies: map[string]string{"menu.csv": "body"}}
	cached := NewCachedSource(source, &fakeCache{data: map[string][]byte{}, failGet: true}, time.Minute)

	rc, err := cached.Open(context.Background(), "menu.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := readAll(t, rc); got != "body" {
		t.Fatalf("body = %q", got)
	}
}

func TestParseS3Ref(t *testing.T) {
	bucket, key, err := parseS3Ref("s3://feeds/menus/kfc.csv")
	if err != nil || bucket != "feeds" || key != "menus/kfc.csv" {
		t.Fatalf("got %q %q %v", bucket, key, err)
	}
	for _, bad := range []string{"s3://feeds", "s3:///key", "s3://feeds/"} {
		if _, _, err := parseS3Ref(bad); err == nil {
			t.Fatalf("%q must be rejected", bad)
		}
	}
}

func TestFeedPriceTableRepository(t *testing.T) {
	source := &fakeSource{bodies: map[string]string{
		"kfc.csv": "store_id,Biscuit\nK1,1.29\nK2,\n",
	}}
	repo := NewFeedPriceTableRepository(source)

	table, err := repo.LoadPriceTable(context.Background(), models.Brand{ID: "kfc", MenuFeed: "kfc.csv"})
	if err != nil {
		t.Fatalf("LoadPriceTable failed: %v", err)
	}
	if table.Brand != "kfc" || table.Len() != 2 || !table.HasItem("Biscuit") {
		t.Fatalf("table = %+v", table)
	}

	if _, err := repo.LoadPriceTable(context.Background(), models.Brand{ID: "kfc"}); err == nil {
		t.Fatal("expected error without a menu feed")
	}
	if _, err := repo.LoadPriceTable(context.Background(), models.Brand{ID: "kfc", MenuFeed: "gone.csv"}); err == nil {
		t.Fatal("expected error for a missing feed")
	}
}

const catalogYAML = `
version: 1
default_brand: tacobell
brands:
  - id: kfc
    name: KFC
    menu_feed: menus/kfc.csv
    categories:
      - name: Sides
        items: [Biscuit]
  - id: tacobell
    name: Taco Bell
    menu_feed: menus/tacobell.csv
`

func TestYAMLBrandRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0644); err != nil {
		t.Fatal(err)
	}
	repo := NewYAMLBrandRepository(path)

	brands, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(brands) != 2 || brands[0].Categories[0].Items[0] != "Biscuit" {
		t.Fatalf("brands = %+v", brands)
	}
	def, err := repo.Default()
	if err != nil || def.ID != "tacobell" {
		t.Fatalf("default = %+v, %v", def, err)
	}
	if _, err := repo.Get("wendys"); !errors.Is(err, ErrUnknownBrand) {
		t.Fatalf("got %v, want ErrUnknownBrand", err)
	}

	// cached until invalidated
	os.Remove(path)
	if _, err := repo.Get("kfc"); err != nil {
		t.Fatalf("cached Get failed: %v", err)
	}
	repo.Invalidate()
	if _, err := repo.Get("kfc"); err == nil {
		t.Fatal("expected error after invalidation with the file gone")
	}
}

func TestParseBrandCatalogValidates(t *testing.T) {
	cases := map[string]string{
		"empty":           "version: 1\n",
		"missing id":      "brands:\n  - name: Nameless\n",
		"duplicate":       "brands:\n  - id: a\n  - id: a\n",
		"unknown default": "default_brand: z\nbrands:\n  - id: a\n",
	}
	for name, doc := range cases {
		if _, err := ParseBrandCatalog([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	catalog, err := ParseBrandCatalog([]byte("brands:\n  - id: a\n  - id: b\n"))
	if err != nil || catalog.DefaultBrand != "a" {
		t.Fatalf("got %+v, %v", catalog, err)
	}
}
