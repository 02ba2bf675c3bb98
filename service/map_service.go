package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"menu-price-map/colormap"
	"menu-price-map/feed"
	"menu-price-map/models"
	"menu-price-map/repository"
	"menu-price-map/utils"
)

// LayerFeeds are the references of the auxiliary map layers. Empty means the
// layer is not available.
type LayerFeeds struct {
	Colleges         string
	StatePoverty     string
	CountyPoverty    string
	StateBoundaries  string
	CountyBoundaries string
}

// MapService turns session pricing and auxiliary feeds into drawable layers
type MapService struct {
	sessions SessionServiceInterface
	source   repository.FeedSource
	feeds    LayerFeeds

	colleges   *ttlCache[[]models.CollegeRecord]
	regions    *ttlCache[map[string]models.RegionStat]
	boundaries *ttlCache[*feed.FeatureCollection]
}

// NewMapService creates a new MapService. Decoded layers are cached for ttl.
func NewMapService(sessions SessionServiceInterface, source repository.FeedSource, feeds LayerFeeds, ttl time.Duration) *MapService {
	return &MapService{
		sessions:   sessions,
		source:     source,
		feeds:      feeds,
		colleges:   newTTLCache[[]models.CollegeRecord](ttl),
		regions:    newTTLCache[map[string]models.RegionStat](ttl),
		boundaries: newTTLCache[*feed.FeatureCollection](ttl),
	}
}

// Markers returns one marker per store location of the session's brand.
// With priceColor set, priced stores are tinted by their order total relative
// to the cheapest and dearest store; everything else keeps the default color.
func (s *MapService) Markers(sessionID string, priceColor bool) ([]models.Marker, error) {
	state, err := s.sessions.State(sessionID)
	if err != nil {
		return nil, err
	}

	min, max := statsRange(state.Pricing)
	markers := make([]models.Marker, 0, len(state.Dataset.Locations))
	for _, loc := range state.Dataset.Locations {
		m := models.Marker{
			LocationRecord: loc,
			FillColor:      colormap.MissingColor(colormap.Price).Hex(),
		}
		if total, ok := state.Pricing.Total(loc.StoreID); ok && state.Pricing.Stats != nil {
			price := utils.FormatUSD(total)
			m.Price = &price
			m.PopupPrice = "Your Order: " + price
			if priceColor {
				m.FillColor = colormap.ColorFor(total.InexactFloat64(), min, max, colormap.Price).Hex()
			}
		}
		markers = append(markers, m)
	}
	return markers, nil
}

// Heat returns [lat, lng, intensity] for every priced store location, with
// intensity the total normalized to the session's range (0 when every store
// costs the same)
func (s *MapService) Heat(sessionID string) ([]models.HeatPoint, error) {
	state, err := s.sessions.State(sessionID)
	if err != nil {
		return nil, err
	}

	points := []models.HeatPoint{}
	if state.Pricing.Stats == nil {
		return points, nil
	}
	min, max := statsRange(state.Pricing)
	for _, loc := range state.Dataset.Locations {
		total, ok := state.Pricing.Total(loc.StoreID)
		if !ok {
			continue
		}
		t, _ := colormap.Normalize(total.InexactFloat64(), min, max)
		points = append(points, models.HeatPoint{loc.Lat, loc.Lng, t})
	}
	return points, nil
}

func statsRange(result *models.PricingResult) (float64, float64) {
	if result == nil || result.Stats == nil {
		return 0, 0
	}
	return result.Stats.Min.InexactFloat64(), result.Stats.Max.InexactFloat64()
}

// Colleges returns the colleges layer; an unavailable feed yields an empty layer
func (s *MapService) Colleges(ctx context.Context) []models.CollegeRecord {
	if cached, ok := s.colleges.get("colleges"); ok {
		return cached
	}
	colleges := []models.CollegeRecord{}
	err := s.withFeed(ctx, s.feeds.Colleges, func(r io.Reader) error {
		decoded, skipped, err := feed.DecodeColleges(r)
		if err != nil {
			return err
		}
		logSkipped("Colleges", skipped)
		colleges = decoded
		return nil
	})
	if err != nil {
		log.Printf("⚠️  Colleges: %v", err)
		return colleges
	}
	s.colleges.set("colleges", colleges)
	return colleges
}

// StatePoverty returns the state choropleth colors, sorted by FIPS code
func (s *MapService) StatePoverty(ctx context.Context) []models.RegionColor {
	return colorRegions(s.stateStats(ctx), "")
}

// CountyPoverty returns the county choropleth colors whose FIPS code starts with prefix
func (s *MapService) CountyPoverty(ctx context.Context, prefix string) []models.RegionColor {
	return colorRegions(s.countyStats(ctx), prefix)
}

// StateBoundaries returns the state GeoJSON decorated with fillColor and povertyRate
func (s *MapService) StateBoundaries(ctx context.Context) (*feed.FeatureCollection, error) {
	fc, err := s.boundaryFeed(ctx, s.feeds.StateBoundaries)
	if err != nil {
		return nil, err
	}
	return Decorate(fc, s.stateStats(ctx), ""), nil
}

// CountyBoundaries returns the county GeoJSON, optionally limited to a FIPS
// prefix, decorated with fillColor and povertyRate
func (s *MapService) CountyBoundaries(ctx context.Context, prefix string) (*feed.FeatureCollection, error) {
	fc, err := s.boundaryFeed(ctx, s.feeds.CountyBoundaries)
	if err != nil {
		return nil, err
	}
	return Decorate(fc, s.countyStats(ctx), prefix), nil
}

func (s *MapService) stateStats(ctx context.Context) map[string]models.RegionStat {
	return s.regionStats(ctx, "states", s.feeds.StatePoverty, feed.DecodeStatePoverty)
}

func (s *MapService) countyStats(ctx context.Context) map[string]models.RegionStat {
	return s.regionStats(ctx, "counties", s.feeds.CountyPoverty, feed.DecodeCountyPoverty)
}

func (s *MapService) regionStats(
	ctx context.Context,
	key, ref string,
	decode func(io.Reader) (map[string]models.RegionStat, int, error),
) map[string]models.RegionStat {
	if cached, ok := s.regions.get(key); ok {
		return cached
	}
	stats := map[string]models.RegionStat{}
	err := s.withFeed(ctx, ref, func(r io.Reader) error {
		decoded, skipped, err := decode(r)
		if err != nil {
			return err
		}
		logSkipped("Poverty "+key, skipped)
		stats = decoded
		return nil
	})
	if err != nil {
		log.Printf("⚠️  Poverty %s: %v", key, err)
		return stats
	}
	s.regions.set(key, stats)
	return stats
}

func (s *MapService) boundaryFeed(ctx context.Context, ref string) (*feed.FeatureCollection, error) {
	if cached, ok := s.boundaries.get(ref); ok {
		return cached, nil
	}
	var fc *feed.FeatureCollection
	err := s.withFeed(ctx, ref, func(r io.Reader) error {
		decoded, err := feed.DecodeFeatureCollection(r, "")
		fc = decoded
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load boundaries: %w", err)
	}
	s.boundaries.set(ref, fc)
	return fc, nil
}

func (s *MapService) withFeed(ctx context.Context, ref string, fn func(io.Reader) error) error {
	if ref == "" {
		return fmt.Errorf("layer feed not configured")
	}
	rc, err := s.source.Open(ctx, ref)
	if err != nil {
		return err
	}
	defer rc.Close()
	return fn(rc)
}

func logSkipped(layer string, skipped int) {
	if skipped > 0 {
		log.Printf("⚠️  %s: skipped %d malformed rows", layer, skipped)
	}
}

// colorRegions colors every region with the poverty gradient over the range
// of the selected regions' rates
func colorRegions(stats map[string]models.RegionStat, prefix string) []models.RegionColor {
	selected := make([]models.RegionStat, 0, len(stats))
	for code, stat := range stats {
		if strings.HasPrefix(code, prefix) {
			selected = append(selected, stat)
		}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Code < selected[j].Code })

	min, max := rateRange(selected)
	colors := make([]models.RegionColor, 0, len(selected))
	for _, stat := range selected {
		colors = append(colors, models.RegionColor{
			RegionStat: stat,
			FillColor:  colormap.CSSFor(stat.Rate, min, max, colormap.Poverty),
		})
	}
	return colors
}

func rateRange(stats []models.RegionStat) (float64, float64) {
	if len(stats) == 0 {
		return 0, 0
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, s := range stats {
		min = math.Min(min, s.Rate)
		max = math.Max(max, s.Rate)
	}
	return min, max
}

// Decorate returns a copy of fc, filtered to ids starting with prefix, whose
// features carry fillColor and povertyRate. Features are matched to stats by
// id, then by lower-cased NAME; unmatched features get the missing color and
// a null rate.
func Decorate(fc *feed.FeatureCollection, stats map[string]models.RegionStat, prefix string) *feed.FeatureCollection {
	byName := make(map[string]models.RegionStat, len(stats))
	selected := make([]models.RegionStat, 0, len(stats))
	for code, stat := range stats {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		if stat.Name != "" {
			byName[strings.ToLower(stat.Name)] = stat
		}
		selected = append(selected, stat)
	}
	min, max := rateRange(selected)

	out := &feed.FeatureCollection{Type: fc.Type, Features: make([]feed.Feature, 0, len(fc.Features))}
	for _, f := range fc.Features {
		if prefix != "" && !strings.HasPrefix(f.FeatureID(), prefix) {
			continue
		}
		props := make(map[string]any, len(f.Properties)+2)
		for k, v := range f.Properties {
			props[k] = v
		}

		stat, ok := stats[f.FeatureID()]
		if !ok && f.Name() != "" {
			stat, ok = byName[strings.ToLower(f.Name())]
		}
		if ok {
			props["fillColor"] = colormap.CSSFor(stat.Rate, min, max, colormap.Poverty)
			props["povertyRate"] = stat.Rate
		} else {
			props["fillColor"] = colormap.MissingCSS(colormap.Poverty)
			props["povertyRate"] = nil
		}

		f.Properties = props
		out.Features = append(out.Features, f)
	}
	return out
}
