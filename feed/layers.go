package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"menu-price-map/models"
	"menu-price-map/utils"
)

// DecodeColleges decodes name, lat, lng, students, city, state rows
func DecodeColleges(r io.Reader) ([]models.CollegeRecord, int, error) {
	_, rows, skipped, err := readCSV(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode colleges feed: %w", err)
	}

	colleges := make([]models.CollegeRecord, 0, len(rows))
	for _, record := range rows {
		if len(record) < 6 {
			skipped++
			continue
		}
		lat, errLat := strconv.ParseFloat(field(record, 1), 64)
		lng, errLng := strconv.ParseFloat(field(record, 2), 64)
		if errLat != nil || errLng != nil {
			skipped++
			continue
		}
		students, _ := strconv.Atoi(strings.ReplaceAll(field(record, 3), ",", ""))
		colleges = append(colleges, models.CollegeRecord{
			Name:     field(record, 0),
			Lat:      lat,
			Lng:      lng,
			Students: students,
			City:     field(record, 4),
			State:    field(record, 5),
		})
	}
	return colleges, skipped, nil
}

// DecodeStatePoverty decodes state_code, state_name, poverty_rate rows and
// keys them by state FIPS code. Unknown state codes are skipped.
func DecodeStatePoverty(r io.Reader) (map[string]models.RegionStat, int, error) {
	_, rows, skipped, err := readCSV(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode civics feed: %w", err)
	}

	stats := make(map[string]models.RegionStat, len(rows))
	for _, record := range rows {
		if len(record) < 3 {
			skipped++
			continue
		}
		rate, err := strconv.ParseFloat(field(record, 2), 64)
		if err != nil {
			skipped++
			continue
		}
		fips, ok := utils.StateFIPS(field(record, 0))
		if !ok {
			skipped++
			continue
		}
		stats[fips] = models.RegionStat{Code: fips, Name: field(record, 1), Rate: rate}
	}
	return stats, skipped, nil
}

type countyPoverty struct {
	County      string   `json:"county"`
	FIPS        string   `json:"fips"`
	PovertyRate *float64 `json:"poverty_rate"`
}

// DecodeCountyPoverty decodes the census extract: [{county, fips, poverty_rate}]
func DecodeCountyPoverty(r io.Reader) (map[string]models.RegionStat, int, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("failed to decode county poverty json: %w", err)
	}

	skipped := 0
	stats := make(map[string]models.RegionStat, len(raw))
	for _, msg := range raw {
		var c countyPoverty
		if err := json.Unmarshal(msg, &c); err != nil || c.PovertyRate == nil || c.FIPS == "" {
			skipped++
			continue
		}
		stats[c.FIPS] = models.RegionStat{Code: c.FIPS, Name: c.County, Rate: *c.PovertyRate}
	}
	return stats, skipped, nil
}
