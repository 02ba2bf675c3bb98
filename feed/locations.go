package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"menu-price-map/models"
	"menu-price-map/utils"
)

// DecodeLocationsCSV decodes a location feed. Two layouts are accepted:
// store_id, name, page, map, lat, lng (explicit coordinates) and
// store_id, name, page, map where the coordinates are taken from the
// map URL's destination parameter. Rows without usable coordinates are skipped.
func DecodeLocationsCSV(r io.Reader) ([]models.LocationRecord, int, error) {
	header, rows, skipped, err := readCSV(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode locations feed: %w", err)
	}

	latCol := columnIndex(header, "lat", "latitude")
	lngCol := columnIndex(header, "lng", "lon", "longitude")
	explicit := latCol >= 0 && lngCol >= 0

	locations := make([]models.LocationRecord, 0, len(rows))
	for _, record := range rows {
		if len(record) < 4 {
			skipped++
			continue
		}
		loc := models.LocationRecord{
			StoreID: field(record, 0),
			Name:    field(record, 1),
			PageURL: field(record, 2),
			MapURL:  field(record, 3),
		}
		if loc.StoreID == "" {
			skipped++
			continue
		}

		if explicit {
			lat, errLat := strconv.ParseFloat(field(record, latCol), 64)
			lng, errLng := strconv.ParseFloat(field(record, lngCol), 64)
			if errLat != nil || errLng != nil {
				skipped++
				continue
			}
			loc.Lat, loc.Lng = lat, lng
		} else {
			lat, lng, ok := utils.ExtractCoordinates(loc.MapURL)
			if !ok {
				skipped++
				continue
			}
			loc.Lat, loc.Lng = lat, lng
		}
		locations = append(locations, loc)
	}
	return locations, skipped, nil
}

type combinedLocation struct {
	StoreNumber json.RawMessage `json:"store_number"`
	State       string          `json:"state"`
	County      string          `json:"county"`
	Lat         *float64        `json:"lat"`
	Lng         *float64        `json:"lng"`
	URL         string          `json:"url"`
}

// DecodeLocationsJSON decodes the combined locations.json produced by the
// crawler: an array of {store_number, state, county, lat, lng, url}.
func DecodeLocationsJSON(r io.Reader) ([]models.LocationRecord, int, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("failed to decode locations json: %w", err)
	}

	skipped := 0
	locations := make([]models.LocationRecord, 0, len(raw))
	for _, msg := range raw {
		var c combinedLocation
		if err := json.Unmarshal(msg, &c); err != nil || c.Lat == nil || c.Lng == nil {
			skipped++
			continue
		}
		storeID := rawString(c.StoreNumber)
		if storeID == "" {
			skipped++
			continue
		}
		locations = append(locations, models.LocationRecord{
			StoreID: storeID,
			Name:    fmt.Sprintf("Store #%s", storeID),
			Lat:     *c.Lat,
			Lng:     *c.Lng,
			PageURL: c.URL,
			State:   c.State,
			County:  c.County,
		})
	}
	return locations, skipped, nil
}

// rawString accepts a JSON string or number
func rawString(msg json.RawMessage) string {
	if len(msg) == 0 || string(msg) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err == nil {
		return n.String()
	}
	return ""
}
