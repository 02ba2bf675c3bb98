package utils

import (
	"regexp"
	"strconv"
)

var destinationRegex = regexp.MustCompile(`destination=([-\d.]+),([-\d.]+)`)

// ExtractCoordinates pulls lat,lng out of a directions URL such as
// https://www.google.com/maps/dir/?api=1&destination=28.5383,-81.3792
func ExtractCoordinates(mapURL string) (lat, lng float64, ok bool) {
	if mapURL == "" {
		return 0, 0, false
	}
	matches := destinationRegex.FindStringSubmatch(mapURL)
	if len(matches) != 3 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(matches[1], 64)
	lng, errLng := strconv.ParseFloat(matches[2], 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}
