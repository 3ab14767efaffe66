package links

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// PlaceExtraction holds what could be read out of a Google Maps link.
// Nil fields were not present in the link.
type PlaceExtraction struct {
	Name      *string  `json:"name,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	SourceURL string   `json:"source_url"`
}

// HasCoordinates reports whether both latitude and longitude were parsed.
func (p PlaceExtraction) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Empty reports whether nothing besides the source URL was found.
func (p PlaceExtraction) Empty() bool {
	return p.Name == nil && p.Address == nil && p.Location == nil && !p.HasCoordinates()
}

const coordPattern = `(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`

var (
	placeRe  = regexp.MustCompile(`/place/([^/?#]+)/@` + coordPattern)
	atRe     = regexp.MustCompile(`@` + coordPattern)
	qCoordRe = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)

	// google.com, google.pt, google.co.uk, google.com.br
	googleHostRe = regexp.MustCompile(`^(?:www\.)?google\.(?:com|co\.[a-z]{2}|com\.[a-z]{2}|[a-z]{2})$`)
	mapsHostRe   = regexp.MustCompile(`^maps\.google\.(?:com|co\.[a-z]{2}|com\.[a-z]{2}|[a-z]{2})$`)
)

// IsValidGoogleMapsURL reports whether raw is an http(s) URL on a Google
// Maps host. Only the host (and the /maps prefix on shared hosts) is checked.
func IsValidGoogleMapsURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "":
		return false
	case host == "maps.app.goo.gl":
		return true
	case mapsHostRe.MatchString(host):
		return true
	case host == "goo.gl", googleHostRe.MatchString(host):
		return u.Path == "/maps" || strings.HasPrefix(u.Path, "/maps/")
	}
	return false
}

// ExtractGoogleMapsData reads place name, coordinates or a free-text query
// out of a Maps link. Shapes are tried in order: /place/<name>/@lat,lng,
// the q query parameter, then a bare @lat,lng. Links matching none of them
// come back with only SourceURL set.
func ExtractGoogleMapsData(raw string) PlaceExtraction {
	out := PlaceExtraction{SourceURL: raw}

	if m := placeRe.FindStringSubmatch(raw); m != nil {
		if lat, lng, ok := parseCoords(m[2], m[3]); ok {
			out.Name = ptr(decodePlaceName(m[1]))
			out.setCoords(m[2], m[3], lat, lng)
			return out
		}
	}

	if q := queryParam(raw, "q"); q != "" {
		if m := qCoordRe.FindStringSubmatch(q); m != nil {
			if lat, lng, ok := parseCoords(m[1], m[2]); ok {
				out.setCoords(m[1], m[2], lat, lng)
				return out
			}
		}
		out.Address = ptr(q)
		out.Location = ptr(q)
		return out
	}

	if m := atRe.FindStringSubmatch(pathOf(raw)); m != nil {
		if lat, lng, ok := parseCoords(m[1], m[2]); ok {
			out.setCoords(m[1], m[2], lat, lng)
		}
	}
	return out
}

func (p *PlaceExtraction) setCoords(latText, lngText string, lat, lng float64) {
	p.Latitude = &lat
	p.Longitude = &lng
	p.Location = ptr(latText + ", " + lngText)
}

func parseCoords(latText, lngText string) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(latText, 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(lngText, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

func decodePlaceName(segment string) string {
	spaced := strings.ReplaceAll(segment, "+", " ")
	if decoded, err := url.PathUnescape(spaced); err == nil {
		return decoded
	}
	return spaced
}

// queryParam returns the decoded value of key, or "" when raw does not parse.
func queryParam(raw, key string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(u.Query().Get(key))
}

// pathOf strips the query string so an @ inside q= is not read as coordinates.
func pathOf(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}

func ptr[T any](v T) *T {
	return &v
}
