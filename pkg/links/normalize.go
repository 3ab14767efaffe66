// Package links normalizes the external links users paste into restaurant
// forms: Google Maps place links and Imgur image links.
//
// Everything here is a pure function over text. Nothing touches the network.
package links

// Normalized is the combined result of running both parsers over the links
// of one restaurant form.
type Normalized struct {
	Place        *PlaceExtraction `json:"place,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
	ImageID      string           `json:"image_id,omitempty"`
	MapsValid    bool             `json:"maps_valid"`
	ImageIsImgur bool             `json:"image_is_imgur"`
}

// Normalize runs the Maps parser over mapsURL and the Imgur converter over
// imageURL. Empty inputs are skipped. Place is set only for recognized
// Maps hosts.
func Normalize(mapsURL, imageURL string) Normalized {
	var n Normalized

	if mapsURL != "" && IsValidGoogleMapsURL(mapsURL) {
		place := ExtractGoogleMapsData(mapsURL)
		n.Place = &place
		n.MapsValid = true
	}

	if imageURL != "" {
		n.ImageURL = imageURL
		if IsValidImgurURL(imageURL) {
			n.ImageIsImgur = true
			n.ImageURL = ConvertImgurURL(imageURL)
			if id, ok := ExtractImgurImageID(imageURL); ok {
				n.ImageID = id
			}
		}
	}
	return n
}
