package links

import (
	"regexp"
	"strings"
)

const (
	imgurHost       = "imgur.com"
	imgurDirectHost = "i.imgur.com"
)

var (
	imgurFragmentRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	imgurPathRe     = regexp.MustCompile(`imgur\.com/(?:a/)?([A-Za-z0-9]+)`)
)

// IsValidImgurURL reports whether raw mentions imgur.com at all.
func IsValidImgurURL(raw string) bool {
	return strings.Contains(raw, imgurHost)
}

// ConvertImgurURL turns an Imgur share or album link into a direct large
// image link (https://i.imgur.com/<id>l.jpg). Anything it cannot map,
// including links already on i.imgur.com, is returned unchanged.
func ConvertImgurURL(raw string) string {
	if raw == "" || strings.Contains(raw, imgurDirectHost) {
		return raw
	}
	id, ok := ExtractImgurImageID(raw)
	if !ok {
		return raw
	}
	return "https://" + imgurDirectHost + "/" + id + "l.jpg"
}

// ExtractImgurImageID returns the image id in an Imgur link. An alphanumeric
// #fragment wins over the path, so imgur.com/a/<album>#<id> yields <id>.
// Album links without a fragment yield the album id.
func ExtractImgurImageID(raw string) (string, bool) {
	if !IsValidImgurURL(raw) {
		return "", false
	}

	if i := strings.IndexByte(raw, '#'); i >= 0 {
		if frag := raw[i+1:]; imgurFragmentRe.MatchString(frag) {
			return frag, true
		}
	}

	if m := imgurPathRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}
