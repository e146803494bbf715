package avatar

import "net/url"

const template = "https://api.dicebear.com/7.x/initials/svg?seed="

// URL maps a seed string (email or display name) to a displayable avatar
// image. Building the URL is pure; fetching the image is the client's business.
func URL(seed string) string {
	return template + url.QueryEscape(seed)
}
