package api

import (
	"net/url"
	"strings"
)

// PercentEncode escapes a query value per RFC 3986. QueryEscape encodes a
// space as "+", which some endpoints reject in signed requests.
func PercentEncode(s string) string {
	s = url.QueryEscape(s)
	return strings.ReplaceAll(s, "+", "%20")
}
