package forecast

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeKey folds case and strips diacritics so "Publicité " and "publicite" match.
func normalizeKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	// Casers are stateful and must not be shared between goroutines.
	return cases.Fold().String(stripped)
}

// sameProduct compares an optional product tag with a product id.
func sameProduct(tag *string, id string) bool {
	return tag != nil && strings.TrimSpace(*tag) == strings.TrimSpace(id)
}

func productKey(tag *string) string {
	if tag == nil {
		return ""
	}
	return strings.TrimSpace(*tag)
}
