package checklist

import "packlist/internal/textutil"

// SameText reports whether a and b name the same item.
func SameText(a, b string) bool {
	return textutil.EqualFold(a, b)
}
