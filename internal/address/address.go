package address

import "strings"

// Normalize returns the canonical form of an address. Addresses are
// compared in lowercase so that checksummed ("0xAbC...") and plain
// ("0xabc...") forms match.
func Normalize(addr string) string {
	return strings.ToLower(addr)
}

// Equal reports whether two addresses refer to the same account.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
