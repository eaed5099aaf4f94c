// core/tsv/truthy.go
package tsv

import "strings"

var truthyTokens = map[string]struct{}{
	"yes": {}, "true": {}, "1": {}, "y": {}, "t": {},
}

// Truthy reports whether a boolean-like text field parses as true.
// Membership is case-insensitive; absent or malformed values are false.
func Truthy(s string) bool {
	_, ok := truthyTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
