//go:build !amd64

package prefilter

// MinHaystackLen returns the smallest haystack length at which consulting
// a prefilter beats running the engines directly.
func MinHaystackLen() int {
	return 32
}
