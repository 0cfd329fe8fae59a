//go:build amd64

package prefilter

import "golang.org/x/sys/cpu"

// minHaystack is the smallest haystack worth prefiltering. The stdlib
// byte-search primitives the prefilters sit on use AVX2 kernels when the
// CPU has them, which amortise at shorter inputs than the SSE2 paths.
var minHaystack = func() int {
	if cpu.X86.HasAVX2 {
		return 16
	}
	return 32
}()

// MinHaystackLen returns the smallest haystack length at which consulting
// a prefilter beats running the engines directly.
func MinHaystackLen() int {
	return minHaystack
}
