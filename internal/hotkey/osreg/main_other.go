//go:build !darwin

package osreg

// Main runs fn
func Main(fn func()) { fn() }
