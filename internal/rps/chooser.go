package rps

import "github.com/valyala/fastrand"

// Chooser picks a uniformly distributed index in [0, n)
type Chooser interface {
	Choose(n int) int
}

// FastRand is a Chooser backed by fastrand, safe for concurrent use
type FastRand struct{}

func (FastRand) Choose(n int) int {
	return int(fastrand.Uint32n(uint32(n)))
}

var _ Chooser = FastRand{}
