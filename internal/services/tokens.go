package services

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// timeToken renders a wall-clock instant as a compact base-36 string, the
// time-based component of every minted identifier.
func timeToken(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 36)
}

// randToken returns n characters of non-secure randomness.
func randToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.IntN(len(base36))]
	}
	return string(b)
}
