// Package bsc simulates a binary symmetric channel, every bit is flipped
// independently with the same crossover probability.
//
// Instead of drawing once per bit the channel samples the distance to the next
// flipped bit from the geometric distribution, so the cost grows with the number
// of flips rather than with the packet length.
package bsc

import (
	"math"
	"math/rand"

	"github.com/nathanhack/fecsim/packet"
)

// NoFlip is the gap returned when no bit will ever be flipped.
const NoFlip = math.MaxInt

// SampleGap returns the number of untouched bits before the next flipped bit when
// each bit flips with probability p.
func SampleGap(rng *rand.Rand, p float64) int {
	if p <= 0 {
		return NoFlip
	}
	if p >= 1 {
		return 0
	}

	u := 0.0
	for u == 0 {
		u = rng.Float64()
	}

	gap := math.Floor(math.Log(u) / math.Log1p(-p))
	if gap >= float64(NoFlip) {
		return NoFlip
	}
	return int(gap)
}

// Apply returns a copy of coded with bits flipped with probability p along with
// the number of flipped bits. coded is left untouched.
func Apply(rng *rand.Rand, coded packet.Packet, p float64) (flips int, corrupted packet.Packet) {
	corrupted = coded.Clone()
	if p <= 0 {
		return 0, corrupted
	}

	for i := -1; ; {
		gap := SampleGap(rng, p)
		// next position i+1+gap must stay inside the packet
		if gap >= len(corrupted)-1-i {
			break
		}
		i += 1 + gap
		corrupted.Flip(i)
		flips++
	}
	return flips, corrupted
}

// Channel is a binary symmetric channel with its own random source. A Channel
// must not be shared between goroutines.
type Channel struct {
	P   float64
	Rng *rand.Rand
}

func New(p float64, rng *rand.Rand) *Channel {
	return &Channel{P: p, Rng: rng}
}

// Transmit sends coded through the channel.
func (c *Channel) Transmit(coded packet.Packet) (flips int, corrupted packet.Packet) {
	return Apply(c.Rng, coded, c.P)
}
