package benchmarking

import (
	"math/rand"

	"github.com/nathanhack/fecsim/packet"
)

// RandomPacket creates a random packet of 8*byteLength bits.
func RandomPacket(rng *rand.Rand, byteLength int) packet.Packet {
	p := make(packet.Packet, 8*byteLength)
	for i := range p {
		p[i] = uint8(rng.Intn(2))
	}
	return p
}

// trialSeed derives the seed of the random source used by the chunk of trials
// starting at firstTrial, seeds of neighbouring chunks are spread apart.
func trialSeed(seed int64, firstTrial int) int64 {
	return seed ^ int64(uint64(firstTrial+1)*0x9E3779B97F4A7C15)
}
