package bsc

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/nathanhack/fecsim/packet"
)

func ones(n int) packet.Packet {
	p := make(packet.Packet, n)
	for i := range p {
		p[i] = 1
	}
	return p
}

func TestSampleGap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		p        float64
		expected int
	}{
		{0, NoFlip},
		{-0.5, NoFlip},
		{1, 0},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			for j := 0; j < 100; j++ {
				actual := SampleGap(rng, test.p)
				if actual != test.expected {
					t.Fatalf("expected %v but found %v", test.expected, actual)
				}
			}
		})
	}
}

func TestSampleGap_Mean(t *testing.T) {
	//the number of failures before a success has mean (1-p)/p
	rng := rand.New(rand.NewSource(2))
	for i, p := range []float64{0.5, 0.1, 0.01} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			n := 200_000
			sum := 0.0
			for j := 0; j < n; j++ {
				gap := SampleGap(rng, p)
				if gap < 0 {
					t.Fatalf("expected a non negative gap but found %v", gap)
				}
				sum += float64(gap)
			}
			expected := (1 - p) / p
			actual := sum / float64(n)
			if math.Abs(actual-expected) > 0.02*expected+0.01 {
				t.Fatalf("expected mean %v but found %v", expected, actual)
			}
		})
	}
}

func TestApply_AllFlip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	coded := ones(1000)
	coded[7] = 0

	flips, corrupted := Apply(rng, coded, 1.0)
	if flips != len(coded) {
		t.Fatalf("expected %v flips but found %v", len(coded), flips)
	}
	if corrupted.HammingDistance(coded) != len(coded) {
		t.Fatalf("expected every bit flipped but found %v", corrupted.HammingDistance(coded))
	}
}

func TestApply_NoFlip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	coded := ones(1000)

	flips, corrupted := Apply(rng, coded, 0)
	if flips != 0 {
		t.Fatalf("expected no flips but found %v", flips)
	}
	if corrupted.HammingDistance(coded) != 0 {
		t.Fatalf("expected an unchanged copy")
	}
	corrupted.Flip(0)
	if coded[0] != 1 {
		t.Fatalf("expected the copy to be independent of the original")
	}
}

func TestApply_LeavesOriginal(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	coded := make(packet.Packet, 5000)

	flips, corrupted := Apply(rng, coded, 0.3)
	if coded.HammingWeight() != 0 {
		t.Fatalf("expected original to be untouched but found %v ones", coded.HammingWeight())
	}
	if flips != corrupted.HammingWeight() {
		t.Fatalf("expected %v flipped bits but found %v", flips, corrupted.HammingWeight())
	}
}

func TestApply_Empty(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	flips, corrupted := Apply(rng, packet.Packet{}, 0.5)
	if flips != 0 || len(corrupted) != 0 {
		t.Fatalf("expected nothing but found %v flips %v", flips, corrupted)
	}
}

func TestApply_Rate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tests := []float64{0.001, 0.01, 0.05, 0.25}
	for i, p := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			coded := make(packet.Packet, 100_000)
			total := 0
			trials := 50
			for j := 0; j < trials; j++ {
				flips, _ := Apply(rng, coded, p)
				total += flips
			}
			bits := float64(trials * len(coded))
			actual := float64(total) / bits
			// five standard deviations of the binomial estimate
			tolerance := 5 * math.Sqrt(p*(1-p)/bits)
			if math.Abs(actual-p) > tolerance {
				t.Fatalf("expected rate %v (+/-%v) but found %v", p, tolerance, actual)
			}
		})
	}
}

func TestApply_Deterministic(t *testing.T) {
	coded := make(packet.Packet, 10_000)
	aFlips, a := Apply(rand.New(rand.NewSource(8)), coded, 0.1)
	bFlips, b := New(0.1, rand.New(rand.NewSource(8))).Transmit(coded)
	if aFlips != bFlips || a.HammingDistance(b) != 0 {
		t.Fatalf("expected identical results from identically seeded sources")
	}
}

func BenchmarkApply(b *testing.B) {
	rng := rand.New(rand.NewSource(9))
	coded := make(packet.Packet, 8*1500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Apply(rng, coded, 0.01)
	}
}
