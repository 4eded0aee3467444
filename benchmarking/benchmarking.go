package benchmarking

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/fecsim/channel/bsc"
	"github.com/nathanhack/fecsim/linearblock/parity2d"
	"github.com/nathanhack/fecsim/packet"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

// trials are handed to the pool in chunks, each chunk owns its random source
const chunkSize = 64

// Config describes a simulation run.
type Config struct {
	ByteLength       int            // packet size in bytes
	Shape            parity2d.Shape // parity block shape
	ErrorProbability float64        // probability a bit is flipped by the channel
	Trials           int            // number of transmissions
	Threads          int            // <=0 means use runtime.NumCPU()
	Seed             int64          // seeds the reference packet and every channel
	ShowProgress     bool
}

// TrialResult is the outcome of one transmission.
type TrialResult struct {
	Flips    int // bits flipped by the channel
	Residual int // data bits still wrong after decoding
}

type Stats struct {
	Trials            int
	BitsTransmitted   int // coded bits sent through the channel
	DataBits          int // packet bits the transmissions carried
	InsertedFlips     int
	ResidualBitErrors int
	CorruptedPackets  int           // packets with at least one residual error
	ResidualRate      avgstd.AvgStd // per trial fraction of packet bits wrong after decoding
}

// Add accumulates the result of one transmission of a codedBits long packet
// carrying dataBits bits.
func (s *Stats) Add(codedBits, dataBits int, r TrialResult) {
	s.Trials++
	s.BitsTransmitted += codedBits
	s.DataBits += dataBits
	s.InsertedFlips += r.Flips
	s.ResidualBitErrors += r.Residual
	if r.Residual > 0 {
		s.CorruptedPackets++
	}
	if dataBits > 0 {
		s.ResidualRate.Update(float64(r.Residual) / float64(dataBits))
	}
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// InsertedErrorRate is the bit error rate before decoding.
func (s Stats) InsertedErrorRate() float64 {
	return ratio(s.InsertedFlips, s.BitsTransmitted)
}

// ResidualBitErrorRate is the bit error rate after decoding.
func (s Stats) ResidualBitErrorRate() float64 {
	return ratio(s.ResidualBitErrors, s.DataBits)
}

func (s Stats) PacketErrorRate() float64 {
	return ratio(s.CorruptedPackets, s.Trials)
}

// ConfidenceInterval returns the normal approximation interval of the residual bit
// error rate for the confidence level (e.g. 0.95).
func (s Stats) ConfidenceInterval(level float64) (low, high float64) {
	p := s.ResidualBitErrorRate()
	if s.DataBits == 0 {
		return 0, 0
	}
	z := distuv.UnitNormal.Quantile(0.5 + level/2)
	half := z * math.Sqrt(p*(1-p)/float64(s.DataBits))
	return math.Max(0, p-half), math.Min(1, p+half)
}

func (s Stats) String() string {
	return fmt.Sprintf("{Trials:%v, Inserted:%0.04f, Residual:%0.04f(+/-%0.04f), Packet:%0.04f}",
		s.Trials,
		s.InsertedErrorRate(),
		s.ResidualRate.Mean, math.Sqrt(s.ResidualRate.SampledVariance()),
		s.PacketErrorRate(),
	)
}

type Checkpoints func(updatedStats Stats)

// Trial sends coded through the channel once, decodes it and counts the bits that
// differ from original.
func Trial(rng *rand.Rand, shape parity2d.Shape, original, coded packet.Packet, errorProbability float64) TrialResult {
	flips, corrupted := bsc.Apply(rng, coded, errorProbability)
	decoded := shape.Decode(corrupted)

	residual := 0
	for k := range decoded {
		if decoded[k] != original[k] {
			residual++
		}
	}
	return TrialResult{Flips: flips, Residual: residual}
}

func Run(ctx context.Context, cfg Config, checkpoints Checkpoints) Stats {
	return RunContinueStats(ctx, cfg, Stats{}, checkpoints)
}

// RunContinueStats runs the trials of cfg that previousStats has not accounted for yet.
// One reference packet is generated from cfg.Seed and encoded once, every trial
// corrupts a fresh copy of it. The counts do not depend on cfg.Threads.
func RunContinueStats(ctx context.Context, cfg Config, previousStats Stats, checkpoints Checkpoints) Stats {
	first := previousStats.Trials
	trialsToRun := cfg.Trials - first
	if trialsToRun <= 0 {
		return previousStats
	}

	original := RandomPacket(rand.New(rand.NewSource(cfg.Seed)), cfg.ByteLength)
	coded := cfg.Shape.Encode(original)
	logrus.Debugf("Running %v trials: packet %v bits, shape %v, coded %v bits, p=%v",
		trialsToRun, len(original), cfg.Shape, len(coded), cfg.ErrorProbability)

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	var bar *pb.ProgressBar
	if cfg.ShowProgress {
		bar = pb.StartNew(trialsToRun)
	}

	//the pool waits for exactly this many chunks
	chunks := (trialsToRun + chunkSize - 1) / chunkSize
	pool := threadpool.NewFixedSize(ctx, threads, chunks)
	statsMux := sync.Mutex{}

	chunk := func(start, end int) {
		rng := rand.New(rand.NewSource(trialSeed(cfg.Seed, start)))
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			result := Trial(rng, cfg.Shape, original, coded, cfg.ErrorProbability)

			statsMux.Lock()
			previousStats.Add(len(coded), len(original), result)
			if checkpoints != nil {
				checkpoints(previousStats) //give them the updated checkpoint
			}
			statsMux.Unlock()

			if cfg.ShowProgress {
				bar.Increment()
			}
		}
	}

	for start := first; start < cfg.Trials; start += chunkSize {
		s, e := start, min(start+chunkSize, cfg.Trials)
		pool.Add(func() { chunk(s, e) })
	}
	pool.Wait()

	if cfg.ShowProgress {
		bar.Finish()
	}
	logrus.Debugf("Finished trials: %v", previousStats)
	return previousStats
}
