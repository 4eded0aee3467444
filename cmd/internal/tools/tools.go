package tools

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/nathanhack/fecsim/benchmarking"
	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/slices"
)

// SimulationStats is the content of a RESULT_JSON file, one entry per error probability.
type SimulationStats struct {
	TypeInfo   string
	ECCInfo    string
	ByteLength int
	Seed       int64
	Stats      map[float64]benchmarking.Stats
}
type simulationStats struct {
	TypeInfo   string
	ECCInfo    string
	ByteLength int
	Seed       int64
	Stats      map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		TypeInfo:   s.TypeInfo,
		ECCInfo:    s.ECCInfo,
		ByteLength: s.ByteLength,
		Seed:       s.Seed,
		Stats:      map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.TypeInfo = ss.TypeInfo
	s.ECCInfo = ss.ECCInfo
	s.ByteLength = ss.ByteLength
	s.Seed = ss.Seed
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

// Md5Sum fingerprints a parity check matrix.
func Md5Sum(H mat.SparseMat) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(H.String())))
}

// LoadResults reads a RESULT_JSON file, a missing file is not an error and returns nil.
func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %v", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %v", filepath, err)
	}
	return &stat, nil
}

func SaveResults(filepath string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %v", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %v", filepath, err)
	}
	return nil
}

// Probabilities returns every error probability found in stats, sorted.
func Probabilities(stats []*SimulationStats) []float64 {
	seen := make(map[float64]bool)
	for _, s := range stats {
		for p := range s.Stats {
			seen[p] = true
		}
	}

	result := make([]float64, 0, len(seen))
	for p := range seen {
		result = append(result, p)
	}
	slices.Sort(result)
	return result
}

// Measure selects which rate of a benchmarking.Stats is reported.
type Measure int

const (
	ResidualBitError Measure = iota
	InsertedBitError
	PacketError
)

func (m Measure) Value(s benchmarking.Stats) float64 {
	switch m {
	case InsertedBitError:
		return s.InsertedErrorRate()
	case PacketError:
		return s.PacketErrorRate()
	default:
		return s.ResidualBitErrorRate()
	}
}

func (m Measure) String() string {
	switch m {
	case InsertedBitError:
		return "Inserted Bit Error Rate"
	case PacketError:
		return "Packet Error Rate"
	default:
		return "Residual Bit Error Rate"
	}
}

// SelectMeasure maps the --inserted/--packet flags of the results commands to a Measure.
func SelectMeasure(inserted, packet bool) Measure {
	switch {
	case inserted:
		return InsertedBitError
	case packet:
		return PacketError
	default:
		return ResidualBitError
	}
}
