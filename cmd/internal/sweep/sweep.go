package sweep

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/fecsim/benchmarking"
	"github.com/nathanhack/fecsim/cmd/internal/metrics"
	"github.com/nathanhack/fecsim/cmd/internal/tools"
	"github.com/nathanhack/fecsim/linearblock/parity2d"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	ByteLength       uint
	Rows             uint
	Cols             uint
	Trials           uint
	ErrorProbability []float64
	Threads          uint
	Seed             int64
	MetricsAddr      string
)

const checkpointEvery = 1000

var SweepRun = func(cmd *cobra.Command, args []string) error {
	shape := parity2d.Shape{Rows: int(Rows), Cols: int(Cols)}
	if err := validate(shape); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	//next we see if the RESULT_JSON exists if so we load it and validate we're running it against the right thing
	data, err := tools.LoadResults(args[0])
	if err != nil {
		return err
	}

	//if data is nil then we create it
	if data == nil {
		seed := Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		data = &tools.SimulationStats{
			TypeInfo:   typeInfo(shape),
			ECCInfo:    eccInfo(shape),
			ByteLength: int(ByteLength),
			Seed:       seed,
			Stats:      make(map[float64]benchmarking.Stats),
		}
	}

	//in either case lets validate it
	if err := matches(data, shape, int(ByteLength)); err != nil {
		return err
	}
	logrus.Debugf("Seed: %v", data.Seed)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	var m *metrics.Metrics
	if MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		server := metrics.Serve(MetricsAddr, reg)
		defer server.Close()
	}

	runSimulation(ctx, data, shape, args[0], m)

	return tools.SaveResults(args[0], data)
}

func validate(shape parity2d.Shape) error {
	if ByteLength == 0 {
		return fmt.Errorf("bytes must be > 0")
	}
	if Trials == 0 {
		return fmt.Errorf("trials must be > 0")
	}
	for _, p := range ErrorProbability {
		if p < 0 || p > 1 {
			return fmt.Errorf("probability must be in [0, 1] but found %v", p)
		}
	}
	return shape.Validate()
}

func typeInfo(shape parity2d.Shape) string {
	t := reflect.TypeOf(shape)
	return fmt.Sprintf("BSC:%v/%v(%v)", t.PkgPath(), t.Name(), shape)
}

func eccInfo(shape parity2d.Shape) string {
	return tools.Md5Sum(parity2d.New(shape).H)
}

// matches reports whether data was produced by the same code and packet size.
func matches(data *tools.SimulationStats, shape parity2d.Shape, byteLength int) error {
	if data.TypeInfo != typeInfo(shape) {
		return fmt.Errorf("results loaded do not match the same type expected %v but found %v", typeInfo(shape), data.TypeInfo)
	}
	if data.ECCInfo != eccInfo(shape) {
		return fmt.Errorf("results loaded do not match the ECC")
	}
	if data.ByteLength != byteLength {
		return fmt.Errorf("results loaded were made with %v byte packets not %v", data.ByteLength, byteLength)
	}
	return nil
}

// runSimulation grows every probability's trial count in steps so an interrupted sweep
// has comparable results for all of them.
func runSimulation(ctx context.Context, data *tools.SimulationStats, shape parity2d.Shape, outputFilename string, m *metrics.Metrics) {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	numberOfThread := int(Threads)
	if numberOfThread == 0 {
		numberOfThread = runtime.NumCPU()
	}

	if m != nil {
		for _, p := range ErrorProbability {
			m.Baseline(p, data.Stats[p])
		}
	}

	trialsPerIter := numberOfThread * 64
	bar := pb.StartNew(int(Trials) * len(ErrorProbability))
	for _, p := range ErrorProbability {
		bar.Add(min(data.Stats[p].Trials, int(Trials)))
	}

trialLoops:
	for t := trialsPerIter; ; t += trialsPerIter {
		target := min(t, int(Trials))

		for _, p := range ErrorProbability {
			select {
			case <-ctx.Done():
				break trialLoops
			default:
			}

			previous := data.Stats[p]
			if previous.Trials >= target {
				continue
			}

			checkpoint := func(stats benchmarking.Stats) {
				//we want to save the checkpoint
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				data.Stats[p] = stats
				if m != nil {
					m.Checkpoint(p, stats)
				}

				if checkpointCount%checkpointEvery == 0 {
					err := tools.SaveResults(outputFilename, data)
					if err != nil {
						logrus.Errorf("checkpoint: %v", err)
					}
				}
				checkpointCount++
			}

			cfg := benchmarking.Config{
				ByteLength:       data.ByteLength,
				Shape:            shape,
				ErrorProbability: p,
				Trials:           target,
				Threads:          numberOfThread,
				Seed:             data.Seed,
			}
			stats := benchmarking.RunContinueStats(ctx, cfg, previous, checkpoint)

			checkpointMux.Lock()
			data.Stats[p] = stats
			checkpointMux.Unlock()
			bar.Add(stats.Trials - previous.Trials)
		}

		if target == int(Trials) {
			break
		}
	}
	bar.Finish()

	for _, p := range ErrorProbability {
		logrus.Infof("p=%v %v", p, data.Stats[p])
	}
}
