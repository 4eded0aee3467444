package sim

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nathanhack/fecsim/benchmarking"
	"github.com/nathanhack/fecsim/cmd/internal/metrics"
	"github.com/nathanhack/fecsim/linearblock/parity2d"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Threads     uint
	Seed        int64
	Progress    bool
	MetricsAddr string
)

var SimRun = func(cmd *cobra.Command, args []string) error {
	cfg, err := parseArgs(args)
	if err != nil {
		return err
	}
	//from here on a failure is not a usage problem
	cmd.SilenceUsage = true

	cfg.Threads = int(Threads)
	cfg.ShowProgress = Progress
	cfg.Seed = Seed
	if cfg.Seed == 0 {
		//we seed from the clock so we get something different every time
		cfg.Seed = time.Now().UnixNano()
	}
	logrus.Debugf("Seed: %v", cfg.Seed)

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

	var checkpoints benchmarking.Checkpoints
	if MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		server := metrics.Serve(MetricsAddr, reg)
		defer server.Close()
		checkpoints = m.Checkpoints(cfg.ErrorProbability)
	}

	stats := benchmarking.Run(ctx, cfg, checkpoints)
	printReport(os.Stdout, stats)
	return nil
}

// parseArgs reads PACKET_BYTES TRIALS ERROR_PROB ROWS COLS.
func parseArgs(args []string) (benchmarking.Config, error) {
	if len(args) != 5 {
		return benchmarking.Config{}, fmt.Errorf("requires PACKET_BYTES TRIALS ERROR_PROB ROWS COLS")
	}

	byteLength, err := strconv.Atoi(args[0])
	if err != nil || byteLength <= 0 {
		return benchmarking.Config{}, fmt.Errorf("PACKET_BYTES must be an integer > 0 but found %v", args[0])
	}
	trials, err := strconv.Atoi(args[1])
	if err != nil || trials <= 0 {
		return benchmarking.Config{}, fmt.Errorf("TRIALS must be an integer > 0 but found %v", args[1])
	}
	p, err := strconv.ParseFloat(args[2], 64)
	if err != nil || p < 0 || p > 1 {
		return benchmarking.Config{}, fmt.Errorf("ERROR_PROB must be in [0, 1] but found %v", args[2])
	}
	rows, err := strconv.Atoi(args[3])
	if err != nil {
		return benchmarking.Config{}, fmt.Errorf("ROWS must be an integer but found %v", args[3])
	}
	cols, err := strconv.Atoi(args[4])
	if err != nil {
		return benchmarking.Config{}, fmt.Errorf("COLS must be an integer but found %v", args[4])
	}
	shape := parity2d.Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return benchmarking.Config{}, err
	}

	return benchmarking.Config{
		ByteLength:       byteLength,
		Shape:            shape,
		ErrorProbability: p,
		Trials:           trials,
	}, nil
}

func printReport(w io.Writer, s benchmarking.Stats) {
	low, high := s.ConfidenceInterval(0.95)

	fmt.Fprintf(w, "Simulated transmissions: %d\n\n", s.Trials)
	fmt.Fprintf(w, "Packet bits sent: %d\n", s.DataBits)
	fmt.Fprintf(w, "Coded bits transmitted: %d\n", s.BitsTransmitted)
	fmt.Fprintf(w, "Inserted bit errors: %d\n\n", s.InsertedFlips)
	fmt.Fprintf(w, "Bit error rate (before decoding): %.2f%%\n", s.InsertedErrorRate()*100)
	fmt.Fprintf(w, "Corrupted bits after decoding: %d\n", s.ResidualBitErrors)
	fmt.Fprintf(w, "Bit error rate (after decoding): %.2f%% (95%% CI %.4f%% - %.4f%%)\n\n", s.ResidualBitErrorRate()*100, low*100, high*100)
	fmt.Fprintf(w, "Corrupted packets: %d\n", s.CorruptedPackets)
	fmt.Fprintf(w, "Packet error rate: %.2f%%\n", s.PacketErrorRate()*100)
}
