package cmd

import (
	"github.com/nathanhack/fecsim/cmd/internal/sim"
	"github.com/nathanhack/fecsim/cmd/internal/sweep"

	"github.com/spf13/cobra"
)

// simCmd represents the sim command
var simCmd = &cobra.Command{
	Use:   "sim PACKET_BYTES TRIALS ERROR_PROB ROWS COLS",
	Short: "Simulates packets sent through a binary symmetric channel",
	Long: `Simulates TRIALS transmissions of a random PACKET_BYTES packet protected by a
ROWS x COLS two dimensional parity code over a channel flipping each bit with
probability ERROR_PROB, then reports the error rates before and after decoding.`,
	Example: "  fecsim sim 1500 1000 0.001 8 4",
	Args:    cobra.ExactArgs(5),
	RunE:    sim.SimRun,
}

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:     "sweep RESULT_JSON",
	Aliases: []string{"s"},
	Short:   "Simulates a list of error probabilities and saves the results",
	Long: `Simulates a list of error probabilities and saves the results to RESULT_JSON.
An existing RESULT_JSON is continued as long as it was made with the same code and packet size.`,
	Args: cobra.ExactArgs(1),
	RunE: sweep.SweepRun,
}

func init() {
	rootCmd.AddCommand(simCmd)
	simCmd.Flags().UintVar(&sim.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	simCmd.Flags().Int64Var(&sim.Seed, "seed", 0, "seed of the simulation (0 means seed from the clock)")
	simCmd.Flags().BoolVar(&sim.Progress, "progress", false, "show a progress bar")
	simCmd.Flags().StringVar(&sim.MetricsAddr, "metrics", "", "serve prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().UintVarP(&sweep.ByteLength, "bytes", "b", 1500, "packet size in bytes")
	sweepCmd.Flags().UintVarP(&sweep.Rows, "rows", "r", 8, "rows of the parity block")
	sweepCmd.Flags().UintVarP(&sweep.Cols, "cols", "c", 4, "columns of the parity block")
	sweepCmd.Flags().UintVarP(&sweep.Trials, "trials", "t", 10_000, "the number of trials per probability")
	sweepCmd.Flags().Float64SliceVarP(&sweep.ErrorProbability, "probability", "p", []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}, "probability of crossover errors to test [0, 1]")
	sweepCmd.Flags().UintVar(&sweep.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	sweepCmd.Flags().Int64Var(&sweep.Seed, "seed", 0, "seed of a new RESULT_JSON (0 means seed from the clock)")
	sweepCmd.Flags().StringVar(&sweep.MetricsAddr, "metrics", "", "serve prometheus metrics on this address (e.g. :9090)")
}
