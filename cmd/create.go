package cmd

import (
	"github.com/nathanhack/fecsim/cmd/internal/create/parity2d"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "used to create a new ECC",
	Long:    `create writes the linear block form of a code so it can be inspected or used by other tools.`,
}

// createParity2DCmd represents the parity2d command
var createParity2DCmd = &cobra.Command{
	Use:     "parity2d OUTPUT_JSON",
	Aliases: []string{"p2d", "p"},
	Short:   "Creates a two dimensional parity code",
	Long:    `Creates a two dimensional parity code with one parity bit per row and column of a ROWS x COLS block.`,
	Args:    cobra.ExactArgs(1),
	RunE:    parity2d.Parity2DRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createParity2DCmd)
	createParity2DCmd.Flags().UintVarP(&parity2d.Rows, "rows", "r", 8, "rows of the parity block")
	createParity2DCmd.Flags().UintVarP(&parity2d.Cols, "cols", "c", 4, "columns of the parity block")
	createParity2DCmd.Flags().UintVarP(&parity2d.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")
}
