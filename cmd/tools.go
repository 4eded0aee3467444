package cmd

import (
	"github.com/nathanhack/fecsim/cmd/internal/tools/chart"
	"github.com/nathanhack/fecsim/cmd/internal/tools/csv"

	"github.com/spf13/cobra"
)

// toolsResultsCmd represents the results command
var toolsResultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:     "chart RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"ch"},
	Short:   "Export to an HTML bar chart",
	Long:    `Export to an HTML bar chart`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    chart.ChartRun,
}

func init() {
	rootCmd.AddCommand(toolsResultsCmd)

	toolsResultsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().BoolVarP(&csv.Inserted, "inserted", "i", false, "outputs the inserted bit error rate instead of the residual bit error rate")
	toolsCSVCmd.Flags().BoolVarP(&csv.Packet, "packet", "p", false, "outputs the packet error rate instead of the residual bit error rate")

	toolsResultsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the chart")
	toolsChartCmd.Flags().BoolVarP(&chart.Inserted, "inserted", "i", false, "charts the inserted bit error rate instead of the residual bit error rate")
	toolsChartCmd.Flags().BoolVarP(&chart.Packet, "packet", "p", false, "charts the packet error rate instead of the residual bit error rate")
}
