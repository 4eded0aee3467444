package chart

import (
	"fmt"
	"os"

	"github.com/nathanhack/fecsim/cmd/internal/tools"
	"github.com/spf13/cobra"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var OutputFile string
var Inserted bool
var Packet bool

var ChartRun = func(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	// loop through all the results files and collect data needed for displaying
	stats := make([]*tools.SimulationStats, len(args))
	var err error
	for i, resultFile := range args {
		stats[i], err = tools.LoadResults(resultFile)
		if err != nil {
			return err
		}
		if stats[i] == nil {
			return fmt.Errorf("results file %v not found", resultFile)
		}
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return newBar(args, stats, tools.SelectMeasure(Inserted, Packet)).Render(f)
}

func newBar(names []string, stats []*tools.SimulationStats, measure tools.Measure) *charts.Bar {
	//now make the x axis values
	xvalues, xnames := xAxisAndValues(stats)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Results",
			Subtitle: measure.String(),
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
			Type:   "scroll",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Error Probability",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      measure.String(),
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	bar.SetXAxis(xnames)

	for i, s := range stats {
		bar.AddSeries(names[i], series(s, xvalues, measure))
	}
	return bar
}

func xAxisAndValues(stats []*tools.SimulationStats) ([]float64, []string) {
	nums := tools.Probabilities(stats)
	strs := make([]string, 0, len(nums))
	for _, n := range nums {
		strs = append(strs, fmt.Sprint(n))
	}
	return nums, strs
}

func series(stat *tools.SimulationStats, values []float64, measure tools.Measure) []opts.BarData {
	results := make([]opts.BarData, len(values))
	null := opts.BarData{Value: nil}
	for i, v := range values {
		x, has := stat.Stats[v]
		if !has {
			results[i] = null
			continue
		}

		results[i] = opts.BarData{
			Value: measure.Value(x),
		}
	}
	return results
}
