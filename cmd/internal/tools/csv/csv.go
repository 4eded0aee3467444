package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathanhack/fecsim/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var Inserted bool
var Packet bool

var CSVRun = func(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

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

	return write(f, args, stats, tools.SelectMeasure(Inserted, Packet))
}

func write(out io.Writer, names []string, stats []*tools.SimulationStats, measure tools.Measure) error {
	w := csv.NewWriter(out)

	//first write headers
	probabilities := tools.Probabilities(stats)
	header := []string{"Results File"}
	for _, p := range probabilities {
		header = append(header, fmt.Sprintf("%v", p))
	}

	err := w.Write(header)
	if err != nil {
		return err
	}

	for i, s := range stats {
		record := make([]string, len(header))
		record[0] = strings.TrimSuffix(names[i], filepath.Ext(names[i]))

		for j, p := range probabilities {
			v, has := s.Stats[p]
			if has {
				record[j+1] = fmt.Sprintf("%v", measure.Value(v))
			}
		}

		err = w.Write(record)
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
