package simtool

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hqin/oicoach/internal/domain/types"
)

// WriteReport renders a summary as an aligned text table.
func WriteReport(w io.Writer, s *Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "seasons\t%d\n", s.Seasons)
	fmt.Fprintf(tw, "chain failures\t%d (%.1f%%)\n", s.ChainFailures, s.FailureRate()*100)
	fmt.Fprintf(tw, "avg funds\t%.0f\n", s.AvgFunds())
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "stage\theld\tpassed\tavg passed")
	for _, stage := range types.Stages() {
		held := s.StageHeld[stage]
		passed := s.StagePassed[stage]
		avg := 0.0
		if held > 0 {
			avg = float64(passed) / float64(held)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\n", stage, held, passed, avg)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "medal\tcount")
	for _, m := range []types.Medal{types.MedalGold, types.MedalSilver, types.MedalBronze} {
		fmt.Fprintf(tw, "%s\t%d\n", m, s.Medals[m])
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
