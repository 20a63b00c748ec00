package monitor

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"
	"github.com/benSepanski/lockPlacementBenchmarks/utils"

	"github.com/fatih/color"
)

var colorize = struct {
	Title func(...interface{}) string
	Lock  func(...interface{}) string
}{
	Title: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.Bold).SprintFunc())(is...)
	},
	Lock: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiCyan).SprintFunc())(is...)
	},
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func (a *Analysis) writeSegments(w io.Writer) error {
	fmt.Fprintln(w, colorize.Title("Segments:"))
	tw := newTabWriter(w)
	for s, seg := range a.Segments {
		fmt.Fprintf(tw, "  %d\t%v\taccesses %v\tout of scope %v\n",
			s, seg, a.Extracted.Accessed[s], a.OutOfScope[s])
	}
	return tw.Flush()
}

// writeLocations prints one row per location. extra, if not nil, appends
// further tab-separated cells.
func (a *Analysis) writeLocations(w io.Writer, extra func(id int) string) error {
	fmt.Fprintln(w, colorize.Title("Locations:"))
	tw := newTabWriter(w)
	for id, l := range a.Extracted.Table.All() {
		fmt.Fprintf(tw, "  %d\t%v\t%s\tbefore %v\ttopo %v",
			id, l, l.Kind(), a.AccessedBefore.Successors(id), a.TopoAccessedBefore.Successors(id))
		if extra != nil {
			fmt.Fprint(tw, "\t", extra(id))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// WriteReport prints the segments and locations of the analysis with the
// relations computed for them.
func (a *Analysis) WriteReport(w io.Writer) error {
	fmt.Fprintln(w, colorize.Title("Monitor "+a.Monitor.Name()))
	if err := a.writeSegments(w); err != nil {
		return err
	}
	return a.writeLocations(w, nil)
}

// WriteReport prints the analysis together with the lock of every
// location, its order number and the acquisition plan of every segment.
func (r *Result) WriteReport(w io.Writer) error {
	fmt.Fprintln(w, colorize.Title("Monitor "+r.Monitor.Name()))
	if err := r.writeSegments(w); err != nil {
		return err
	}

	err := r.writeLocations(w, func(id int) string {
		return fmt.Sprintf("order %d\tlock %s", r.Order[id], colorize.Lock(r.Solution.Assignment[id]))
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, colorize.Title("Plans:"))
	tw := newTabWriter(w)
	for s, plan := range r.Plans {
		fmt.Fprintf(tw, "  %d\t%s\n", s, planString(plan))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Cost: %v\n", r.Solution.Cost)
	return err
}

func planString(plan []lockopt.Lock) string {
	if len(plan) == 0 {
		return "-"
	}
	str := ""
	for i, l := range plan {
		if i > 0 {
			str += " "
		}
		str += l.String()
	}
	return colorize.Lock(str)
}
