package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/iti/rwasim"
)

func writeReport(w io.Writer, res *rwasim.ExpResult) {
	fmt.Fprintf(w, "Experiment %s\n", res.Name)

	if res.Catalog != nil {
		fmt.Fprintf(w, "\nAll %d shortest paths per pair:\n", res.Catalog.K)
		for _, pair := range res.Catalog.Pairs() {
			fmt.Fprintf(w, "From %d to %d:\n", pair.Src, pair.Dst)
			for idx, cp := range res.Catalog.Paths[pair] {
				fmt.Fprintf(w, "  %d: Cost = %g, Path = %v\n", idx+1, cp.Cost, cp.Nodes)
			}
		}
	}

	if sel := res.Selection; sel != nil {
		fmt.Fprintln(w, "\nSelected paths with the fewest edges:")
		for _, pair := range sel.Pairs() {
			if cp, ok := sel.Path(pair.Src, pair.Dst); ok {
				fmt.Fprintf(w, "From %d to %d: Path = %v\n", pair.Src, pair.Dst, cp.Nodes)
			} else {
				fmt.Fprintf(w, "From %d to %d: unreachable\n", pair.Src, pair.Dst)
			}
		}
		fmt.Fprintln(w, "\nEdge appearance statistics:")
		fmt.Fprintf(w, "Maximum appearance: %d\n", sel.MaxUsage)
		fmt.Fprintf(w, "Minimum appearance: %d\n", sel.MinUsage)
		fmt.Fprintf(w, "Average appearance: %.2f\n", sel.AvgUsage)
	}

	if plan := res.Lightpaths; plan != nil {
		fmt.Fprintf(w, "\nLightpaths and assigned wavelengths (%d opened):\n", plan.NumWavelengths)
		for _, pair := range plan.Pairs() {
			fmt.Fprintf(w, "From %d to %d: λ%d\n", pair.Src, pair.Dst, plan.Wavelength[pair])
		}
	}

	for _, asgn := range res.Runs {
		fmt.Fprintf(w, "\nWavelength to connections mapping, %s:\n", asgn.Policy)
		for lambda := 1; lambda <= asgn.Wavelengths; lambda++ {
			conns := asgn.Carried(lambda)
			if len(conns) == 0 {
				fmt.Fprintf(w, "λ%d = None\n", lambda)
				continue
			}
			strs := make([]string, 0, len(conns))
			for _, conn := range conns {
				strs = append(strs, fmt.Sprintf("%d-%d", conn.From, conn.To))
			}
			fmt.Fprintf(w, "λ%d = %s\n", lambda, strings.Join(strs, ", "))
		}
		fmt.Fprintf(w, "Percentage of requests blocked: %.2f%% (%d of %d)\n", asgn.BlockedPct, asgn.Blocked, asgn.Total)
	}
}
