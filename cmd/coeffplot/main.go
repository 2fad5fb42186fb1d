// Command coeffplot renders the leakage-probability curve f(p) and its
// log2(f(p)) plot from a persisted coefficient file, grounded on the
// teacher's go-echarts plotting style (see Additionnals/plot_pacs_sweep.go).
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"maskverify/coeff"
	"maskverify/coefffile"
)

func main() {
	inPath := flag.String("in", "", "coefficient file to plot (see package coefffile)")
	outPath := flag.String("out", "coeffplot.html", "output HTML file")
	totalWires := flag.Int("total-wires", 0, "circuit wire count the file was written with")
	samples := flag.Int("samples", 200, "number of p samples across (0,1)")
	prec := flag.Uint("prec", 128, "big-float evaluation precision (bits)")
	flag.Parse()

	if *inPath == "" || *totalWires <= 0 {
		fmt.Fprintln(os.Stderr, "usage: coeffplot -in <path> -total-wires <int> [-out <path>] [-samples <int>] [-prec <int>]")
		os.Exit(1)
	}

	file, err := coefffile.Read(*inPath, *totalWires)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *inPath, err)
		os.Exit(1)
	}
	acc := coefffile.ToAccumulator(file.Unfaulted)

	ps := make([]string, 0, *samples)
	fValues := make([]opts.LineData, 0, *samples)
	logValues := make([]opts.LineData, 0, *samples)
	for i := 1; i < *samples; i++ {
		p := float64(i) / float64(*samples)
		f := acc.EvaluateBounded(p, *prec, *totalWires, coeff.LowerBound)
		ff, _ := f.Float64()
		ps = append(ps, fmt.Sprintf("%.4f", p))
		fValues = append(fValues, opts.LineData{Value: ff})
		logValues = append(logValues, opts.LineData{Value: log2Safe(ff)})
	}

	page := components.NewPage().SetPageTitle("Leakage probability f(p)")

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Leakage probability vs. per-wire probing rate"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "p"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "f(p)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(ps).
		AddSeries("f(p)", fValues).
		AddSeries("log2(f(p))", logValues)

	page.AddCharts(line)

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d samples)\n", *outPath, len(ps))
}

func log2Safe(f float64) float64 {
	if f <= 0 {
		return math.Inf(-1)
	}
	return math.Log2(f)
}
