// Package plot renders the decompression log as line charts.
package plot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/perf-lab/imgbench/benchmark"
)

// Chart output file names.
const (
	SpeedupChartFile    = "speedup.html"
	EfficiencyChartFile = "efficiency.html"
)

// Render reads the decompression log at logPath and writes two HTML
// charts into outDir: average speedup vs. worker count and average
// efficiency vs. worker count, one labeled series per image count.
func Render(logPath, outDir string) error {
	rows, err := benchmark.ReadLog(logPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "creating plot directory")
	}

	speedup := buildChart(rows,
		"Average Speedup vs. Number of Processes",
		"Average Speedup",
		func(r benchmark.Row) float64 { return r.SpeedupAvg })
	if err := writeChart(speedup, filepath.Join(outDir, SpeedupChartFile)); err != nil {
		return err
	}

	efficiency := buildChart(rows,
		"Average Efficiency vs. Number of Processes",
		"Average Efficiency",
		func(r benchmark.Row) float64 { return r.EfficiencyAvg })
	return writeChart(efficiency, filepath.Join(outDir, EfficiencyChartFile))
}

// buildChart groups rows by image count and plots value(row) against
// the worker count. Non-finite values are dropped; a chart cannot place
// +Inf on an axis.
func buildChart(rows []benchmark.Row, title, yName string, value func(benchmark.Row) float64) *charts.Line {
	groups := make(map[int]map[int]float64)
	workerSet := make(map[int]struct{})
	for _, row := range rows {
		v := value(row)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		if groups[row.Images] == nil {
			groups[row.Images] = make(map[int]float64)
		}
		groups[row.Images][row.Workers] = v
		workerSet[row.Workers] = struct{}{}
	}

	workers := make([]int, 0, len(workerSet))
	for w := range workerSet {
		workers = append(workers, w)
	}
	sort.Ints(workers)

	imageCounts := make([]int, 0, len(groups))
	for images := range groups {
		imageCounts = append(imageCounts, images)
	}
	sort.Ints(imageCounts)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Number of Processes"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	xLabels := make([]string, len(workers))
	for i, w := range workers {
		xLabels[i] = strconv.Itoa(w)
	}
	line.SetXAxis(xLabels)

	for _, images := range imageCounts {
		points := make([]opts.LineData, 0, len(workers))
		for _, w := range workers {
			v, ok := groups[images][w]
			if !ok {
				points = append(points, opts.LineData{Value: nil})
				continue
			}
			points = append(points, opts.LineData{Value: v})
		}
		line.AddSeries(fmt.Sprintf("Num_Images = %d", images), points)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))

	return line
}

func writeChart(chart *charts.Line, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating chart %s", path)
	}
	defer f.Close()
	return errors.Wrapf(chart.Render(f), "rendering chart %s", path)
}
