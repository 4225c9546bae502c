package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/etnz/fund"
	"github.com/etnz/fund/date"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Base100Chart renders the NAV and the benchmark rebased to 100 as a PNG line chart.
func Base100Chart(w io.Writer, title string, b fund.Base100) error {
	if b.NAV.Len() < 2 {
		return fmt.Errorf("need at least 2 common data points, got %d", b.NAV.Len())
	}

	navSeries := chart.TimeSeries{
		Name: "NAV",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
	}
	navSeries.XValues, navSeries.YValues = timeSeries(b.NAV)

	benchSeries := chart.TimeSeries{
		Name: "Benchmark",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
	}
	benchSeries.XValues, benchSeries.YValues = timeSeries(b.Benchmark)

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("02 Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{navSeries, benchSeries},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}

func timeSeries(h *date.History[float64]) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, h.Len())
	ys := make([]float64, 0, h.Len())
	for on, v := range h.Values() {
		xs = append(xs, on.Time())
		ys = append(ys, v)
	}
	return xs, ys
}

// WeightsChart renders the weight of each long holding as a PNG pie chart.
func WeightsChart(w io.Writer, title string, c *fund.Composition) error {
	var values []chart.Value
	for _, h := range c.Holdings {
		if v, ok := h.Weight.Get(); ok && v > 0 {
			values = append(values, chart.Value{Label: h.Ticker, Value: v})
		}
	}
	return renderPie(w, title, values)
}

// SectorsChart renders the weight of each sector as a PNG pie chart.
func SectorsChart(w io.Writer, title string, sectors []fund.SectorWeight) error {
	var values []chart.Value
	for _, s := range sectors {
		label := s.Sector
		if label == "" {
			label = "-"
		}
		if v, ok := s.Weight.Get(); ok && v > 0 {
			values = append(values, chart.Value{Label: label, Value: v})
		}
	}
	return renderPie(w, title, values)
}

func renderPie(w io.Writer, title string, values []chart.Value) error {
	if len(values) == 0 {
		return fmt.Errorf("no positive weight to chart")
	}
	pie := chart.PieChart{
		Title:  title,
		Width:  512,
		Height: 512,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}
