// Copyright (c) 2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package chart renders label/value series as PNG bar charts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	chartlib "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// Defaults.
const (
	DefTitle  = "Dict Plot"
	DefYLabel = "Values"

	defWidth    = 800
	defHeight   = 500
	defBarWidth = 60
)

// Series is a single labelled bar.
type Series struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// FromMap converts a label to value map into a Series slice, sorted by
// label for deterministic output.
func FromMap(m map[string]float64) []Series {
	s := make([]Series, 0, len(m))
	for k, v := range m {
		s = append(s, Series{Label: k, Value: v})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Label < s[j].Label })
	return s
}

// Options controls chart appearance.  Zero values fall back to defaults.
type Options struct {
	Title  string
	YLabel string
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefTitle
	}
	if o.YLabel == "" {
		o.YLabel = DefYLabel
	}
	if o.Width <= 0 {
		o.Width = defWidth
	}
	if o.Height <= 0 {
		o.Height = defHeight
	}
	return o
}

// barStyle mimics the original skyblue fill with a black edge.
var barStyle = chartlib.Style{
	FillColor:   drawing.ColorFromHex("87ceeb"),
	StrokeColor: drawing.ColorBlack,
	StrokeWidth: 1,
}

// yRange returns an explicit y axis range anchored at zero.  Left to its
// own devices the library derives the range from the values and rejects
// series whose values are all equal (a single bar included) with an
// "invalid data range" error.
func yRange(series []Series) chartlib.Range {
	var lo, hi float64
	for _, s := range series {
		if s.Value < lo {
			lo = s.Value
		}
		if s.Value > hi {
			hi = s.Value
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &chartlib.ContinuousRange{Min: lo, Max: hi}
}

// Render writes a PNG bar chart of series to w.
func Render(w io.Writer, series []Series, opt Options) error {
	if len(series) == 0 {
		return ErrNoData
	}
	opt = opt.withDefaults()

	bars := make([]chartlib.Value, 0, len(series))
	for _, s := range series {
		bars = append(bars, chartlib.Value{
			Label: s.Label,
			Value: s.Value,
			Style: barStyle,
		})
	}

	graph := chartlib.BarChart{
		Title:    opt.Title,
		Width:    opt.Width,
		Height:   opt.Height,
		BarWidth: defBarWidth,
		Background: chartlib.Style{
			Padding: chartlib.Box{Top: 40},
		},
		YAxis: chartlib.YAxis{
			Name:  opt.YLabel,
			Range: yRange(series),
		},
		Bars: bars,
	}
	if err := graph.Render(chartlib.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// Save renders the chart into the file at path, creating missing parent
// directories.
func Save(path string, series []Series, opt Options) error {
	if len(series) == 0 {
		return ErrNoData
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save chart: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	defer f.Close()
	if err := Render(f, series, opt); err != nil {
		return err
	}
	return f.Close()
}
