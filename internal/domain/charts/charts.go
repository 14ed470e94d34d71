// Package charts builds declarative chart specifications from season views.
// Builders are pure: they are called fresh per render with already filtered
// data and never touch shared state.
package charts

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pitwall/pitboard/internal/domain/model"
	"github.com/pitwall/pitboard/internal/domain/standings"
)

// GeoScatterSpec describes a world map of circuits, one trace per country so
// the renderer can color markers by country.
type GeoScatterSpec struct {
	Traces []GeoTrace `json:"traces"`
}

// GeoTrace holds the markers of a single country.
type GeoTrace struct {
	Country string    `json:"country"`
	Lats    []float64 `json:"lats"`
	Lngs    []float64 `json:"lngs"`
	Names   []string  `json:"names"`  // hover names, one per marker
	Labels  []string  `json:"labels"` // round numbers shown next to markers
}

// LineChartSpec describes the driver progression chart: one trace per driver
// code, x = round, y = points at that round.
type LineChartSpec struct {
	XTitle      string      `json:"x_title"`
	YTitle      string      `json:"y_title"`
	LegendTitle string      `json:"legend_title"`
	Traces      []LineTrace `json:"traces"`
}

// LineTrace holds one driver's points per round.
type LineTrace struct {
	Code string    `json:"code"`
	Name string    `json:"name"`
	X    []int     `json:"x"`
	Y    []float64 `json:"y"`
}

// BarChartSpec describes the final standings bar chart: one horizontal bar
// per driver, x = points, y = driver code.
type BarChartSpec struct {
	XTitle      string       `json:"x_title"`
	YTitle      string       `json:"y_title"`
	Bars        []Bar        `json:"bars"`
	Annotations []Annotation `json:"annotations"`
}

// Bar is one driver's standing.
type Bar struct {
	Code   string  `json:"code"`
	Label  string  `json:"label"` // "{position}. {forename} {surname}"
	Points float64 `json:"points"`
}

// Annotation marks a zero-length bar: the label is drawn as free text at x=0
// since there is no bar to put it inside.
type Annotation struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// WorldMap builds the circuits map, one marker per circuit at (lat, lng),
// grouped into per-country traces, labeled by round number. Countries are
// emitted in first-seen order so marker colors stay stable for a season.
func WorldMap(circuits []model.Circuit) GeoScatterSpec {
	index := make(map[string]int)
	spec := GeoScatterSpec{Traces: []GeoTrace{}}
	for _, c := range circuits {
		i, ok := index[c.Country]
		if !ok {
			i = len(spec.Traces)
			index[c.Country] = i
			spec.Traces = append(spec.Traces, GeoTrace{Country: c.Country})
		}
		t := &spec.Traces[i]
		t.Lats = append(t.Lats, c.Lat)
		t.Lngs = append(t.Lngs, c.Lng)
		t.Names = append(t.Names, c.Name)
		t.Labels = append(t.Labels, strconv.Itoa(c.Round))
	}
	return spec
}

// DriverProgression builds the points-per-round line chart. Traces follow
// codeOrder (typically final standings order) so the legend reads like the
// championship table; codes missing from codeOrder are appended in
// first-seen order. Points are the raw per-round standings column, not a
// cumulative sum recomputed here.
func DriverProgression(drivers []model.DriverResult, codeOrder []string) LineChartSpec {
	rows := make([]model.DriverResult, len(drivers))
	copy(rows, drivers)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Round < rows[j].Round })

	byCode := make(map[string]*LineTrace)
	var seen []string
	for _, d := range rows {
		t, ok := byCode[d.Code]
		if !ok {
			t = &LineTrace{Code: d.Code, Name: d.FullName()}
			byCode[d.Code] = t
			seen = append(seen, d.Code)
		}
		t.X = append(t.X, d.Round)
		t.Y = append(t.Y, d.Points)
	}

	spec := LineChartSpec{
		XTitle:      "Race Number",
		YTitle:      "Driver Points",
		LegendTitle: "Driver",
	}
	emitted := make(map[string]bool)
	for _, code := range codeOrder {
		if t, ok := byCode[code]; ok && !emitted[code] {
			spec.Traces = append(spec.Traces, *t)
			emitted[code] = true
		}
	}
	for _, code := range seen {
		if !emitted[code] {
			spec.Traces = append(spec.Traces, *byCode[code])
		}
	}
	return spec
}

// DriverPointsBar builds the final standings bar chart. Drivers with zero
// points get an explicit annotation instead of an inline bar label.
func DriverPointsBar(rankings standings.Rankings) BarChartSpec {
	spec := BarChartSpec{
		XTitle: "Driver Points",
		YTitle: "Driver",
	}
	for _, d := range rankings {
		label := fmt.Sprintf("%d. %s", d.Position, d.FullName())
		spec.Bars = append(spec.Bars, Bar{Code: d.Code, Label: label, Points: d.Points})
		if d.Points == 0 {
			spec.Annotations = append(spec.Annotations, Annotation{Code: d.Code, Label: label})
		}
	}
	return spec
}

// WinnerBanner formats the season winner as "Forename Surname [number]".
// Fails with standings.ErrEmptyRankings when there is no winner to show.
func WinnerBanner(rankings standings.Rankings) (string, error) {
	winner, err := rankings.Leader()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s [%d]", winner.FullName(), winner.Number), nil
}
