// Package report renders path loss results for people and other tools
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jszwec/csvutil"
	"github.com/wiless/plcalc/pathloss"
	"gopkg.in/yaml.v3"
)

const (
	Text   Format = "text"
	CSV    Format = "csv"
	YAML   Format = "yaml"
	Matlab Format = "matlab"
	PNG    Format = "png"
)

type Format string

var validFormats = map[Format]struct{}{
	Text:   {},
	CSV:    {},
	YAML:   {},
	Matlab: {},
	PNG:    {},
}

var ErrUnsupportedFormat = errors.New("unsupported format")

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validFormats[f]; !ok {
		return "", fmt.Errorf("format %q: %w", s, ErrUnsupportedFormat)
	}
	return f, nil
}

// NeedsFile reports whether f can only be written to a named file
func (f Format) NeedsFile() bool {
	return f == Matlab || f == PNG
}

// FrequencyLabel formats a frequency in MHz with an SI prefix, e.g. "1.8 GHz"
func FrequencyLabel(freqMHz float64) string {
	v, prefix := humanize.ComputeSI(freqMHz * 1e6)
	return fmt.Sprintf("%s %sHz", humanize.Ftoa(v), prefix)
}

// Caption summarises the link parameters of a sweep
func Caption(p pathloss.Parameters) string {
	return fmt.Sprintf("%s, hte %s m, hre %s m, %s",
		FrequencyLabel(p.FreqMHz), humanize.Ftoa(p.BSHeightM), humanize.Ftoa(p.MSHeightM), p.Area)
}

// WriteResult writes a scalar result as text, CSV or YAML
func WriteResult(w io.Writer, f Format, r pathloss.Result) error {
	switch f {
	case Text:
		_, err := fmt.Fprintln(w, r.String())
		return err
	case CSV:
		return writeCSV(w, []pathloss.Point{{DistanceKm: r.Params.DistanceKm, LossDb: r.LossDb}})
	case YAML:
		return writeYAML(w, resultDoc{
			Model:  r.Model.Name(),
			Area:   r.Params.Area.String(),
			Result: r,
		})
	}
	return fmt.Errorf("%s for a single value: %w", f, ErrUnsupportedFormat)
}

// WriteSweep writes a sweep as a text table, CSV, YAML or a PNG chart
func WriteSweep(w io.Writer, f Format, s pathloss.SweepResult) error {
	switch f {
	case Text:
		return writeTable(w, s)
	case CSV:
		return writeCSV(w, s.Points())
	case YAML:
		return writeYAML(w, sweepDoc{
			Model:   s.Model.Name(),
			Area:    s.Params.Area.String(),
			Params:  s.Params,
			Samples: s.Points(),
		})
	case PNG:
		chart, err := NewChart(DefaultWidth, DefaultHeight)
		if err != nil {
			return err
		}
		return chart.WritePNG(w, s)
	}
	return fmt.Errorf("%s for a sweep: %w", f, ErrUnsupportedFormat)
}

func writeTable(w io.Writer, s pathloss.SweepResult) error {
	fmt.Fprintf(w, "%s (%s)\n", s.Model.Title(), Caption(s.Params))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Distance (km)\tPath Loss (dB)\t")
	s.Each(func(d, loss float64) bool {
		fmt.Fprintf(tw, "%.3f\t%.2f\t\n", d, loss)
		return true
	})
	return tw.Flush()
}

func writeCSV(w io.Writer, points []pathloss.Point) error {
	b, err := csvutil.Marshal(points)
	if err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}
	_, err = io.Copy(w, bytes.NewReader(b))
	return err
}

type resultDoc struct {
	Model  string          `yaml:"model"`
	Area   string          `yaml:"area"`
	Result pathloss.Result `yaml:",inline"`
}

type sweepDoc struct {
	Model   string              `yaml:"model"`
	Area    string              `yaml:"area"`
	Params  pathloss.Parameters `yaml:"parameters"`
	Samples []pathloss.Point    `yaml:"samples"`
}

func writeYAML(w io.Writer, doc interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
