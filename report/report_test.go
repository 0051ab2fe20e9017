package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/plcalc/pathloss"
	"github.com/wiless/plcalc/report"
	"gopkg.in/yaml.v3"
)

func params() pathloss.Parameters {
	return pathloss.Parameters{FreqMHz: 900, BSHeightM: 50, MSHeightM: 1.5, DistanceKm: 10, Area: pathloss.Urban}
}

func sweep(t *testing.T, samples int) pathloss.SweepResult {
	t.Helper()
	s, err := pathloss.Sweep(pathloss.Hata, params(), 1, 20, samples)
	require.NoError(t, err)
	return s
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, report.CSV, f)
	assert.False(t, f.NeedsFile())
	assert.True(t, report.Matlab.NeedsFile())
	assert.True(t, report.PNG.NeedsFile())

	_, err = report.ParseFormat("xlsx")
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestFrequencyLabel(t *testing.T) {
	assert.Equal(t, "900 MHz", report.FrequencyLabel(900))
	assert.Equal(t, "1.8 GHz", report.FrequencyLabel(1800))
	assert.Equal(t, "900 MHz, hte 50 m, hre 1.5 m, Urban", report.Caption(params()))
}

func TestWriteResultText(t *testing.T) {
	r, err := pathloss.Evaluate(pathloss.Hata, params())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteResult(&buf, report.Text, r))
	assert.Equal(t, "Path Loss: 157.13 dB\n", buf.String())
}

func TestWriteResultYAML(t *testing.T) {
	r, err := pathloss.Evaluate(pathloss.COST231, params())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteResult(&buf, report.YAML, r))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "COST231 Model", doc["model"])
	assert.Equal(t, "Urban", doc["area"])
	assert.InDelta(t, r.LossDb, doc["path_loss_db"], 1e-9)
}

func TestWriteResultRejectsChart(t *testing.T) {
	r, err := pathloss.Evaluate(pathloss.Hata, params())
	require.NoError(t, err)
	err = report.WriteResult(&bytes.Buffer{}, report.PNG, r)
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestWriteSweepText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteSweep(&buf, report.Text, sweep(t, 10)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "Hata Model Path Loss vs Distance (900 MHz, hte 50 m, hre 1.5 m, Urban)", lines[0])
	assert.Contains(t, lines[1], "Distance (km)")
	assert.Contains(t, lines[1], "Path Loss (dB)")
	assert.Contains(t, lines[2], "1.000")
	assert.Contains(t, lines[11], "20.000")
}

func TestWriteSweepCSV(t *testing.T) {
	s := sweep(t, 20)
	var buf bytes.Buffer
	require.NoError(t, report.WriteSweep(&buf, report.CSV, s))
	assert.True(t, strings.HasPrefix(buf.String(), "distance_km,path_loss_db\n"))

	var points []pathloss.Point
	require.NoError(t, csvutil.Unmarshal(buf.Bytes(), &points))
	assert.Equal(t, s.Points(), points)
}

func TestWriteSweepYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteSweep(&buf, report.YAML, sweep(t, 5)))

	var doc struct {
		Model   string           `yaml:"model"`
		Params  map[string]any   `yaml:"parameters"`
		Samples []pathloss.Point `yaml:"samples"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Hata Model", doc.Model)
	assert.NotContains(t, doc.Params, "distance_km")
	require.Len(t, doc.Samples, 5)
	assert.Equal(t, 20.0, doc.Samples[4].DistanceKm)
}

func TestWriteSweepMatlabNeedsFile(t *testing.T) {
	err := report.WriteSweep(&bytes.Buffer{}, report.Matlab, sweep(t, 5))
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestSaveMatlab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.m")
	require.NoError(t, report.SaveMatlab(path, sweep(t, 5)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Hata Model Path Loss vs Distance")
}

func TestSaveMatlabErrors(t *testing.T) {
	dir := t.TempDir()

	err := report.SaveMatlab(filepath.Join(dir, "empty.m"), pathloss.SweepResult{})
	assert.ErrorIs(t, err, report.ErrMatlabExport)

	err = report.SaveMatlab(filepath.Join(dir, "sweep.txt"), sweep(t, 5))
	assert.ErrorIs(t, err, report.ErrMatlabExport)

	missing := filepath.Join(dir, "no", "such", "dir", "sweep.m")
	err = report.SaveMatlab(missing, sweep(t, 5))
	assert.ErrorIs(t, err, report.ErrMatlabExport)
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))

	// a directory in place of the script
	taken := filepath.Join(dir, "taken.m")
	require.NoError(t, os.Mkdir(taken, 0o755))
	err = report.SaveMatlab(taken, sweep(t, 5))
	assert.ErrorIs(t, err, report.ErrMatlabExport)
}
