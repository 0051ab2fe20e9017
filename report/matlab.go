package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wiless/plcalc/pathloss"
	"github.com/wiless/vlib"
)

var ErrMatlabExport = errors.New("matlab export")

// SaveMatlab writes the sweep as a MATLAB script that plots itself.
// filename must carry the .m extension and its directory must exist
func SaveMatlab(filename string, s pathloss.SweepResult) error {
	if s.Len() == 0 {
		return fmt.Errorf("empty sweep: %w", ErrMatlabExport)
	}
	if filepath.Ext(filename) != ".m" {
		return fmt.Errorf("%s is not a .m script: %w", filename, ErrMatlabExport)
	}
	// vlib reports nothing when it cannot create the script, so the
	// target is opened once here to surface that error
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrMatlabExport)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%v: %w", err, ErrMatlabExport)
	}

	matlab := vlib.NewMatlab(filename)
	matlab.Silent = true
	matlab.Export("distance", s.DistanceKm)
	matlab.Export("loss", s.LossDb)
	matlab.Command("plot(distance, loss);")
	matlab.Command("grid on;")
	matlab.Command("xlabel('Distance (km)');")
	matlab.Command("ylabel('Path Loss (dB)');")
	matlab.Command(fmt.Sprintf("title('%s');", s.Model.Title()))
	matlab.Close()

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrMatlabExport)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s left empty: %w", filename, ErrMatlabExport)
	}
	return nil
}
