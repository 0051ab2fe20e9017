package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/plcalc/pathloss"
	"github.com/wiless/plcalc/report"
)

const (
	msgInvalid     = "Invalid input values"
	msgInvalidPlot = "Invalid input values for plotting"
)

var alert = color.New(color.FgRed, color.Bold)

// Main runs plcalc with args and returns the process exit code
func Main(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)
	log.SetLevel(log.WarnLevel)

	cfg, err := Load(args, stderr)
	if err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			return 0
		case errors.Is(err, pathloss.ErrInvalidParameter):
			alert.Fprintln(stderr, invalidMessage(cfg))
		default:
			fmt.Fprintln(stderr, err)
		}
		log.WithError(err).Debug("loading configuration")
		return 1
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := Run(cfg, stdout); err != nil {
		if errors.Is(err, pathloss.ErrInvalidParameter) || errors.Is(err, pathloss.ErrInvalidRange) {
			alert.Fprintln(stderr, invalidMessage(cfg))
		}
		log.WithError(err).WithField("command", cfg.Command).Error("plcalc failed")
		return 1
	}
	return 0
}

// invalidMessage is the user facing text for rejected input. cfg may be nil
// when loading failed before the command was known
func invalidMessage(cfg *Config) string {
	if cfg != nil && cfg.Command == CmdSweep {
		return msgInvalidPlot
	}
	return msgInvalid
}

// Run executes the command in cfg. Text formats go to stdout unless an
// output file is configured
func Run(cfg *Config, stdout io.Writer) error {
	s := cfg.Setting
	fields := log.Fields{
		"model": s.Type,
		"area":  s.Area,
		"fc":    s.FreqMHz,
		"hte":   s.BSHeightM,
		"hre":   s.MSHeightM,
	}

	switch cfg.Command {
	case CmdModels:
		for _, m := range []pathloss.ModelType{pathloss.Hata, pathloss.COST231} {
			fmt.Fprintf(stdout, "%-8s %s\n", m, m.Name())
		}
		return nil

	case CmdCalc:
		fields["d"] = s.DistanceKm
		log.WithFields(fields).Debug("evaluating path loss")
		res, err := s.Evaluate()
		if err != nil {
			return err
		}
		log.WithFields(fields).WithField("loss_db", res.LossDb).Info("path loss evaluated")
		return output(cfg, stdout, func(w io.Writer) error {
			return report.WriteResult(w, cfg.Format, res)
		})

	case CmdSweep:
		fields["start"], fields["end"], fields["samples"] = s.StartKm, s.EndKm, s.Samples
		log.WithFields(fields).Debug("sweeping distance")
		res, err := s.Sweep()
		if err != nil {
			return err
		}
		log.WithFields(fields).WithField("points", res.Len()).Info("distance sweep evaluated")
		if cfg.Format == report.Matlab {
			return report.SaveMatlab(cfg.Output, res)
		}
		return output(cfg, stdout, func(w io.Writer) error {
			return report.WriteSweep(w, cfg.Format, res)
		})
	}
	return fmt.Errorf("unknown command %q: %w", cfg.Command, ErrUsage)
}

func output(cfg *Config, stdout io.Writer, write func(io.Writer) error) error {
	if cfg.Output == "" {
		return write(stdout)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	log.WithField("file", cfg.Output).Info("output written")
	return nil
}
