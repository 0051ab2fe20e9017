package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wiless/plcalc/pathloss"
	"github.com/wiless/plcalc/report"
)

const (
	CmdCalc   = "calc"
	CmdSweep  = "sweep"
	CmdModels = "models"

	EnvPrefix = "PLCALC"
)

var validCommands = map[string]struct{}{
	CmdCalc:   {},
	CmdSweep:  {},
	CmdModels: {},
}

var ErrUsage = errors.New("usage")

// Config is everything the command line asks for
type Config struct {
	Command string
	Setting pathloss.ModelSetting
	Format  report.Format
	Output  string
	Verbose bool
}

func newFlagSet(out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("plcalc", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.String("model", "hata", "Path loss model [hata, cost231]")
	fs.String("area", "urban", "Area type [urban, suburban, rural]")
	fs.Float64("fc", 0, "Frequency (MHz)")
	fs.Float64("hte", 0, "Base station height (m)")
	fs.Float64("hre", 0, "Mobile station height (m)")
	fs.Float64("d", 0, "Distance (km)")
	fs.Float64("start", 0, "Start distance of a sweep (km)")
	fs.Float64("end", 0, "End distance of a sweep (km)")
	fs.Int("samples", pathloss.DefaultSamples, "Number of distances in a sweep")
	fs.StringP("format", "f", string(report.Text), "Output format [text, csv, yaml, matlab, png]")
	fs.StringP("output", "o", "", "Path to the output file, stdout if empty")
	fs.String("config", "", "Optional config file (yaml, toml or json)")
	fs.BoolP("verbose", "v", false, "Enable more verbose output")
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: plcalc [flags] [%s|%s|%s]\n", CmdCalc, CmdSweep, CmdModels)
		fs.PrintDefaults()
	}
	return fs
}

// Load reads flags from args, then PLCALC_* environment variables and an
// optional config file. Flags set explicitly win over both. Usage and flag
// errors are printed to out; -h returns pflag.ErrHelp as is.
//
// When only the model setting fails to decode, the returned Config still
// carries the command alongside the error
func Load(args []string, out io.Writer) (*Config, error) {
	fs := newFlagSet(out)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%v: %w", err, ErrUsage)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	c := &Config{
		Command: CmdCalc,
		Output:  v.GetString("output"),
		Verbose: v.GetBool("verbose"),
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("too many arguments %v: %w", fs.Args(), ErrUsage)
	}
	if fs.NArg() == 1 {
		c.Command = strings.ToLower(fs.Arg(0))
	}
	if _, ok := validCommands[c.Command]; !ok {
		return nil, fmt.Errorf("unknown command %q: %w", c.Command, ErrUsage)
	}

	var err error
	if c.Format, err = report.ParseFormat(v.GetString("format")); err != nil {
		return nil, err
	}
	if c.Format.NeedsFile() && c.Output == "" {
		return nil, fmt.Errorf("format %s needs an output file: %w", c.Format, ErrUsage)
	}
	if c.Format == report.Matlab && filepath.Ext(c.Output) != ".m" {
		return nil, fmt.Errorf("matlab output %s needs the .m extension: %w", c.Output, ErrUsage)
	}

	if c.Setting, err = pathloss.DecodeSetting(v.AllSettings()); err != nil {
		return c, err
	}
	return c, nil
}
