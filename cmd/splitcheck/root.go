package main

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ezoic/splitcheck/internal/checklist"
	scErrors "github.com/ezoic/splitcheck/pkg/errors"
	"github.com/ezoic/splitcheck/pkg/log"
)

const envPrefix = "SPLITCHECK"

// Config keys. Each is also read from SPLITCHECK_<KEY>, with dashes as underscores.
const (
	keyPath     = "path"
	keyTarget   = "target"
	keyOutput   = "output"
	keyNoColor  = "no-color"
	keyLogLevel = "log-level"
)

type rootOptions struct {
	v       *viper.Viper
	verbose int
	quiet   bool
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{v: newViper()}

	cmd := &cobra.Command{
		Use:   "splitcheck -p FILE",
		Short: "Machine learning checklist: does a script split its data into train and test?",
		Long: `Scan a script for a train/test split call and append the result to a CSV log.

The script passes when any line contains the target pattern. Each run adds a
row file_name,target,detected,datetime to the output file, creating it with a
header when missing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := o.logLevel()
			if err != nil {
				return err
			}
			log.SetProvider(log.NewConsoleProvider(cmd.ErrOrStderr(), level))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runChecklist(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.CountVarP(&o.verbose, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	pf.BoolVarP(&o.quiet, "quiet", "q", false, "only log errors")
	pf.String(keyLogLevel, "", "log level (debug, info, warn, error); overrides -v and -q")

	f := cmd.Flags()
	f.StringP(keyPath, "p", "", "the path to the file to read")
	f.StringP(keyTarget, "t", checklist.DefaultTarget, "the target pattern to look for")
	f.StringP(keyOutput, "o", checklist.DefaultOutput, "the name of the output CSV file")
	f.Bool(keyNoColor, false, "disable coloured output")

	for _, key := range []string{keyPath, keyTarget, keyOutput, keyNoColor} {
		_ = o.v.BindPFlag(key, f.Lookup(key))
	}
	_ = o.v.BindPFlag(keyLogLevel, pf.Lookup(keyLogLevel))

	cmd.AddCommand(newDemoCmd(), newPlotCmd())
	return cmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// logLevel resolves the level from --log-level, then -q, then the -v count.
// Without any of them only warnings and errors are logged.
func (o *rootOptions) logLevel() (zerolog.Level, error) {
	if s := o.v.GetString(keyLogLevel); s != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return zerolog.NoLevel, scErrors.NewValueError("splitcheck", "invalid log level "+s)
		}
		return level, nil
	}
	switch {
	case o.quiet:
		return zerolog.ErrorLevel, nil
	case o.verbose >= 2:
		return zerolog.DebugLevel, nil
	case o.verbose == 1:
		return zerolog.InfoLevel, nil
	default:
		return zerolog.WarnLevel, nil
	}
}

func (o *rootOptions) runChecklist(cmd *cobra.Command) error {
	logger := log.GetLoggerWithName("splitcheck")
	logger.Info("starting up")

	path := o.v.GetString(keyPath)
	if path == "" {
		return scErrors.New(`required flag "path" not set`)
	}

	c := &checklist.Checker{
		Target: o.v.GetString(keyTarget),
		Output: o.v.GetString(keyOutput),
	}
	rec, err := c.Check(path)
	if err != nil {
		return err
	}

	out, color := o.reportWriter(cmd)
	if err := checklist.Report(out, rec.Detected, color); err != nil {
		return scErrors.Wrap(err, "failed to print report")
	}

	logger.Info("results appended to "+c.Output, log.PathKey, c.Output)
	return nil
}

// reportWriter returns where to print the verdict and whether to colour it.
// Colour is only used when stdout is a terminal.
func (o *rootOptions) reportWriter(cmd *cobra.Command) (io.Writer, bool) {
	out := cmd.OutOrStdout()
	if o.v.GetBool(keyNoColor) {
		return out, false
	}
	if f, ok := out.(*os.File); ok && checklist.ColorEnabled(f) {
		if f == os.Stdout {
			return checklist.Stdout(), true
		}
		return f, true
	}
	return out, false
}
