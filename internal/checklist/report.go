package checklist

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const heading = "Machine Learning Checklist:\nSplits data into train and test: "

// verdictStyle returns the bold 24-bit colour for a verdict, forced on or off
// regardless of the package-wide color.NoColor default.
func verdictStyle(detected, enabled bool) *color.Color {
	c := color.New(color.Bold).AddRGB(255, 165, 0)
	if detected {
		c = color.New(color.Bold).AddRGB(0, 165, 255)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Verdict returns "pass" or "fail", styled when enabled is set.
func Verdict(detected, enabled bool) string {
	word := "fail"
	if detected {
		word = "pass"
	}
	return verdictStyle(detected, enabled).Sprint(word)
}

// Report prints the checklist result to w.
func Report(w io.Writer, detected, enabled bool) error {
	_, err := fmt.Fprintln(w, heading+Verdict(detected, enabled))
	return err
}

// ColorEnabled reports whether styled output should be written to f: f must
// be a terminal and NO_COLOR must be empty. CLICOLOR_FORCE overrides both.
func ColorEnabled(f *os.File) bool {
	fd := f.Fd()
	return colorAllowed(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

func colorAllowed(terminal bool) bool {
	if v, ok := os.LookupEnv("CLICOLOR_FORCE"); ok && v != "" && v != "0" {
		return true
	}
	if v, ok := os.LookupEnv("NO_COLOR"); ok && v != "" {
		return false
	}
	return terminal
}

// Stdout returns a writer for styled output on os.Stdout. On Windows
// consoles without VT support it translates the escape sequences.
func Stdout() io.Writer {
	return colorable.NewColorableStdout()
}
