package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgRed, color.Bold)
	usageColor   = color.New(color.FgCyan)
	fixColor     = color.New(color.FgYellow)
)

// FormatError renders err with colors. color.NoColor disables them.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return format(err, headingColor.Sprint, usageColor.Sprint, fixColor.Sprint)
}

// FormatErrorPlain renders err without ANSI escape codes.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return format(err, fmt.Sprint, fmt.Sprint, fmt.Sprint)
}

func format(err *CLIError, heading, usage, fix func(...interface{}) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", heading(err.Category.String()), err.Message)
	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s\n  %s\n", usage("Usage:"), err.Usage)
	}
	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&b, "  - %s\n", step)
		}
	}
	return b.String()
}

// FprintError writes err to w. Errors that are not CLIErrors are reported
// as runtime errors.
func FprintError(w io.Writer, err error, colored bool) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error()}
	}
	if colored {
		fmt.Fprint(w, FormatError(cliErr))
		return
	}
	fmt.Fprint(w, FormatErrorPlain(cliErr))
}
