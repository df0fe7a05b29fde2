package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	clierrors "github.com/expo-unity/unitylink/internal/errors"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var outputFormats = []string{FormatText, FormatJSON, FormatYAML}

func validateFormat(command, format string) error {
	if err := validate.Var(format, "oneof=text json yaml"); err != nil {
		return clierrors.InvalidOutputFormat(command, format, outputFormats)
	}
	return nil
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format: %s", format)
	}
}

// printer writes human-readable output, coloured only when writing to a
// terminal and colour has not been turned off.
type printer struct {
	out   io.Writer
	color bool
}

func newPrinter(out io.Writer, noColor bool) *printer {
	return &printer{out: out, color: !noColor && !color.NoColor && isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) paint(s string, attrs ...color.Attribute) string {
	if !p.color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *printer) success(format string, args ...interface{}) {
	p.printf("%s %s", p.paint("✓", color.FgGreen, color.Bold), fmt.Sprintf(format, args...))
}

func (p *printer) warn(format string, args ...interface{}) {
	p.printf("%s %s", p.paint("!", color.FgYellow, color.Bold), fmt.Sprintf(format, args...))
}

func (p *printer) label(s string) string {
	return p.paint(s, color.FgCyan)
}

// reportError prints err to w unless it only carries an exit code.
func reportError(w io.Writer, err error, noColor bool) {
	if err == nil {
		return
	}
	var e *exitError
	if errors.As(err, &e) {
		return
	}
	clierrors.FprintError(w, err, newPrinter(w, noColor).color)
}
