package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode selects when terminal colors are used.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const LinkColor = "#87CEEB"

// ANSI colors per message kind.
const (
	colorError   = "1"
	colorSuccess = "2"
	colorWarn    = "3"
	colorInfo    = "4"
)

type stream struct {
	w   io.Writer
	out *termenv.Output
}

func newStream(w io.Writer) stream {
	return stream{w: w, out: termenv.NewOutput(w)}
}

// UI prints operator-facing messages. Confirmations go to Out; warnings and
// errors go to Err so they stay out of piped results.
type UI struct {
	Out          io.Writer
	Err          io.Writer
	ColorEnabled bool

	stdout stream
	stderr stream
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	u := &UI{
		Out:    out,
		Err:    err,
		stdout: newStream(out),
		stderr: newStream(err),
	}
	u.ColorEnabled = colorAllowed(u.stdout.out, mode, disableColor)
	return u
}

func colorAllowed(output *termenv.Output, mode ColorMode, disabled bool) bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); disabled || noColor || mode == ColorNever {
		return false
	}
	return mode == ColorAlways || output.ColorProfile() != termenv.Ascii
}

func (u *UI) Errorf(format string, args ...any) {
	u.printf(u.stderr, colorError, format, args...)
}

func (u *UI) Warnf(format string, args ...any) {
	u.printf(u.stderr, colorWarn, format, args...)
}

func (u *UI) Infof(format string, args ...any) {
	u.printf(u.stdout, colorInfo, format, args...)
}

func (u *UI) Successf(format string, args ...any) {
	u.printf(u.stdout, colorSuccess, format, args...)
}

func (u *UI) printf(s stream, color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = s.out.String(msg).Foreground(s.out.Color(color)).String()
	}
	fmt.Fprintln(s.w, msg)
}

func ColorizeLink(output *termenv.Output, enabled bool, text string) string {
	if !enabled || output == nil {
		return text
	}
	return output.String(text).Foreground(output.Color(LinkColor)).String()
}

// Link renders a review or apply URL. With color on it is tinted and wrapped
// in an OSC 8 hyperlink; otherwise the URL is returned as is.
func (u *UI) Link(url string) string {
	if !u.ColorEnabled {
		return url
	}
	return Hyperlink(url, ColorizeLink(u.stdout.out, true, url))
}

func Hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

// NormalizeColorMode maps flag and environment values onto a ColorMode.
// Anything unrecognised is ColorAuto.
func NormalizeColorMode(value string) ColorMode {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ColorAlways, ColorNever:
		return mode
	}
	return ColorAuto
}
