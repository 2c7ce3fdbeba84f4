package msg

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Severity classifies a diagnostic issued while resolving generator state.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warn"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	}
	return "unknown"
}

func (s Severity) label() string {
	switch s {
	case SeverityInfo:
		return color.HiGreenString("info")
	case SeverityWarning:
		return color.YellowString("warn")
	case SeverityError:
		return color.HiRedString("error")
	case SeverityFatal:
		return color.RedString("fatal")
	}
	return s.String()
}

// Issuer receives diagnostics. Issuing a fatal message never exits the
// process; callers return the matching error and decide themselves.
type Issuer interface {
	Issue(sev Severity, text string)
}

// Console prints diagnostics to W (stdout when nil) and remembers whether a
// fatal diagnostic was seen.
type Console struct {
	W        io.Writer
	sawFatal bool
}

func (c *Console) Issue(sev Severity, text string) {
	w := c.W
	if w == nil {
		w = os.Stdout
	}
	if sev == SeverityFatal {
		c.sawFatal = true
	}
	fmt.Fprintf(w, "%s: ", sev.label())
	if strings.Contains(text, "\n") {
		// continuation lines line up under the first one
		iw := &IndentWriter{Indent: "  ", W: w, didIndent: true}
		io.WriteString(iw, strings.TrimRight(text, "\n"))
		io.WriteString(w, "\n")
		return
	}
	fmt.Fprintln(w, text)
}

// SawFatal reports whether a fatal diagnostic has been issued.
func (c *Console) SawFatal() bool { return c.sawFatal }

// Message is a single recorded diagnostic.
type Message struct {
	Severity Severity
	Text     string
}

// Recorder collects diagnostics in memory.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Issue(sev Severity, text string) {
	r.Messages = append(r.Messages, Message{Severity: sev, Text: text})
}

// Count returns how many recorded diagnostics have the given severity.
func (r *Recorder) Count(sev Severity) int {
	n := 0
	for _, m := range r.Messages {
		if m.Severity == sev {
			n++
		}
	}
	return n
}

// Last returns the most recent diagnostic, or the zero Message.
func (r *Recorder) Last() Message {
	if len(r.Messages) == 0 {
		return Message{}
	}
	return r.Messages[len(r.Messages)-1]
}

func Error(format string, a ...any) {
	fmt.Print(color.HiRedString("error"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
}

func Warn(format string, a ...any) {
	fmt.Print(color.YellowString("warn"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
}

func Fatal(format string, a ...any) {
	fmt.Print(color.RedString("fatal"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
	os.Exit(1)
}

func Info(format string, a ...any) {
	fmt.Print(color.HiGreenString("info"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
}

// Hint prints a remedy line under a previous diagnostic.
func Hint(format string, a ...any) {
	fmt.Print(color.HiCyanString("hint"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
}

type IndentWriter struct {
	Indent    string
	W         io.Writer
	didIndent bool
}

func (w *IndentWriter) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if !w.didIndent {
			w.W.Write([]byte(w.Indent))
			w.didIndent = true
		}
		w.W.Write([]byte{c}) // FIXME-perf: buffer this
		if c == '\n' || c == '\r' {
			w.didIndent = false
		}
	}
	return len(p), nil
}
