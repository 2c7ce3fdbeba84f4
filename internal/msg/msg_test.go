package msg

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConsoleIssue(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	c := &Console{W: &buf}
	c.Issue(SeverityWarning, "something odd")
	assert.Equal(t, "warn: something odd\n", buf.String())
	assert.False(t, c.SawFatal())

	buf.Reset()
	c.Issue(SeverityFatal, "Generator\n  Visual Studio 16 2019\ncould not find any instance of Visual Studio.\n")
	assert.Equal(t, "fatal: Generator\n    Visual Studio 16 2019\n  could not find any instance of Visual Studio.\n", buf.String())
	assert.True(t, c.SawFatal())
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	assert.Equal(t, Message{}, r.Last())

	r.Issue(SeverityInfo, "a")
	r.Issue(SeverityFatal, "b")
	r.Issue(SeverityFatal, "c")

	assert.Equal(t, 2, r.Count(SeverityFatal))
	assert.Equal(t, 0, r.Count(SeverityError))
	assert.Equal(t, Message{Severity: SeverityFatal, Text: "c"}, r.Last())
}

func TestIndentWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &IndentWriter{Indent: "> ", W: &buf}
	w.Write([]byte("one\ntwo\n"))
	w.Write([]byte("three"))
	assert.Equal(t, "> one\n> two\n> three", buf.String())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "fatal", SeverityFatal.String())
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
