package output_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitless.dev/gl/internal/op"
	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/snapshot"
)

func newTestSplog(t *testing.T) (*output.Splog, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	output.SetColor(false)
	var out, errOut bytes.Buffer
	splog, err := output.NewSplogWithOptions(output.SplogOptions{Writer: &out, ErrWriter: &errOut})
	require.NoError(t, err)
	return splog, &out, &errOut
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, output.ColorEnabled(output.ColorAuto, true, false, false))
	assert.False(t, output.ColorEnabled(output.ColorAuto, false, false, false))
	assert.False(t, output.ColorEnabled(output.ColorAuto, true, true, false))
	assert.False(t, output.ColorEnabled(output.ColorAuto, true, false, true))
	assert.True(t, output.ColorEnabled(output.ColorAlways, false, true, true))
	assert.False(t, output.ColorEnabled(output.ColorNever, true, false, false))
}

func TestSplogRoutesLevels(t *testing.T) {
	splog, out, errOut := newTestSplog(t)

	splog.Info("hello %s", "world")
	splog.Debug("hidden")
	splog.Warn("careful")
	splog.Error("broken")

	assert.Equal(t, "hello world\n", out.String())
	assert.Contains(t, errOut.String(), "careful")
	assert.Contains(t, errOut.String(), "broken")
	assert.NotContains(t, out.String()+errOut.String(), "hidden")
}

func TestSplogWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gl.log")
	var out bytes.Buffer
	splog, err := output.NewSplogWithOptions(output.SplogOptions{Writer: &out, ErrWriter: &out, LogFile: path})
	require.NoError(t, err)

	splog.Debug("only in the file")
	require.NoError(t, splog.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "only in the file")
	assert.Empty(t, out.String())
}

func TestPrinter(t *testing.T) {
	splog, out, errOut := newTestSplog(t)
	printer := output.NewPrinter(splog)
	net := op.NewNet(op.KindSwitch, printer, splog)

	net.Saved(op.Event{Branch: "main", Paths: []string{"a.txt"}})
	net.RestoreSucceeded(op.Event{Branch: "feature", Paths: []string{"b.txt", "c.txt"}})
	net.Finish(op.Result{Branch: "feature"}, nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Temporarily saving uncommitted changes of branch main (1 file)", lines[0])
	assert.Equal(t, "Uncommitted changes of branch feature restored (2 files)", lines[1])
	assert.Equal(t, "Switched to branch feature", lines[2])
	assert.Empty(t, errOut.String())
}

func TestPrinterReportsPendingOnFailure(t *testing.T) {
	splog, _, errOut := newTestSplog(t)
	printer := output.NewPrinter(splog)

	printer.ApplyFailed(op.Result{Operation: op.KindSwitch, Pending: []string{"main"}}, errors.New("blocked"))
	assert.Contains(t, errOut.String(), "no data was lost")
}

func TestPrintTables(t *testing.T) {
	output.SetColor(false)
	var buf bytes.Buffer

	output.PrintBranches(&buf, []output.BranchRow{
		{Name: "main", IsCurrent: true, Head: "0123456789abcdef", Upstream: "origin/main"},
		{Name: "feature", Head: "fedcba9876543210", Saved: 2, Status: snapshot.StatusSaved},
	})
	text := buf.String()
	assert.Contains(t, text, "BRANCH")
	assert.Contains(t, text, "0123456")
	assert.Contains(t, text, "origin/main")
	assert.Contains(t, text, "2 files")

	buf.Reset()
	output.PrintSnapshots(&buf, []*snapshot.Snapshot{{
		Branch:    "feature",
		Base:      "fedcba9876543210",
		Created:   time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
		Operation: "switch",
		Files:     []snapshot.Entry{{Path: "a.txt", Kind: snapshot.KindModified}},
	}})
	assert.Contains(t, buf.String(), "feature")
	assert.Contains(t, buf.String(), "switch")
}
