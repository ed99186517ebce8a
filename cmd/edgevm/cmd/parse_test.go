package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	if runErr != nil {
		t.Fatalf("fn: %v", runErr)
	}
	return buf.String()
}

func TestParseDumpSnapshot(t *testing.T) {
	parseEval = `number x = 1 + 2; if (x < 10) { x = x * 2; }`
	defer func() { parseEval = "" }()

	out := captureStdout(t, func() error {
		return runParse(parseCmd, nil)
	})
	snaps.MatchSnapshot(t, "parse_dump", out)
}

func TestLexDumpSnapshot(t *testing.T) {
	lexEval = `number x = 1 + 2;`
	defer func() { lexEval = "" }()

	out := captureStdout(t, func() error {
		return runLex(lexCmd, nil)
	})
	snaps.MatchSnapshot(t, "lex_dump", out)
}
