package vmlog

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestSetVerboseChangesLevel(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	var buf bytes.Buffer
	SetHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))

	SetVerbose(false)
	L().Debug("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("Debug log appeared at non-verbose level: %q", buf.String())
	}

	SetVerbose(true)
	L().Debug("should appear")
	if buf.Len() == 0 {
		t.Fatal("Debug log did not appear at verbose level")
	}
}

func TestSetHandlerReplacesLogger(t *testing.T) {
	t.Cleanup(func() {
		SetHandler(slog.NewTextHandler(nopWriter{}, &slog.HandlerOptions{Level: level}))
		SetVerbose(false)
	})

	var buf bytes.Buffer
	SetVerbose(true)
	SetHandler(slog.NewTextHandler(&buf, nil))
	L().Warn("hello")
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Errorf("handler did not receive the log record: %q", buf.String())
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
