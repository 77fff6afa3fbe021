package internal

import (
	"bytes"
	"strings"
	"testing"
)

func TestBootstrapLogsToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	app, logger, err := bootstrap([]Option{WithConfig(NewDefaultConfig())}, &buf)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if app.config == nil {
		t.Fatal("config not applied")
	}

	// The startup line and everything the returned logger emits must land on
	// the given writer. The MCP entry point depends on this to keep stdout
	// clean for the JSON-RPC frames.
	logger.Info("post-bootstrap-line")
	out := buf.String()
	if !strings.Contains(out, "Configuration loaded") {
		t.Errorf("startup log missing from writer: %q", out)
	}
	if !strings.Contains(out, "post-bootstrap-line") {
		t.Errorf("logger output missing from writer: %q", out)
	}
}

func TestBootstrapRequiresConfig(t *testing.T) {
	var buf bytes.Buffer
	if _, _, err := bootstrap(nil, &buf); err == nil {
		t.Error("expected error when no config is provided")
	}
}
