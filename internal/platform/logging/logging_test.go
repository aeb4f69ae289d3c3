package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"studyhub/internal/platform/logging"
)

func TestJSONLoggerWritesStructuredFields(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger, closer, err := logging.New(logging.Options{Level: "debug", JSON: true, Output: buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer closer.Close()

	logger.Named("progress").Warn("report completion failed", "category", "READING")
	line := strings.TrimSpace(buf.String())
	decoded := map[string]any{}
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("expected json line, got %q: %v", line, err)
	}
	if decoded["category"] != "READING" || decoded["@module"] != "studyhub.progress" {
		t.Fatalf("unexpected log fields: %v", decoded)
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger, _, err := logging.New(logging.Options{Level: "loud", Output: buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
