package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewRequestLogger(t *testing.T) {
	tempDir := t.TempDir()
	fileTemplate := filepath.Join(tempDir, "requests-%s.jsonl")

	logger, err := NewRequestLogger(fileTemplate, 1024, 5, 10, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Shutdown()

	if logger.fileTemplate != fileTemplate {
		t.Errorf("Expected fileTemplate %s, got %s", fileTemplate, logger.fileTemplate)
	}
	if logger.maxSize != 1024 {
		t.Errorf("Expected maxSize 1024, got %d", logger.maxSize)
	}
	if logger.maxFiles != 5 {
		t.Errorf("Expected maxFiles 5, got %d", logger.maxFiles)
	}
}

func TestEnqueueWritesRecord(t *testing.T) {
	tempDir := t.TempDir()
	fileTemplate := filepath.Join(tempDir, "requests-%s.jsonl")

	logger, err := NewRequestLogger(fileTemplate, 10*1024, 5, 100, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Enqueue(Record{
		Timestamp:      time.Now(),
		RequestID:      "req-123",
		Provider:       "RUNPOD_OPENAI",
		Model:          "test-model",
		UpstreamStatus: 200,
		UpstreamMs:     812,
		GatewayMs:      820,
	})

	// Shutdown drains the queue and flushes.
	logger.Shutdown()

	content := readAllLogs(t, fileTemplate)
	for _, want := range []string{"req-123", "RUNPOD_OPENAI", "test-model", `"upstream_status":200`} {
		if !strings.Contains(content, want) {
			t.Errorf("Log should contain %q, got: %s", want, content)
		}
	}
	if strings.Contains(content, `"error"`) {
		t.Errorf("Successful record should omit the error field, got: %s", content)
	}
}

func TestEnqueueErrorRecord(t *testing.T) {
	tempDir := t.TempDir()
	fileTemplate := filepath.Join(tempDir, "requests-%s.jsonl")

	logger, err := NewRequestLogger(fileTemplate, 10*1024, 5, 100, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Enqueue(Record{
		Timestamp: time.Now(),
		RequestID: "req-err",
		Provider:  "HF_TGI",
		GatewayMs: 5,
		Error:     "request failed: connection refused",
	})
	logger.Shutdown()

	content := readAllLogs(t, fileTemplate)
	if !strings.Contains(content, "connection refused") {
		t.Errorf("Log should contain the error cause, got: %s", content)
	}
}

func TestEnqueueAfterFullQueueDoesNotBlock(t *testing.T) {
	tempDir := t.TempDir()
	fileTemplate := filepath.Join(tempDir, "requests-%s.jsonl")

	logger, err := NewRequestLogger(fileTemplate, 10*1024, 5, 1, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Shutdown()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			logger.Enqueue(Record{RequestID: "flood", Timestamp: time.Now()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

// readAllLogs concatenates every log file matching the template.
func readAllLogs(t *testing.T, fileTemplate string) string {
	t.Helper()
	matches, err := filepath.Glob(strings.Replace(fileTemplate, "%s", "*", 1))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	var sb strings.Builder
	for _, match := range matches {
		content, err := os.ReadFile(match)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", match, err)
		}
		sb.Write(content)
	}
	return sb.String()
}
