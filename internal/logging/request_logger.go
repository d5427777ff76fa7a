package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Record is one chat request/response cycle as written to the JSONL log.
// API keys and raw message content never go in here.
type Record struct {
	Timestamp      time.Time `json:"timestamp"`
	RequestID      string    `json:"request_id"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model"`
	UpstreamStatus int       `json:"upstream_status,omitempty"`
	UpstreamMs     int64     `json:"upstream_ms,omitempty"`
	GatewayMs      int64     `json:"gateway_ms"`
	Error          string    `json:"error,omitempty"`
}

// RequestLogger implements asynchronous, buffered JSONL logging with
// size-based rotation and periodic flush. Enqueue never blocks a request:
// when the queue is full the record is dropped.
type RequestLogger struct {
	fileTemplate  string        // template for log file names, e.g. "/var/log/chat-proxy/requests-%s.jsonl"
	maxSize       int64         // maximum size in bytes before rotation
	maxFiles      int           // maximum number of rotated files to keep
	flushInterval time.Duration // flush the buffer every flushInterval if not empty

	mu          sync.Mutex
	currentFile string
	file        *os.File
	writer      *bufio.Writer
	currentSize int64

	recordCh chan Record
	doneCh   chan struct{}
	wg       sync.WaitGroup
	closed   bool
}

// NewRequestLogger creates a RequestLogger and starts its writer goroutine.
// bufferSize is how many records can be queued before new ones are dropped.
func NewRequestLogger(fileTemplate string, maxSize int64, maxFiles, bufferSize int, flushInterval time.Duration) (*RequestLogger, error) {
	logger := &RequestLogger{
		fileTemplate:  fileTemplate,
		maxSize:       maxSize,
		maxFiles:      maxFiles,
		flushInterval: flushInterval,
		recordCh:      make(chan Record, bufferSize),
		doneCh:        make(chan struct{}),
	}

	if err := logger.openFile(); err != nil {
		return nil, err
	}

	logger.wg.Add(1)
	go logger.run()

	return logger, nil
}

// Enqueue queues a record for logging. If the queue is full the record is
// dropped rather than blocking the request that produced it.
func (logger *RequestLogger) Enqueue(rec Record) {
	select {
	case logger.recordCh <- rec:
	default:
		// Queue full; drop.
	}
}

// newFileName applies the current timestamp to the file template.
func (logger *RequestLogger) newFileName() string {
	timestamp := time.Now().Format("20060102150405")
	return fmt.Sprintf(logger.fileTemplate, timestamp)
}

// openFile opens (or creates) the active log file and prepares the buffered
// writer, creating the directory if needed.
func (logger *RequestLogger) openFile() error {
	logger.currentFile = logger.newFileName()
	dir := filepath.Dir(logger.currentFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(logger.currentFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	logger.currentSize = fi.Size()
	logger.file = file
	logger.writer = bufio.NewWriter(file)
	return nil
}

// rotateIfNeeded rotates the active file when appending n bytes would exceed
// maxSize, then prunes old rotated files.
func (logger *RequestLogger) rotateIfNeeded(n int) error {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	if logger.currentSize+int64(n) < logger.maxSize {
		return nil
	}

	if err := logger.writer.Flush(); err != nil {
		return err
	}
	if err := logger.file.Close(); err != nil {
		return err
	}

	if err := logger.openFile(); err != nil {
		return err
	}
	return logger.cleanupOldFiles()
}

// cleanupOldFiles removes the oldest rotated files if more than maxFiles
// exist.
func (logger *RequestLogger) cleanupOldFiles() error {
	pattern := fmt.Sprintf(logger.fileTemplate, "*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	sort.Slice(matches, func(i, j int) bool {
		fi, err1 := os.Stat(matches[i])
		fj, err2 := os.Stat(matches[j])
		if err1 != nil || err2 != nil {
			return false
		}
		return fi.ModTime().Before(fj.ModTime())
	})

	excess := len(matches) - logger.maxFiles
	for i := 0; i < excess; i++ {
		_ = os.Remove(matches[i])
	}
	return nil
}

// run drains the record channel, writing entries and flushing periodically.
func (logger *RequestLogger) run() {
	defer logger.wg.Done()
	ticker := time.NewTicker(logger.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case rec := <-logger.recordCh:
			logger.writeRecord(rec)
		case <-ticker.C:
			logger.mu.Lock()
			_ = logger.writer.Flush()
			logger.mu.Unlock()
		case <-logger.doneCh:
			// Drain remaining records, then flush and close.
			for {
				select {
				case rec := <-logger.recordCh:
					logger.writeRecord(rec)
				default:
					logger.mu.Lock()
					_ = logger.writer.Flush()
					_ = logger.file.Close()
					logger.mu.Unlock()
					return
				}
			}
		}
	}
}

// writeRecord serializes a Record to one JSONL line, rotating first if
// needed.
func (logger *RequestLogger) writeRecord(rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		// Unserializable record; skip it.
		return
	}
	line := string(data) + "\n"
	n := len(line)
	_ = logger.rotateIfNeeded(n)

	logger.mu.Lock()
	_, _ = logger.writer.WriteString(line)
	logger.currentSize += int64(n)
	logger.mu.Unlock()
}

// Shutdown flushes the buffer and closes the file. Call it from the
// application's graceful shutdown path.
func (logger *RequestLogger) Shutdown() {
	logger.mu.Lock()
	if logger.closed {
		logger.mu.Unlock()
		return
	}
	logger.closed = true
	logger.mu.Unlock()

	close(logger.doneCh)
	logger.wg.Wait()
}
