// Package log appends the replay record: one JSONL entry per reducer step,
// zstd-compressed. A recorded seed plus this stream is a golden replay; the
// per-step digests let a replayer pin down the first divergent step.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// StepEntry records one reducer step.
type StepEntry struct {
	Step    uint64          `json:"step"`
	Day     int             `json:"day"`
	Command json.RawMessage `json:"command"`
	Events  json.RawMessage `json:"events"`
	Digest  string          `json:"digest"`
}

type StepLogger struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewStepLogger(path string) (*StepLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &StepLogger{f: f, enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

func (l *StepLogger) WriteStep(e StepEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := l.w.Write(b); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	return l.w.Flush()
}

func (l *StepLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err1 error
	if l.w != nil {
		_ = l.w.Flush()
	}
	if l.enc != nil {
		err1 = l.enc.Close()
		l.enc = nil
	}
	if l.f != nil {
		_ = l.f.Close()
		l.f = nil
	}
	l.w = nil
	return err1
}

// ReadAll decodes every step entry of a log file in order.
func ReadAll(path string) ([]StepEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []StepEntry
	br := bufio.NewReaderSize(dec, 128*1024)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 1 {
			var e StepEntry
			if jerr := json.Unmarshal(line, &e); jerr != nil {
				return out, fmt.Errorf("step %d: %w", len(out), jerr)
			}
			out = append(out, e)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
	}
}
