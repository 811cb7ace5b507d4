package log

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
)

func TestStepLogger_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replays", "steps.jsonl.zst")

	l, err := NewStepLogger(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 0; i < 25; i++ {
		e := StepEntry{
			Step:    uint64(i),
			Day:     i / 5,
			Command: json.RawMessage(fmt.Sprintf(`{"type":"ADVANCE_DAY","cmd":%d}`, i)),
			Events:  json.RawMessage(fmt.Sprintf(`[{"type":"DAY_ADVANCED","day":%d}]`, i/5)),
			Digest:  fmt.Sprintf("digest-%04d", i),
		}
		if err := l.WriteStep(e); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	entries, err := ReadAll(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 25 {
		t.Fatalf("entries = %d, want 25", len(entries))
	}
	for i, e := range entries {
		if e.Step != uint64(i) || e.Digest != fmt.Sprintf("digest-%04d", i) {
			t.Fatalf("entry %d: %+v", i, e)
		}
		var cmd struct {
			Type string `json:"type"`
			Cmd  uint64 `json:"cmd"`
		}
		if err := json.Unmarshal(e.Command, &cmd); err != nil {
			t.Fatalf("entry %d command: %v", i, err)
		}
		if cmd.Type != "ADVANCE_DAY" || cmd.Cmd != uint64(i) {
			t.Fatalf("entry %d command: %+v", i, cmd)
		}
	}
}

func TestStepLogger_AppendAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.jsonl.zst")

	for round := 0; round < 2; round++ {
		l, err := NewStepLogger(path)
		if err != nil {
			t.Fatalf("open round %d: %v", round, err)
		}
		e := StepEntry{Step: uint64(round), Digest: fmt.Sprintf("d%d", round)}
		if err := l.WriteStep(e); err != nil {
			t.Fatalf("write round %d: %v", round, err)
		}
		if err := l.Close(); err != nil {
			t.Fatalf("close round %d: %v", round, err)
		}
	}

	entries, err := ReadAll(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 || entries[0].Step != 0 || entries[1].Step != 1 {
		t.Fatalf("entries: %+v", entries)
	}
}

func TestReadAll_MissingFile(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "absent.jsonl.zst")); err == nil {
		t.Fatal("reading a missing log succeeded")
	}
}
