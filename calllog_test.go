package quizforge

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestLog(t *testing.T) *CallLog {
	t.Helper()
	cl, err := OpenCallLog(filepath.Join(t.TempDir(), "calls.db"))
	if err != nil {
		t.Fatalf("OpenCallLog failed: %v", err)
	}
	t.Cleanup(func() { cl.Close() })
	return cl
}

func TestCallLogRecordAndRecent(t *testing.T) {
	cl := openTestLog(t)

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		rec := CallRecord{
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Prompt:    "prompt",
			Response:  "response",
			Status:    "ok",
			Duration:  250 * time.Millisecond,
		}
		if err := cl.Record(rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	records, err := cl.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Recent(2) returned %d records", len(records))
	}
	// Newest first
	if !records[0].CreatedAt.After(records[1].CreatedAt) {
		t.Errorf("records not ordered newest first: %v then %v", records[0].CreatedAt, records[1].CreatedAt)
	}
	if records[0].ID == "" {
		t.Error("Record did not assign an ID")
	}
	if records[0].Duration != 250*time.Millisecond {
		t.Errorf("duration = %v, want 250ms", records[0].Duration)
	}

	all, err := cl.Recent(0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Recent(0) returned %d records, want all 3", len(all))
	}
}

func TestLoggedGeneratorRecordsSuccess(t *testing.T) {
	cl := openTestLog(t)
	gen := NewLoggedGenerator(&stubGenerator{reply: "the reply"}, cl)

	reply, err := gen.GenerateText(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if reply != "the reply" {
		t.Errorf("reply = %q", reply)
	}

	records, err := cl.Recent(1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Prompt != "the prompt" || rec.Response != "the reply" {
		t.Errorf("wrong transcript: %+v", rec)
	}
	if rec.Status != "ok" || rec.Error != "" {
		t.Errorf("wrong status: %q %q", rec.Status, rec.Error)
	}
}

func TestLoggedGeneratorRecordsFailure(t *testing.T) {
	cl := openTestLog(t)
	cause := errors.New("model unavailable")
	gen := NewLoggedGenerator(&stubGenerator{err: cause}, cl)

	if _, err := gen.GenerateText(context.Background(), "the prompt"); !errors.Is(err, cause) {
		t.Fatalf("GenerateText error = %v, want the underlying cause", err)
	}

	records, err := cl.Recent(1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Status != "error" || records[0].Error != "model unavailable" {
		t.Errorf("failure not recorded: %+v", records[0])
	}
}
