package batch

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"callcenter-qa-go/internal/types"
)

type fakeProcessor struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeProcessor) Process(ctx context.Context, rec *types.CallRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rec.Name)
	if f.err != nil {
		return f.err
	}
	rec.Transcription = "transcript for " + rec.Name
	rec.Review = "review for " + rec.Name
	return nil
}

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestRunProcessesPendingRowsInOrder(t *testing.T) {
	tbl := &types.BatchTable{Records: []types.CallRecord{
		{Name: "a", RecordingURL: "u1"},
		{Name: "b", RecordingURL: "u2", Transcription: "done", Review: "done"},
		{Name: "c", RecordingURL: "u3"},
	}}
	proc := &fakeProcessor{}
	if err := NewRunner(proc, testLog(), 1).Run(context.Background(), tbl); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(proc.calls) != 2 || proc.calls[0] != "a" || proc.calls[1] != "c" {
		t.Fatalf("calls = %v, want [a c]", proc.calls)
	}
	if tbl.Records[0].Transcription != "transcript for a" {
		t.Fatalf("row 0 not processed: %+v", tbl.Records[0])
	}
	if tbl.Records[1].Transcription != "done" || tbl.Records[1].Review != "done" {
		t.Fatalf("processed row changed: %+v", tbl.Records[1])
	}
	if tbl.Records[2].Review != "review for c" {
		t.Fatalf("row 2 not processed: %+v", tbl.Records[2])
	}
}

func TestRunPropagatesProcessorError(t *testing.T) {
	tbl := &types.BatchTable{Records: []types.CallRecord{{Name: "a", RecordingURL: "u1"}}}
	proc := &fakeProcessor{err: errors.New("missing recording url")}
	if err := NewRunner(proc, testLog(), 1).Run(context.Background(), tbl); err == nil {
		t.Fatalf("expected processor error to abort the run")
	}
}

func TestRunBoundedWorkersProcessEveryPendingRow(t *testing.T) {
	var records []types.CallRecord
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		records = append(records, types.CallRecord{Name: name, RecordingURL: "u-" + name})
	}
	records[2].Transcription = "done"
	tbl := &types.BatchTable{Records: records}

	proc := &fakeProcessor{}
	if err := NewRunner(proc, testLog(), 3).Run(context.Background(), tbl); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(proc.calls) != 4 {
		t.Fatalf("calls = %v, want 4 pending rows", proc.calls)
	}
	for i, rec := range tbl.Records {
		if i == 2 {
			if rec.Transcription != "done" {
				t.Fatalf("processed row changed: %+v", rec)
			}
			continue
		}
		if rec.Transcription == "" || rec.Review == "" {
			t.Fatalf("row %d not processed: %+v", i, rec)
		}
	}
}

func TestNewRunnerDefaultsWorkers(t *testing.T) {
	r := NewRunner(&fakeProcessor{}, testLog(), 0)
	if r.workers != 1 {
		t.Fatalf("workers = %d, want 1", r.workers)
	}
}
