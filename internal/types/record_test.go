package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCallRecordPending(t *testing.T) {
	if !(CallRecord{}).Pending() {
		t.Fatalf("empty record should be pending")
	}
	if (CallRecord{Transcription: "hello"}).Pending() {
		t.Fatalf("record with transcript should not be pending")
	}
	// An inline error message still counts as processed.
	if (CallRecord{Transcription: "Transcription Error: Empty transcript returned"}).Pending() {
		t.Fatalf("record with stored error string should not be pending")
	}
}

func TestCallRecordJSONRoundTrip(t *testing.T) {
	in := CallRecord{
		Name:          "Jane Doe",
		RecordingURL:  "https://example.com/a.mp3",
		Transcription: "",
		Review:        "",
		Extra: map[string]string{
			"campaign":      "Final Expense",
			"serial_number": "CALL-001",
		},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out CallRecord
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}

func TestCallRecordUnmarshalCanonicalKeys(t *testing.T) {
	raw := `{"name":"Jane","recording":"https://example.com/a.mp3","transcription":"hi","review":"ok","date":"2025-01-01"}`
	var rec CallRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Name != "Jane" || rec.RecordingURL != "https://example.com/a.mp3" {
		t.Fatalf("canonical fields not mapped: %+v", rec)
	}
	if rec.Transcription != "hi" || rec.Review != "ok" {
		t.Fatalf("mutable fields not mapped: %+v", rec)
	}
	if rec.Extra["date"] != "2025-01-01" {
		t.Fatalf("extra field lost: %+v", rec.Extra)
	}
}

func TestCallRecordUnmarshalNullAndNonString(t *testing.T) {
	raw := `{"name":"Jane","recording":"u","transcription":null,"review":"","attempts":3}`
	var rec CallRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !rec.Pending() {
		t.Fatalf("null transcription should leave the record pending")
	}
	if rec.Extra["attempts"] != "3" {
		t.Fatalf("non-string extra = %q, want raw text", rec.Extra["attempts"])
	}
}
