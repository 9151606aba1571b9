package types

import (
	"bytes"
	"encoding/json"
)

// Canonical JSON keys for a call record. The spreadsheet headers map onto
// the same fields in internal/table.
const (
	KeyName          = "name"
	KeyRecording     = "recording"
	KeyTranscription = "transcription"
	KeyReview        = "review"
)

// CallRecord is one row of a batch table: a single customer call.
// Transcription and Review start empty and are filled by the processor;
// once Transcription is non-empty (even with an inline error message) the
// record counts as processed. Extra holds every other column/key untouched.
type CallRecord struct {
	Name          string
	RecordingURL  string
	Transcription string
	Review        string
	Extra         map[string]string
}

// Pending reports whether the record still needs processing.
func (r CallRecord) Pending() bool {
	return r.Transcription == ""
}

func (r CallRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(r.Extra)+4)
	for k, v := range r.Extra {
		m[k] = v
	}
	m[KeyName] = r.Name
	m[KeyRecording] = r.RecordingURL
	m[KeyTranscription] = r.Transcription
	m[KeyReview] = r.Review
	return json.Marshal(m)
}

func (r *CallRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rec := CallRecord{}
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			// Non-string values (numbers, booleans) pass through as their
			// raw JSON text, mirroring the all-strings table contract.
			s = string(bytes.TrimSpace(v))
		}
		switch k {
		case KeyName:
			rec.Name = s
		case KeyRecording:
			rec.RecordingURL = s
		case KeyTranscription:
			rec.Transcription = s
		case KeyReview:
			rec.Review = s
		default:
			if rec.Extra == nil {
				rec.Extra = map[string]string{}
			}
			rec.Extra[k] = s
		}
	}
	*r = rec
	return nil
}

// BatchTable is an ordered set of call records. Columns preserves the
// spreadsheet header order for lossless save; it stays empty for tables
// that arrive as JSON.
type BatchTable struct {
	Columns []string
	Records []CallRecord
}
