package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"callcenter-qa-go/internal/audio"
	"callcenter-qa-go/internal/review"
	"callcenter-qa-go/internal/transcription"
	"callcenter-qa-go/internal/types"
)

// FetchValidator probes a recording URL before transcription.
type FetchValidator interface {
	Check(ctx context.Context, url string) error
}

// Transcriber converts an audio URL into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, url string) (string, error)
}

// Reviewer produces a one-line compliance review from a transcript and a
// customer name.
type Reviewer interface {
	Review(ctx context.Context, transcript, customerName string) (string, error)
}

// Processor brings a single call record up to date. Service failures are
// rendered into the record's own fields so a human reviewer can see per
// row what went wrong; only precondition errors surface to the caller.
type Processor struct {
	validator   FetchValidator
	transcriber Transcriber
	reviewer    Reviewer
	log         *logrus.Entry
}

func New(validator FetchValidator, transcriber Transcriber, reviewer Reviewer, log *logrus.Entry) *Processor {
	return &Processor{
		validator:   validator,
		transcriber: transcriber,
		reviewer:    reviewer,
		log:         log,
	}
}

// Process fills the record's Transcription and Review fields. Records
// whose Transcription is already set are left untouched, including ones
// holding an inline error message: those are never retried automatically.
// Clearing the Transcription cell is the manual way to requeue a row.
func (p *Processor) Process(ctx context.Context, rec *types.CallRecord) error {
	if !rec.Pending() {
		return nil
	}
	if strings.TrimSpace(rec.RecordingURL) == "" {
		return fmt.Errorf("call record %q has no recording url", rec.Name)
	}

	transcript, err := p.fetchTranscript(ctx, rec.RecordingURL)
	if err != nil {
		p.log.WithField("url", rec.RecordingURL).WithField("error", err.Error()).Warn("transcription failed")
		transcript = transcription.ErrorString(err)
	}
	rec.Transcription = transcript

	// The reviewer always runs, even on an inline error message: the
	// stored review then documents what the reviewer saw.
	reviewText, err := p.reviewer.Review(ctx, transcript, rec.Name)
	if err != nil {
		p.log.WithField("url", rec.RecordingURL).WithField("error", err.Error()).Warn("review failed")
		reviewText = review.ErrorString(err)
	}
	rec.Review = reviewText
	return nil
}

// fetchTranscript runs the pre-flight probe and then the transcription
// service. Validation failures adopt the transcription error rendering so
// the stored text carries the "Transcription Error:" prefix.
func (p *Processor) fetchTranscript(ctx context.Context, url string) (string, error) {
	if err := p.validator.Check(ctx, url); err != nil {
		reason := err.Error()
		var verr *audio.ValidationError
		if errors.As(err, &verr) {
			reason = verr.Reason
		}
		return "", &transcription.Error{Reason: reason}
	}
	return p.transcriber.Transcribe(ctx, url)
}
