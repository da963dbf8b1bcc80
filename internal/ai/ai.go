package ai

import (
	"context"
	"errors"
)

// Package ai wraps the external generation services behind per-capability
// interfaces so handlers and the pipeline can be tested with deterministic
// fakes. There is no retry or caching here: transient upstream failures are
// surfaced immediately and retry policy, if any, belongs to the caller.

var (
	// ErrTranscription tags any upstream speech-to-text failure.
	ErrTranscription = errors.New("transcription service error")
	// ErrSummarization tags any upstream summarization failure.
	ErrSummarization = errors.New("summarization service error")
	// ErrAudioNotFound reports a missing local audio file.
	ErrAudioNotFound = errors.New("audio file not found")
	// ErrUnsupportedAudio reports an extension the upstream service rejects.
	ErrUnsupportedAudio = errors.New("unsupported audio format")
	// ErrAudioTooLarge reports a file over the configured size limit.
	ErrAudioTooLarge = errors.New("audio file exceeds maximum size")
)

// Transcriber converts an audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Summarizer produces report prose from a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
