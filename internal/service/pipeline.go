package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"audiosummarizer/internal/ai"
	"audiosummarizer/internal/report"
)

// Stage identifies which step of the summarization pipeline failed.
type Stage string

const (
	StageTranscribe Stage = "transcribe"
	StageSummarize  Stage = "summarize"
	StageFill       Stage = "fill"
)

// StageError wraps a pipeline failure with the stage it occurred in, so
// callers can report which step broke without parsing error strings.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline runs the full audio-to-report sequence against local files:
// transcribe the audio, summarize the transcript, fill the template.
// It is storage-agnostic; resolving and publishing remote locators is the
// caller's concern.
type Pipeline interface {
	// Run produces a filled report in outputDir and returns its path. The
	// report is named after the audio file: intro.mp3 yields
	// intro_report.docx. Failures carry a *StageError.
	Run(ctx context.Context, audioPath, templatePath, outputDir string) (string, error)
}

type pipeline struct {
	transcriber ai.Transcriber
	summarizer  ai.Summarizer
	filler      report.Filler
}

// NewPipeline assembles the three processing stages into a Pipeline.
func NewPipeline(transcriber ai.Transcriber, summarizer ai.Summarizer, filler report.Filler) Pipeline {
	return &pipeline{
		transcriber: transcriber,
		summarizer:  summarizer,
		filler:      filler,
	}
}

func (p *pipeline) Run(ctx context.Context, audioPath, templatePath, outputDir string) (string, error) {
	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", &StageError{Stage: StageTranscribe, Err: err}
	}

	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return "", &StageError{Stage: StageSummarize, Err: err}
	}

	base := filepath.Base(audioPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	outputPath := filepath.Join(outputDir, stem+"_report.docx")

	reportPath, err := p.filler.Fill(templatePath, summary, outputPath)
	if err != nil {
		return "", &StageError{Stage: StageFill, Err: err}
	}

	return reportPath, nil
}
