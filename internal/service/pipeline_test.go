package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"audiosummarizer/internal/ai"
	aimocks "audiosummarizer/internal/ai/mocks"
	reportmocks "audiosummarizer/internal/report/mocks"
)

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path names the report after the audio file", func(t *testing.T) {
		transcriber := new(aimocks.MockTranscriber)
		summarizer := new(aimocks.MockSummarizer)
		filler := new(reportmocks.MockFiller)

		outputDir := t.TempDir()
		wantOutput := filepath.Join(outputDir, "intro_report.docx")

		transcriber.On("Transcribe", mock.Anything, "/tmp/intro.mp3").Return("the transcript", nil)
		summarizer.On("Summarize", mock.Anything, "the transcript").Return("the summary", nil)
		filler.On("Fill", "/tmp/template.docx", "the summary", wantOutput).Return(wantOutput, nil)

		p := NewPipeline(transcriber, summarizer, filler)
		got, err := p.Run(ctx, "/tmp/intro.mp3", "/tmp/template.docx", outputDir)

		require.NoError(t, err)
		assert.Equal(t, wantOutput, got)
		transcriber.AssertExpectations(t)
		summarizer.AssertExpectations(t)
		filler.AssertExpectations(t)
	})

	t.Run("transcription failure stops the pipeline", func(t *testing.T) {
		transcriber := new(aimocks.MockTranscriber)
		summarizer := new(aimocks.MockSummarizer)
		filler := new(reportmocks.MockFiller)

		transcriber.On("Transcribe", mock.Anything, mock.Anything).Return("", ai.ErrTranscription)

		p := NewPipeline(transcriber, summarizer, filler)
		_, err := p.Run(ctx, "/tmp/intro.mp3", "/tmp/template.docx", t.TempDir())

		var stageErr *StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, StageTranscribe, stageErr.Stage)
		assert.ErrorIs(t, err, ai.ErrTranscription)
		summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
		filler.AssertNotCalled(t, "Fill", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("summarization failure is tagged with its stage", func(t *testing.T) {
		transcriber := new(aimocks.MockTranscriber)
		summarizer := new(aimocks.MockSummarizer)
		filler := new(reportmocks.MockFiller)

		transcriber.On("Transcribe", mock.Anything, mock.Anything).Return("the transcript", nil)
		summarizer.On("Summarize", mock.Anything, mock.Anything).Return("", ai.ErrSummarization)

		p := NewPipeline(transcriber, summarizer, filler)
		_, err := p.Run(ctx, "/tmp/intro.mp3", "/tmp/template.docx", t.TempDir())

		var stageErr *StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, StageSummarize, stageErr.Stage)
		filler.AssertNotCalled(t, "Fill", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("template failure is tagged with its stage", func(t *testing.T) {
		transcriber := new(aimocks.MockTranscriber)
		summarizer := new(aimocks.MockSummarizer)
		filler := new(reportmocks.MockFiller)

		fillErr := errors.New("placeholder missing")
		transcriber.On("Transcribe", mock.Anything, mock.Anything).Return("the transcript", nil)
		summarizer.On("Summarize", mock.Anything, mock.Anything).Return("the summary", nil)
		filler.On("Fill", mock.Anything, mock.Anything, mock.Anything).Return("", fillErr)

		p := NewPipeline(transcriber, summarizer, filler)
		_, err := p.Run(ctx, "/tmp/intro.mp3", "/tmp/template.docx", t.TempDir())

		var stageErr *StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, StageFill, stageErr.Stage)
		assert.ErrorIs(t, err, fillErr)
	})
}
