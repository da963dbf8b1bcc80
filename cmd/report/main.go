package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"

	"audiosummarizer/internal/ai"
	"audiosummarizer/internal/config"
	"audiosummarizer/internal/report"
	"audiosummarizer/internal/service"
)

// The CLI runs the summarization flow against local files, without the HTTP
// server, database, or object storage. It is the quickest way to test a new
// template or model configuration end to end.
func main() {
	audioName := flag.String("audio", "transformer-paper-introduction.mp3", "audio file name inside the audio files directory")
	templateName := flag.String("template", "default_report_template.docx", "template file name inside the report templates directory")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.ValidateLocal(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	audioPath := filepath.Join(cfg.Paths.AudioDir, *audioName)
	templatePath := filepath.Join(cfg.Paths.TemplateDir, *templateName)

	if _, err := os.Stat(audioPath); err != nil {
		log.Fatalf("audio file not found: %s", audioPath)
	}
	if _, err := os.Stat(templatePath); err != nil {
		log.Fatalf("template file not found: %s", templatePath)
	}
	if err := os.MkdirAll(cfg.Paths.ReportDir, 0o755); err != nil {
		log.Fatalf("cannot create reports directory: %v", err)
	}

	ctx := context.Background()
	genaiClient, err := ai.NewClient(ctx, cfg.GenAI)
	if err != nil {
		log.Fatalf("failed to initialize generation client: %v", err)
	}

	pipeline := service.NewPipeline(genaiClient, genaiClient, report.NewFiller())

	log.Printf("processing %s with template %s", audioPath, templatePath)
	reportPath, err := pipeline.Run(ctx, audioPath, templatePath, cfg.Paths.ReportDir)
	if err != nil {
		log.Fatalf("summarization failed: %v", err)
	}

	log.Printf("report written")
	fmt.Println(reportPath)
}
