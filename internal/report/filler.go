package report

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/wml/ctypes"
)

// Placeholder is the marker token a report template must contain exactly once.
// The paragraph carrying it receives the generated text; everything else in
// the template (content, styling, ordering) is preserved untouched.
const Placeholder = "{{summary}}"

var (
	// ErrTemplateNotFound reports a template path that does not exist.
	ErrTemplateNotFound = errors.New("template file not found")
	// ErrTemplateFormat reports an unparseable template or a missing/duplicated placeholder.
	ErrTemplateFormat = errors.New("invalid report template")
)

// Filler substitutes the placeholder of a docx template with generated text.
type Filler interface {
	Fill(templatePath, generatedText, outputPath string) (string, error)
}

type docxFiller struct{}

// NewFiller returns the docx-backed template filler.
func NewFiller() Filler {
	return docxFiller{}
}

// Fill loads the template, replaces the placeholder paragraph's text with
// generatedText and writes the result to outputPath. The source template is
// never mutated; on any error no output file remains.
func (docxFiller) Fill(templatePath, generatedText, outputPath string) (string, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
	}

	doc, err := godocx.OpenDocument(templatePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateFormat, err)
	}

	var matches []*ctypes.Paragraph
	for _, child := range doc.Document.Body.Children {
		if child.Para == nil {
			continue
		}
		ct := child.Para.GetCT()
		if strings.Contains(paragraphText(ct), Placeholder) {
			matches = append(matches, ct)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: placeholder %q not found", ErrTemplateFormat, Placeholder)
	case 1:
		// ok
	default:
		return "", fmt.Errorf("%w: placeholder %q appears %d times, want exactly one", ErrTemplateFormat, Placeholder, len(matches))
	}

	substitute(matches[0], generatedText)

	if err := doc.SaveTo(outputPath); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("write report: %w", err)
	}

	return outputPath, nil
}

// paragraphText merges all run text of a paragraph, so a placeholder split
// across runs by the editor still matches.
func paragraphText(p *ctypes.Paragraph) string {
	var sb strings.Builder
	for _, child := range p.Children {
		if child.Run == nil {
			continue
		}
		for _, rc := range child.Run.Children {
			if rc.Text != nil {
				sb.WriteString(rc.Text.Text)
			}
		}
	}
	return sb.String()
}

// substitute rewrites the paragraph's text in place: the first text run keeps
// the paragraph text with the placeholder replaced, any further text runs are
// blanked. Run properties (fonts, sizes) stay as authored in the template.
func substitute(p *ctypes.Paragraph, generatedText string) {
	replaced := strings.Replace(paragraphText(p), Placeholder, generatedText, 1)

	first := true
	for _, child := range p.Children {
		if child.Run == nil {
			continue
		}
		for _, rc := range child.Run.Children {
			if rc.Text == nil {
				continue
			}
			if first {
				rc.Text.Text = replaced
				first = false
			} else {
				rc.Text.Text = ""
			}
		}
	}
}
