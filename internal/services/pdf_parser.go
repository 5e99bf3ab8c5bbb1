package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrEmptyResume = errors.New("no text content found in PDF")

// ResumeParser turns a stored resume file into plain text.
type ResumeParser interface {
	ExtractText(filePath string) (*ResumeContent, error)
}

type ResumeContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfResumeParser struct{}

func NewPDFResumeParser() ResumeParser {
	return &pdfResumeParser{}
}

func (p *pdfResumeParser) ExtractText(filePath string) (*ResumeContent, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("resume file unavailable: %w", err)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		// Unreadable pages are skipped, the rest of the resume is still useful.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := CleanText(textBuilder.String())
	if text == "" {
		return nil, ErrEmptyResume
	}

	return &ResumeContent{
		Text:      text,
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
