package util

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

const minResumeChars = 100

// ExtractResumeText pulls the text layer out of a resume PDF. Image-only
// scans have no text layer and are rejected rather than OCRed.
func ExtractResumeText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var full strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		full.WriteString(pageText)
		full.WriteString("\n\n")
	}

	result := strings.TrimSpace(full.String())
	if result == "" {
		return "", fmt.Errorf("no text extracted from PDF (the file may be a scanned image)")
	}
	if len(result) < minResumeChars {
		return "", fmt.Errorf("extracted text too short for meaningful matching")
	}
	return result, nil
}
