// Package jd turns uploaded job-description files into plain text for the
// fit-analysis pipeline.
package jd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

type Extractor struct {
	uploadsDir string
}

func NewExtractor(uploadsDir string) *Extractor {
	return &Extractor{
		uploadsDir: uploadsDir,
	}
}

// ExtractText saves the upload and extracts its text. PDF/DOCX and friends
// go through docconv; plain text is read directly.
func (e *Extractor) ExtractText(filename string, reader io.Reader) (string, error) {
	filePath := filepath.Join(e.uploadsDir, filepath.Base(filename))
	if err := os.MkdirAll(e.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()
	defer os.Remove(filePath) // the file is only needed for extraction

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	fileType := strings.ToLower(filepath.Ext(filename))
	var text string

	switch fileType {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.ConvertPath(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	case ".txt":
		content, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	default:
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}

	return strings.TrimSpace(text), nil
}
