package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/tieubaoca/mindmap-be/types"
)

// CommandRunner runs an external program and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("error executing %s: %w", name, err)
	}
	return out.Bytes(), nil
}

// TextExtractor turns stored knowledge files into plain text.
type TextExtractor struct {
	runner CommandRunner
}

// NewTextExtractor uses runner for pdf conversion; nil runs real processes.
func NewTextExtractor(runner CommandRunner) *TextExtractor {
	if runner == nil {
		runner = execRunner{}
	}
	return &TextExtractor{
		runner: runner,
	}
}

// Extract returns the cleaned text of the file at path. content holds the raw
// bytes of the same file.
func (e *TextExtractor) Extract(ctx context.Context, fileType types.FileType, path string, content []byte) (string, error) {
	switch fileType {
	case types.FILE_TYPE_TXT, types.FILE_TYPE_MD:
		return cleanText(strings.ToValidUTF8(string(content), "")), nil
	case types.FILE_TYPE_DOCX:
		text, err := extractDocx(content)
		if err != nil {
			return "", err
		}
		return cleanText(text), nil
	case types.FILE_TYPE_PDF:
		out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", "-nopgbrk", path, "-")
		if err != nil {
			return "", err
		}
		return cleanText(strings.ToValidUTF8(string(out), "")), nil
	}
	return "", fmt.Errorf("%w: unsupported file type %q", types.ErrInvalidInput, fileType)
}

// extractDocx walks word/document.xml and joins its paragraphs with newlines.
// Paragraphs nested in tables are kept in document order.
func extractDocx(content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("invalid docx archive: %w", err)
	}
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}
		defer rc.Close()
		text, err := docxParagraphs(rc)
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}
		return text, nil
	}
	return "", fmt.Errorf("docx archive has no word/document.xml")
}

func docxParagraphs(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		runs       int
		inText     bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				depth++
			case "r":
				runs++
			case "t":
				inText = true
			case "tab":
				if runs > 0 {
					current.WriteString("\t")
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "r":
				runs--
			case "t":
				inText = false
			case "p":
				if depth--; depth == 0 {
					paragraphs = append(paragraphs, current.String())
					current.Reset()
				}
			}
		case xml.CharData:
			if inText {
				current.Write(el)
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

var textReplacer = strings.NewReplacer(
	"\u0000", "",
	"\ufffd", "",
	"\u001b", "",
	"\r", "",
	"\f", "\n",
	"‡", "",
	"†", "",
)

func cleanText(text string) string {
	cleaned := textReplacer.Replace(text)
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	return strings.TrimSpace(cleaned)
}
