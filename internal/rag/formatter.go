package rag

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mwiater/docsearch/internal/util"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	scoreColor   = color.New(color.FgGreen, color.Bold)
)

// FormatResults renders ranked chunks for the terminal. previewChars limits
// the text shown per chunk; zero shows the whole chunk.
func FormatResults(results []ScoredChunk, previewChars int) string {
	if len(results) == 0 {
		return "No results."
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(headingColor.Sprintf("#%d", i+1))
		b.WriteString(" ")
		b.WriteString(scoreColor.Sprintf("score=%d", r.Score))
		b.WriteString(fmt.Sprintf(" source=%s chunk=%d\n", r.Source, r.ChunkID))
		b.WriteString(preview(r.Text, previewChars))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSummary reports what an ingestion run found, with a preview of the
// first chunk.
func FormatSummary(c *Corpus, previewChars int) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Project root: %s\n", c.Root)
	fmt.Fprintf(&b, "Data directory: %s\n", c.DataDir)
	fmt.Fprintf(&b, "Storage directory: %s\n", c.StorageDir)
	fmt.Fprintf(&b, "Docs found: %d\n", len(c.Files))
	fmt.Fprintf(&b, "Docs loaded: %d\n", c.Documents)
	fmt.Fprintf(&b, "Chunks: %d\n", len(c.Chunks))

	if len(c.Chunks) > 0 {
		first := c.Chunks[0]
		b.WriteString("\n")
		b.WriteString(headingColor.Sprint("Preview chunk:"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Source: %s\n", first.Source)
		fmt.Fprintf(&b, "Chunk ID: %d\n", first.ChunkID)
		fmt.Fprintf(&b, "Text (first %d chars):\n", previewChars)
		b.WriteString(preview(first.Text, previewChars))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func preview(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	return util.TruncateRunes(text, limit)
}

// Export is the JSON document written for one query.
type Export struct {
	QueryID   string        `json:"query_id"`
	Query     string        `json:"query"`
	CreatedAt time.Time     `json:"created_at"`
	Results   []ScoredChunk `json:"results"`
}

// ExportResults writes the results of one query as indented JSON.
func ExportResults(path, queryID, query string, results []ScoredChunk) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path is empty")
	}
	if results == nil {
		results = []ScoredChunk{}
	}
	data, err := json.MarshalIndent(Export{
		QueryID:   queryID,
		Query:     query,
		CreatedAt: time.Now().UTC(),
		Results:   results,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := util.WriteFile(path, append(data, '\n')); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
