package rag

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

// reassemble drops the overlapping prefix of every chunk after the first.
func reassemble(chunks []string, overlap int) string {
	var b strings.Builder
	for i, c := range chunks {
		r := []rune(c)
		if i > 0 {
			cut := overlap
			if cut > len(r) {
				cut = len(r)
			}
			r = r[cut:]
		}
		b.WriteString(string(r))
	}
	return b.String()
}

func sampleText(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	return b.String()
}

func TestChunkTextShortInputReturnedWhole(t *testing.T) {
	for _, text := range []string{"", "short", sampleText(1000)} {
		chunks, err := ChunkText(text, 1000, 200)
		if err != nil {
			t.Fatalf("ChunkText error: %v", err)
		}
		if len(chunks) != 1 || chunks[0] != text {
			t.Fatalf("expected [text] for len %d, got %d chunks", len(text), len(chunks))
		}
	}
}

func TestChunkTextOffsets(t *testing.T) {
	text := sampleText(2500)
	chunks, err := ChunkText(text, 1000, 200)
	if err != nil {
		t.Fatalf("ChunkText error: %v", err)
	}

	starts := []int{0, 800, 1600, 2400}
	if len(chunks) != len(starts) {
		t.Fatalf("expected %d chunks, got %d", len(starts), len(chunks))
	}
	for i, start := range starts {
		end := start + 1000
		if end > len(text) {
			end = len(text)
		}
		if chunks[i] != text[start:end] {
			t.Fatalf("chunk %d does not start at offset %d", i, start)
		}
	}
	if got := len(chunks[3]); got != 100 {
		t.Fatalf("expected final chunk of 100 chars, got %d", got)
	}
}

func TestChunkTextConsecutiveOverlap(t *testing.T) {
	text := sampleText(3000)
	chunks, err := ChunkText(text, 700, 150)
	if err != nil {
		t.Fatalf("ChunkText error: %v", err)
	}
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		if len(prev) < 700 {
			continue
		}
		if !strings.HasPrefix(chunks[i], prev[len(prev)-150:]) {
			t.Fatalf("chunk %d does not begin with the last 150 chars of chunk %d", i, i-1)
		}
	}
}

func TestChunkTextReassembly(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		chunkSize int
		overlap   int
	}{
		{"defaults", 2500, 1000, 200},
		{"no overlap", 1234, 100, 0},
		{"exact multiple", 3000, 1000, 0},
		{"large overlap", 500, 10, 9},
		{"one over", 11, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := sampleText(tt.length)
			chunks, err := ChunkText(text, tt.chunkSize, tt.overlap)
			if err != nil {
				t.Fatalf("ChunkText error: %v", err)
			}
			if got := reassemble(chunks, tt.overlap); got != text {
				t.Fatalf("reassembled text differs: got %d chars want %d", len(got), len(text))
			}
			for i, c := range chunks {
				if !strings.Contains(text, c) {
					t.Fatalf("chunk %d is not a substring of the text", i)
				}
				if utf8.RuneCountInString(c) > tt.chunkSize {
					t.Fatalf("chunk %d exceeds chunk size", i)
				}
			}
		})
	}
}

func TestChunkTextMultibyte(t *testing.T) {
	text := strings.Repeat("日本語テキスト", 30)
	chunks, err := ChunkText(text, 50, 10)
	if err != nil {
		t.Fatalf("ChunkText error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Fatalf("chunk %d is not valid UTF-8", i)
		}
	}
	if got := reassemble(chunks, 10); got != text {
		t.Fatalf("reassembled multibyte text differs")
	}
}

func TestChunkTextRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
		{"zero size", 0, 0},
		{"negative size", -10, 0},
		{"negative overlap", 100, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := ChunkText(sampleText(5000), tt.chunkSize, tt.overlap)
			if !errors.Is(err, ErrInvalidChunkConfig) {
				t.Fatalf("expected ErrInvalidChunkConfig, got %v", err)
			}
			if chunks != nil {
				t.Fatalf("expected no chunks on error, got %d", len(chunks))
			}
		})
	}

	if _, err := ChunkText("tiny", 10, 10); !errors.Is(err, ErrInvalidChunkConfig) {
		t.Fatalf("expected short text to be rejected as well, got %v", err)
	}
}

func TestChunkDocumentsNumbersPerSource(t *testing.T) {
	docs := []Document{
		{Source: "a.md", Text: sampleText(250)},
		{Source: "b.txt", Text: "tiny"},
		{Source: "c.md", Text: sampleText(180)},
	}

	chunks, err := ChunkDocuments(docs, 100, 20)
	if err != nil {
		t.Fatalf("ChunkDocuments error: %v", err)
	}

	next := map[string]int{}
	var order []string
	for _, c := range chunks {
		if _, seen := next[c.Source]; !seen {
			order = append(order, c.Source)
		}
		if c.ChunkID != next[c.Source] {
			t.Fatalf("%s: expected chunk id %d, got %d", c.Source, next[c.Source], c.ChunkID)
		}
		next[c.Source]++
	}

	if strings.Join(order, ",") != "a.md,b.txt,c.md" {
		t.Fatalf("unexpected source order: %v", order)
	}
	if next["a.md"] != 4 || next["b.txt"] != 1 || next["c.md"] != 3 {
		t.Fatalf("unexpected chunk counts: %v", next)
	}
}

func TestChunkDocumentsAbortsOnBadConfig(t *testing.T) {
	docs := []Document{{Source: "a.md", Text: sampleText(50)}}
	chunks, err := ChunkDocuments(docs, 10, 10)
	if !errors.Is(err, ErrInvalidChunkConfig) {
		t.Fatalf("expected ErrInvalidChunkConfig, got %v", err)
	}
	if chunks != nil {
		t.Fatalf("expected no partial results, got %d chunks", len(chunks))
	}
}

func TestChunkDocumentsEmpty(t *testing.T) {
	chunks, err := ChunkDocuments(nil, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}

	chunks, err = ChunkDocuments([]Document{{Source: "empty.md"}}, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Text != "" || chunks[0].ChunkID != 0 {
		t.Fatalf("expected single empty chunk, got %+v", chunks)
	}
}
