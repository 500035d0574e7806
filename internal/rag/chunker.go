package rag

import (
	"errors"
	"fmt"
)

// ErrInvalidChunkConfig is returned when the chunk size and overlap would
// stall or reverse the sliding window.
var ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

// ValidateChunkConfig reports whether chunkSize and overlap describe a window
// that always advances.
func ValidateChunkConfig(chunkSize, overlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be greater than zero, got %d", ErrInvalidChunkConfig, chunkSize)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: overlap must be zero or greater, got %d", ErrInvalidChunkConfig, overlap)
	}
	if overlap >= chunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidChunkConfig, overlap, chunkSize)
	}
	return nil
}

// ChunkText splits text into windows of chunkSize characters where each
// window starts overlap characters before the end of the previous one.
// Lengths are counted in runes.
func ChunkText(text string, chunkSize, overlap int) ([]string, error) {
	if err := ValidateChunkConfig(chunkSize, overlap); err != nil {
		return nil, err
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}, nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		stop := end
		if stop > len(runes) {
			stop = len(runes)
		}
		chunks = append(chunks, string(runes[start:stop]))

		start = end - overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks, nil
}

// ChunkDocuments chunks every document and numbers the chunks per source,
// starting at zero. A configuration error aborts the whole call.
func ChunkDocuments(docs []Document, chunkSize, overlap int) ([]Chunk, error) {
	if err := ValidateChunkConfig(chunkSize, overlap); err != nil {
		return nil, err
	}

	var all []Chunk
	for _, doc := range docs {
		pieces, err := ChunkText(doc.Text, chunkSize, overlap)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", doc.Source, err)
		}
		for i, piece := range pieces {
			all = append(all, Chunk{
				Source:  doc.Source,
				ChunkID: i,
				Text:    piece,
			})
		}
	}
	return all, nil
}
