package rag

// Document is a loaded source file before chunking.
type Document struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Chunk is a contiguous slice of a document's text.
// ChunkID is the zero-based position of the chunk within its source.
type Chunk struct {
	Source  string `json:"source"`
	ChunkID int    `json:"chunk_id"`
	Text    string `json:"text"`
}

// ScoredChunk is a chunk plus its overlap score for one query.
type ScoredChunk struct {
	Score   int    `json:"score"`
	Source  string `json:"source"`
	ChunkID int    `json:"chunk_id"`
	Text    string `json:"text"`
}
