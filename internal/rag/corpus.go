package rag

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mwiater/docsearch/internal/appconfig"
	"github.com/mwiater/docsearch/internal/logging"
)

// Corpus is the in-memory chunk collection built from one ingestion run.
// It is not modified after BuildCorpus returns.
type Corpus struct {
	Root       string
	DataDir    string
	StorageDir string
	Files      []string
	Documents  int
	Chunks     []Chunk
}

// BuildCorpus prepares the project directories, loads every discoverable
// document and chunks it using the configured window.
func BuildCorpus(cfg appconfig.Config) (*Corpus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.ProjectRoot())
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	start := time.Now()
	status := func(format string, args ...any) {
		elapsed := time.Since(start).Truncate(time.Millisecond)
		logging.LogEvent("[%s] %s", elapsed, fmt.Sprintf(format, args...))
	}

	dataDir, storageDir, err := EnsureProjectDirs(root, cfg.DataDir, cfg.StorageDir)
	if err != nil {
		return nil, err
	}
	status("[INGEST] Data directory: %s", dataDir)

	files, err := DiscoverDocFiles(dataDir, cfg.Extensions, cfg.ExcludeGlobs)
	if err != nil {
		return nil, err
	}
	status("[INGEST] Discovered %d files", len(files))

	docs := LoadDocuments(files)
	status("[INGEST] Loaded %d documents", len(docs))

	chunks, err := ChunkDocuments(docs, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	status("[INGEST] Chunk size: %d, overlap: %d, chunks: %d", cfg.ChunkSize, cfg.ChunkOverlap, len(chunks))

	return &Corpus{
		Root:       root,
		DataDir:    dataDir,
		StorageDir: storageDir,
		Files:      files,
		Documents:  len(docs),
		Chunks:     chunks,
	}, nil
}

// Search ranks the corpus chunks against query.
func (c *Corpus) Search(query string, k int) []ScoredChunk {
	if c == nil {
		return []ScoredChunk{}
	}
	return RetrieveTopK(query, c.Chunks, k)
}
