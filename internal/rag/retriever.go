package rag

import "sort"

// RetrieveTopK scores every chunk against query and returns at most k chunks
// with a non-zero score, highest first. Equal scores keep their input order.
func RetrieveTopK(query string, chunks []Chunk, k int) []ScoredChunk {
	if k <= 0 || len(chunks) == 0 {
		return []ScoredChunk{}
	}

	terms := tokenSet(Tokenize(query))
	if len(terms) == 0 {
		return []ScoredChunk{}
	}

	scored := scoreChunks(chunks, terms)
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

func scoreChunks(chunks []Chunk, query map[string]struct{}) []ScoredChunk {
	scored := make([]ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		score := sharedTokens(query, c.Text)
		if score == 0 {
			continue
		}
		scored = append(scored, ScoredChunk{
			Score:   score,
			Source:  c.Source,
			ChunkID: c.ChunkID,
			Text:    c.Text,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
