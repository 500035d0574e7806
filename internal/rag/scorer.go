package rag

// Score counts the distinct query tokens that also appear in chunkText.
// Repeated tokens on either side count once.
func Score(queryTokens []string, chunkText string) int {
	if len(queryTokens) == 0 {
		return 0
	}
	return sharedTokens(tokenSet(queryTokens), chunkText)
}

func sharedTokens(query map[string]struct{}, chunkText string) int {
	if len(query) == 0 {
		return 0
	}
	chunk := tokenSet(Tokenize(chunkText))
	score := 0
	for tok := range query {
		if _, ok := chunk[tok]; ok {
			score++
		}
	}
	return score
}
