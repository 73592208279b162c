// Package chunker splits batches by estimated token count.
package chunker

// DefaultMaxTokens is the default maximum tokens per chunk.
// The model function processes one chunk per forward pass; ~3000 tokens fits
// comfortably in its memory.
const DefaultMaxTokens = 3000

// EstimateTokens estimates the token count for a text.
// Uses a simple heuristic: ~4 bytes per token for Latin scripts.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// ChunkByTokens splits items into chunks whose estimated token count does not
// exceed maxTokens. Items are never split and keep their relative order, so
// flattening the chunks yields the input again.
func ChunkByTokens[T any](items []T, maxTokens int, text func(T) string) [][]T {
	if len(items) == 0 {
		return nil
	}

	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var chunks [][]T
	var current []T
	currentTokens := 0

	for _, item := range items {
		itemTokens := EstimateTokens(text(item))

		// An oversized item gets its own chunk
		if itemTokens > maxTokens {
			if len(current) > 0 {
				chunks = append(chunks, current)
				current = nil
				currentTokens = 0
			}
			chunks = append(chunks, []T{item})
			continue
		}

		if currentTokens+itemTokens > maxTokens && len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
			currentTokens = 0
		}

		current = append(current, item)
		currentTokens += itemTokens
	}

	if len(current) > 0 {
		chunks = append(chunks, current)
	}

	return chunks
}

// Flatten concatenates chunks back into a single slice.
func Flatten[T any](chunks [][]T) []T {
	n := 0
	for _, chunk := range chunks {
		n += len(chunk)
	}
	out := make([]T, 0, n)
	for _, chunk := range chunks {
		out = append(out, chunk...)
	}
	return out
}
