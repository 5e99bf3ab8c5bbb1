package services

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type lineChunker struct{}

func NewTextChunker() TextChunker {
	return &lineChunker{}
}

// ChunkText packs whole lines into chunks of at most maxChunkSize runes.
// Each new chunk starts with up to overlap runes of trailing lines from the
// previous one. Lines longer than a chunk are split on rune boundaries.
func (lc *lineChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, splitRunes(line, maxChunkSize)...)
	}

	var chunks []string
	var current []string
	currentLen := 0
	// fresh is set once current holds a line not yet emitted in any chunk.
	fresh := false

	flush := func() {
		if !fresh {
			return
		}
		chunks = append(chunks, strings.Join(current, "\n"))
		current = tailLines(current, overlap)
		currentLen = joinedLen(current)
		fresh = false
	}

	for _, line := range lines {
		lineLen := utf8.RuneCountInString(line)
		needed := lineLen
		if len(current) > 0 {
			needed++
		}

		if currentLen+needed > maxChunkSize {
			flush()
			// The overlap tail may still leave no room for this line.
			for len(current) > 0 && currentLen+lineLen+1 > maxChunkSize {
				current = current[1:]
				currentLen = joinedLen(current)
			}
			needed = lineLen
			if len(current) > 0 {
				needed++
			}
		}

		current = append(current, line)
		currentLen += needed
		fresh = true
	}

	flush()

	return chunks
}

func tailLines(lines []string, budget int) []string {
	if budget <= 0 {
		return nil
	}

	var tail []string
	size := 0
	for i := len(lines) - 1; i >= 0; i-- {
		n := utf8.RuneCountInString(lines[i])
		if len(tail) > 0 {
			n++
		}
		if size+n > budget {
			break
		}
		tail = append([]string{lines[i]}, tail...)
		size += n
	}
	return tail
}

func joinedLen(lines []string) int {
	if len(lines) == 0 {
		return 0
	}
	n := len(lines) - 1
	for _, l := range lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

func splitRunes(line string, size int) []string {
	runes := []rune(line)
	if len(runes) <= size {
		return []string{line}
	}

	var parts []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}

// truncateUTF8 cuts text to at most maxBytes without splitting a rune.
func truncateUTF8(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
