package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits guide documents into overlapping pieces small enough to
// embed individually.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Paragraph boundaries are preferred;
// oversized paragraphs fall back to sentence boundaries.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 || overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var pieces []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) > maxChunkSize {
			pieces = append(pieces, splitSentences(para)...)
		} else {
			pieces = append(pieces, para)
		}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		// Seed the next chunk with the tail of this one to preserve context
		// across the boundary.
		if overlap > 0 {
			tail := lastRunes(chunks[len(chunks)-1], overlap)
			if tail != "" {
				current.WriteString(tail)
				current.WriteString(" ")
			}
		}
	}

	for _, piece := range pieces {
		if current.Len()+len(piece)+1 > maxChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(piece)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var sentences []string
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func lastRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
