package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_ShortTextIsSingleChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("Vaga para desenvolvedora backend.", 1000, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Vaga para desenvolvedora backend.", chunks[0])
}

func TestChunker_EmptyTextYieldsNoChunks(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 100))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 100))
}

func TestChunker_SplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()
	paraA := strings.Repeat("requisitos da vaga ", 10)
	paraB := strings.Repeat("beneficios oferecidos ", 10)

	chunks := chunker.ChunkText(paraA+"\n\n"+paraB, 200, 0)

	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], "requisitos")
	assert.Contains(t, chunks[1], "beneficios")
}

func TestChunker_OverlapCarriesTailForward(t *testing.T) {
	chunker := NewTextChunker()
	paraA := strings.Repeat("alfa ", 40)
	paraB := strings.Repeat("beta ", 40)

	chunks := chunker.ChunkText(paraA+"\n\n"+paraB, 220, 20)

	require.Len(t, chunks, 2)
	tail := lastNRunes(chunks[0], 20)
	assert.True(t, strings.HasPrefix(chunks[1], tail))
}

func TestChunker_OversizedParagraphSplitsOnSentences(t *testing.T) {
	chunker := NewTextChunker()
	text := strings.TrimSpace(strings.Repeat("Uma frase completa sobre a vaga. ", 50))

	chunks := chunker.ChunkText(text, 200, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
	}
}
