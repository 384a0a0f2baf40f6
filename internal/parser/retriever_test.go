package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-agent-go/internal/types"
)

// mockEmbedder 按文本内容返回固定向量
type mockEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (m *mockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float64, 0, len(texts))
	for _, t := range texts {
		vec, ok := m.vectors[t]
		if !ok {
			vec = []float64{0, 0, 0}
		}
		out = append(out, vec)
	}
	return out, nil
}

var _ embedding.Embedder = (*mockEmbedder)(nil)

func TestRankByDotProduct(t *testing.T) {
	query := []float64{1, 0, 0}
	vectors := [][]float64{
		{0.1, 1, 0},   // 0.1
		{0.9, 0, 0},   // 0.9
		{0.5, 0.5, 0}, // 0.5
		{-1, 0, 0},    // -1
	}

	indices := RankByDotProduct(query, vectors, 2)
	assert.Equal(t, []int{1, 2}, indices)

	// k超过候选数时全量返回
	indices = RankByDotProduct(query, vectors, 10)
	assert.Equal(t, []int{1, 2, 0, 3}, indices)

	assert.Empty(t, RankByDotProduct(query, nil, 3))
}

func TestRankByDotProductStableOnTies(t *testing.T) {
	query := []float64{1}
	vectors := [][]float64{{0.5}, {0.5}, {0.5}}
	assert.Equal(t, []int{0, 1}, RankByDotProduct(query, vectors, 2))
}

func TestRelevantContext(t *testing.T) {
	chunks := []types.TextChunk{
		{Seq: 0, Text: "EDUCATION: BSc Physics, MIT"},
		{Seq: 1, Text: "EXPERIENCE: Acme Corp engineer"},
		{Seq: 2, Text: "SKILLS: Go, SQL"},
	}
	chunkVectors := [][]float64{
		{0, 1, 0},
		{1, 0, 0},
		{0.6, 0.4, 0},
	}
	embedder := &mockEmbedder{vectors: map[string][]float64{
		"work experience": {1, 0, 0},
	}}

	r := NewChunkRetriever(embedder, 2, zerolog.Nop())
	got := r.RelevantContext(context.Background(), "work experience", chunks, chunkVectors)
	require.NotEmpty(t, got)

	// 最相关的块排在前面，不相关的块被挡在topK之外
	assert.Equal(t, "EXPERIENCE: Acme Corp engineer\n\nSKILLS: Go, SQL", got)
}

func TestRelevantContextFallbackSignals(t *testing.T) {
	chunks := []types.TextChunk{{Seq: 0, Text: "only chunk"}}
	vectors := [][]float64{{1, 0}}

	// 查询向量化失败时返回空串，调用方回退全量上下文
	r := NewChunkRetriever(&mockEmbedder{err: errors.New("embeddings down")}, 3, zerolog.Nop())
	assert.Empty(t, r.RelevantContext(context.Background(), "skills", chunks, vectors))

	// 向量数和块数不一致同样回退
	r = NewChunkRetriever(&mockEmbedder{}, 3, zerolog.Nop())
	assert.Empty(t, r.RelevantContext(context.Background(), "skills", chunks, nil))
	assert.Empty(t, r.RelevantContext(context.Background(), "skills", nil, nil))
}

func TestEmbedChunks(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float64{
		"alpha": {1, 2, 3},
		"beta":  {4, 5, 6},
	}}
	r := NewChunkRetriever(embedder, 3, zerolog.Nop())

	vectors, err := r.EmbedChunks(context.Background(), []types.TextChunk{
		{Seq: 0, Text: "alpha"},
		{Seq: 1, Text: "beta"},
	})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{1, 2, 3}, vectors[0])
	assert.Equal(t, []float64{4, 5, 6}, vectors[1])
}
