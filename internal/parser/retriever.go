package parser

import (
	"context"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"

	"cv-agent-go/internal/types"
)

// ChunkRetriever 按查询语义挑选最相关的文本块
// 向量为空或向量化失败时调用方应回退到全量拼接
type ChunkRetriever struct {
	embedder embedding.Embedder
	topK     int
	logger   zerolog.Logger
}

// NewChunkRetriever 创建检索器，topK非正时取3
func NewChunkRetriever(embedder embedding.Embedder, topK int, logger zerolog.Logger) *ChunkRetriever {
	if topK <= 0 {
		topK = 3
	}
	return &ChunkRetriever{
		embedder: embedder,
		topK:     topK,
		logger:   logger,
	}
}

// EmbedChunks 为所有文本块预先计算向量，整个文档只做一次
func (r *ChunkRetriever) EmbedChunks(ctx context.Context, chunks []types.TextChunk) ([][]float64, error) {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	return r.embedder.EmbedStrings(ctx, texts)
}

// RelevantContext 返回与查询最相关的topK个块按相似度降序拼接的文本
// 向量化失败时返回空串，调用方回退到全量上下文
func (r *ChunkRetriever) RelevantContext(ctx context.Context, query string, chunks []types.TextChunk, chunkVectors [][]float64) string {
	if len(chunks) == 0 || len(chunkVectors) != len(chunks) {
		return ""
	}

	queryVectors, err := r.embedder.EmbedStrings(ctx, []string{query})
	if err != nil || len(queryVectors) == 0 {
		r.logger.Warn().Err(err).Str("query", truncate(query, 50)).Msg("查询向量化失败，跳过检索")
		return ""
	}

	indices := RankByDotProduct(queryVectors[0], chunkVectors, r.topK)
	parts := make([]string, 0, len(indices))
	for _, idx := range indices {
		parts = append(parts, chunks[idx].Text)
	}

	r.logger.Debug().
		Int("selected", len(indices)).
		Str("query", truncate(query, 50)).
		Msg("检索到相关文本块")
	return strings.Join(parts, "\n\n")
}

// RankByDotProduct 按点积相似度返回得分最高的k个向量下标，降序排列
func RankByDotProduct(query []float64, vectors [][]float64, k int) []int {
	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, 0, len(vectors))
	for i, vec := range vectors {
		scores = append(scores, scored{idx: i, score: dotProduct(query, vec)})
	}
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].score > scores[b].score
	})

	if k > len(scores) {
		k = len(scores)
	}
	out := make([]int, 0, k)
	for _, s := range scores[:k] {
		out = append(out, s.idx)
	}
	return out
}

func dotProduct(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
