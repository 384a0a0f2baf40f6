package processor

import (
	"context"

	"cv-agent-go/internal/types"
)

// FieldExtractor 按字段抽取简历结构化信息
// 实现方每次调用只做一次阻塞的LLM请求，失败时返回空值而不是错误
type FieldExtractor interface {
	ExtractName(ctx context.Context, contextText string) string
	ExtractSkills(ctx context.Context, contextText string) ([]string, types.FieldOutcome)
	ExtractExperience(ctx context.Context, contextText string) ([]types.Experience, types.FieldOutcome)
	ExtractEducation(ctx context.Context, contextText string) ([]types.Education, types.FieldOutcome)
	ExtractProjects(ctx context.Context, contextText string) ([]types.Project, types.FieldOutcome)
	ExtractCertifications(ctx context.Context, contextText string) ([]types.Certification, types.FieldOutcome)
	ExtractLanguages(ctx context.Context, contextText string) ([]types.LanguageSkill, types.FieldOutcome)
}

// SectionLocator 在全文中定位指定小节的正文
type SectionLocator interface {
	Extract(text, heading string) (string, bool)
}

// ContactParser 从全文提取联系方式
type ContactParser interface {
	Extract(text string) *types.ContactInfo
}

// InsightAnalyzer 基于解析结果生成AI分析
type InsightAnalyzer interface {
	Analyze(ctx context.Context, record *types.ResumeRecord) *types.InsightRecord
}

// ContextRetriever 检索增强模式下为查询挑选相关文本块
type ContextRetriever interface {
	EmbedChunks(ctx context.Context, chunks []types.TextChunk) ([][]float64, error)
	RelevantContext(ctx context.Context, query string, chunks []types.TextChunk, chunkVectors [][]float64) string
}

// Deduper 登记规范化文本的MD5，用于识别重复提交
type Deduper interface {
	CheckAndAddParsedTextMD5(ctx context.Context, md5Hex string) (bool, error)
}

// RecordCache 按规范化文本MD5缓存解析结果
type RecordCache interface {
	GetCachedRecord(ctx context.Context, md5Hex string) (*types.ResumeRecord, error)
	SetCachedRecord(ctx context.Context, md5Hex string, record *types.ResumeRecord) error
}
