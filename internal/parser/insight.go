package parser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/types"
)

var insightPrompt = `You are an expert career and recruitment assistant.

Below is a candidate's structured resume data in JSON format.
Analyze it carefully and provide:
1. A **Career Growth Potential Score** (0-10) based on experience, education, and skills.
2. An **ATS Compatibility Score** (0-100) - evaluate section completeness, keyword diversity, and structure.
3. A **list of 3-5 recommended job roles** that best match the candidate's profile.
4. A **short summary (2 sentences)** explaining your reasoning for both scores.

Return your answer as a clean JSON object exactly like this format:
` + "```json" + `
{
  "career_growth_score": 8.5,
  "ats_score": 77,
  "recommended_jobs": ["Python Developer", "Data Analyst", "ML Engineer"],
  "summary": "Strong technical base with good experience. Resume could use better keyword optimization."
}
` + "```" + `

Candidate Resume JSON:
%s
`

// ResumeAnalyzer 基于解析结果生成成长潜力和ATS兼容性评估
type ResumeAnalyzer struct {
	llmModel model.ToolCallingChatModel
	logger   zerolog.Logger
}

// NewResumeAnalyzer 创建简历分析器
func NewResumeAnalyzer(llmModel model.ToolCallingChatModel, logger zerolog.Logger) *ResumeAnalyzer {
	return &ResumeAnalyzer{
		llmModel: llmModel,
		logger:   logger,
	}
}

// Analyze 对整份解析结果做一次LLM分析
// 任何失败都返回降级结果：分数缺失、岗位为空、摘要说明失败原因
func (a *ResumeAnalyzer) Analyze(ctx context.Context, record *types.ResumeRecord) *types.InsightRecord {
	if record == nil || a.llmModel == nil {
		return degradedInsight()
	}

	resumeJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		a.logger.Error().Err(err).Msg("序列化简历记录失败")
		return degradedInsight()
	}

	prompt := fmt.Sprintf(insightPrompt, string(resumeJSON))
	resp, err := a.llmModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		a.logger.Warn().Err(err).Msg("简历分析调用失败")
		return degradedInsight()
	}
	if resp == nil || resp.Content == "" {
		return degradedInsight()
	}

	raw, ok := ExtractJSON(resp.Content)
	if !ok {
		a.logger.Warn().Msg("简历分析响应无法修复成JSON")
		return degradedInsight()
	}

	var insight types.InsightRecord
	if err := json.Unmarshal(raw, &insight); err != nil {
		a.logger.Warn().Err(err).Msg("简历分析结果结构不符合约定")
		return degradedInsight()
	}

	if !validInsight(&insight) {
		a.logger.Warn().Msg("简历分析分数越界，按失败处理")
		return degradedInsight()
	}
	return &insight
}

// validInsight 检查分数是否落在约定区间内
func validInsight(in *types.InsightRecord) bool {
	if in.CareerGrowthScore == nil || in.ATSScore == nil {
		return false
	}
	if *in.CareerGrowthScore < 0 || *in.CareerGrowthScore > 10 {
		return false
	}
	if *in.ATSScore < 0 || *in.ATSScore > 100 {
		return false
	}
	return true
}

// degradedInsight 分析失败时的固定返回
func degradedInsight() *types.InsightRecord {
	return &types.InsightRecord{
		RecommendedJobs: []string{},
		Summary:         constants.InsightFailedSummary,
	}
}
