package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/types"
)

func sampleRecord() *types.ResumeRecord {
	return &types.ResumeRecord{
		Name:   "Jane Smith",
		Skills: []string{"Go", "SQL"},
		Experience: []types.Experience{
			{Title: "Engineer", Company: "Acme Corp", StartDate: "2018", EndDate: "Present"},
		},
	}
}

func TestAnalyzeValidResponse(t *testing.T) {
	m := &mockChatModel{response: "```json\n" + `{
  "career_growth_score": 8.5,
  "ats_score": 77,
  "recommended_jobs": ["Backend Engineer", "Platform Engineer", "SRE"],
  "summary": "Solid experience with modern stack. Resume structure is ATS friendly."
}` + "\n```"}
	a := NewResumeAnalyzer(m, zerolog.Nop())

	insight := a.Analyze(context.Background(), sampleRecord())
	require.NotNil(t, insight)
	require.NotNil(t, insight.CareerGrowthScore)
	require.NotNil(t, insight.ATSScore)
	assert.InDelta(t, 8.5, *insight.CareerGrowthScore, 0.001)
	assert.InDelta(t, 77, *insight.ATSScore, 0.001)
	assert.Len(t, insight.RecommendedJobs, 3)
	assert.NotEqual(t, constants.InsightFailedSummary, insight.Summary)

	// 提示词里应带上完整的简历JSON
	require.Len(t, m.lastMessages, 1)
	assert.Contains(t, m.lastMessages[0].Content, "Jane Smith")
	assert.Contains(t, m.lastMessages[0].Content, "Acme Corp")
}

func TestAnalyzeGarbageResponseDegrades(t *testing.T) {
	m := &mockChatModel{response: "As an AI I cannot score this resume."}
	a := NewResumeAnalyzer(m, zerolog.Nop())

	insight := a.Analyze(context.Background(), sampleRecord())
	require.NotNil(t, insight)
	assert.Nil(t, insight.CareerGrowthScore)
	assert.Nil(t, insight.ATSScore)
	assert.Empty(t, insight.RecommendedJobs)
	assert.NotNil(t, insight.RecommendedJobs)
	assert.Equal(t, constants.InsightFailedSummary, insight.Summary)
}

func TestAnalyzeLLMErrorDegrades(t *testing.T) {
	m := &mockChatModel{err: errors.New("timeout")}
	a := NewResumeAnalyzer(m, zerolog.Nop())

	insight := a.Analyze(context.Background(), sampleRecord())
	require.NotNil(t, insight)
	assert.Equal(t, constants.InsightFailedSummary, insight.Summary)
}

func TestAnalyzeOutOfRangeScoresDegrade(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{
			name:     "成长分超过10",
			response: `{"career_growth_score": 11, "ats_score": 70, "recommended_jobs": ["X"], "summary": "s"}`,
		},
		{
			name:     "ATS分超过100",
			response: `{"career_growth_score": 7, "ats_score": 101, "recommended_jobs": ["X"], "summary": "s"}`,
		},
		{
			name:     "负分",
			response: `{"career_growth_score": -1, "ats_score": 70, "recommended_jobs": ["X"], "summary": "s"}`,
		},
		{
			name:     "缺少分数字段",
			response: `{"recommended_jobs": ["X"], "summary": "s"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewResumeAnalyzer(&mockChatModel{response: tt.response}, zerolog.Nop())
			insight := a.Analyze(context.Background(), sampleRecord())
			require.NotNil(t, insight)
			assert.Nil(t, insight.CareerGrowthScore)
			assert.Nil(t, insight.ATSScore)
			assert.Equal(t, constants.InsightFailedSummary, insight.Summary)
		})
	}
}

func TestAnalyzeNilRecordDegrades(t *testing.T) {
	a := NewResumeAnalyzer(&mockChatModel{response: "{}"}, zerolog.Nop())
	insight := a.Analyze(context.Background(), nil)
	require.NotNil(t, insight)
	assert.Equal(t, constants.InsightFailedSummary, insight.Summary)
}
