package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/types"
)

// 姓名提取失败时的回退正则：开头同一行内2~4个首字母大写的单词
var nameFallbackRe = regexp.MustCompile(`^[A-Z][a-z]+(?:[ \t][A-Z][a-z]+){1,3}`)

// LLMFieldExtractor 按字段驱动LLM抽取简历信息
// 每个字段一次阻塞调用，失败时降级为空值，从不中断整体解析
type LLMFieldExtractor struct {
	llmModel model.ToolCallingChatModel
	logger   zerolog.Logger
}

// NewLLMFieldExtractor 创建字段抽取器
func NewLLMFieldExtractor(llmModel model.ToolCallingChatModel, logger zerolog.Logger) *LLMFieldExtractor {
	return &LLMFieldExtractor{
		llmModel: llmModel,
		logger:   logger,
	}
}

// callLLM 单轮非流式调用：上下文作为system消息，指令作为user消息
func (e *LLMFieldExtractor) callLLM(ctx context.Context, prompt, contextText string) (string, error) {
	if e.llmModel == nil {
		return "", fmt.Errorf("LLM模型未初始化")
	}

	var messages []*schema.Message
	if contextText != "" {
		messages = append(messages, schema.SystemMessage(
			"Here is the relevant text context to extract information from:\n\n"+contextText))
	}
	messages = append(messages, schema.UserMessage(prompt))

	resp, err := e.llmModel.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("LLM返回空响应")
	}
	return resp.Content, nil
}

// ExtractName 提取候选人全名，失败时返回占位值
func (e *LLMFieldExtractor) ExtractName(ctx context.Context, contextText string) string {
	prompt := fmt.Sprintf(namePrompt, contextText)
	out, err := e.callLLM(ctx, prompt, contextText)
	if err != nil {
		e.logger.Warn().Err(err).Msg("姓名提取调用失败")
		return constants.NotAvailable
	}
	name := strings.TrimSpace(out)
	if name == "" {
		return constants.NotAvailable
	}
	return name
}

// FallbackName 在LLM没有给出姓名时，用正则扫描文本开头
// 找不到时返回空串
func FallbackName(text string, maxChars int) string {
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return strings.TrimSpace(nameFallbackRe.FindString(text))
}

// ExtractSkills 提取技能列表
func (e *LLMFieldExtractor) ExtractSkills(ctx context.Context, contextText string) ([]string, types.FieldOutcome) {
	raw, outcome := e.extractJSONField(ctx, "skills", fmt.Sprintf(skillsPrompt, contextText), contextText)
	if outcome != types.FieldOK {
		return nil, outcome
	}
	var skills []string
	if err := json.Unmarshal(raw, &skills); err != nil {
		// 数组里混入了非字符串，逐项抢救
		return decodeList[string](raw, e.logger, "skills")
	}
	if len(skills) == 0 {
		return nil, types.FieldEmpty
	}
	return skills, types.FieldOK
}

// ExtractExperience 提取正式工作经历
func (e *LLMFieldExtractor) ExtractExperience(ctx context.Context, contextText string) ([]types.Experience, types.FieldOutcome) {
	raw, outcome := e.extractJSONField(ctx, "experience", fmt.Sprintf(experiencePrompt, contextText), contextText)
	if outcome != types.FieldOK {
		return nil, outcome
	}
	return decodeList[types.Experience](raw, e.logger, "experience")
}

// ExtractEducation 提取教育背景
func (e *LLMFieldExtractor) ExtractEducation(ctx context.Context, contextText string) ([]types.Education, types.FieldOutcome) {
	raw, outcome := e.extractJSONField(ctx, "education", fmt.Sprintf(educationPrompt, contextText), contextText)
	if outcome != types.FieldOK {
		return nil, outcome
	}
	return decodeList[types.Education](raw, e.logger, "education")
}

// ExtractProjects 提取项目经历
func (e *LLMFieldExtractor) ExtractProjects(ctx context.Context, contextText string) ([]types.Project, types.FieldOutcome) {
	raw, outcome := e.extractJSONField(ctx, "projects", fmt.Sprintf(projectsPrompt, contextText), contextText)
	if outcome != types.FieldOK {
		return nil, outcome
	}
	return decodeList[types.Project](raw, e.logger, "projects")
}

// ExtractCertifications 提取认证与培训
func (e *LLMFieldExtractor) ExtractCertifications(ctx context.Context, contextText string) ([]types.Certification, types.FieldOutcome) {
	raw, outcome := e.extractJSONField(ctx, "certifications", fmt.Sprintf(certificationsPrompt, contextText), contextText)
	if outcome != types.FieldOK {
		return nil, outcome
	}
	return decodeList[types.Certification](raw, e.logger, "certifications")
}

// ExtractLanguages 提取语言能力
func (e *LLMFieldExtractor) ExtractLanguages(ctx context.Context, contextText string) ([]types.LanguageSkill, types.FieldOutcome) {
	raw, outcome := e.extractJSONField(ctx, "languages", fmt.Sprintf(languagesPrompt, contextText), contextText)
	if outcome != types.FieldOK {
		return nil, outcome
	}
	return decodeList[types.LanguageSkill](raw, e.logger, "languages")
}

// extractJSONField 调用LLM并把响应修复成JSON，失败原因反映在outcome里
func (e *LLMFieldExtractor) extractJSONField(ctx context.Context, field, prompt, contextText string) (json.RawMessage, types.FieldOutcome) {
	out, err := e.callLLM(ctx, prompt, contextText)
	if err != nil {
		e.logger.Warn().Err(err).Str("field", field).Msg("字段提取调用失败")
		return nil, types.FieldMalformed
	}

	raw, ok := ExtractJSON(out)
	if !ok {
		snippet := out
		if len(snippet) > 300 {
			snippet = snippet[:300]
		}
		e.logger.Warn().Str("field", field).Str("raw_output", snippet).Msg("LLM响应无法修复成JSON")
		return nil, types.FieldMalformed
	}
	return raw, types.FieldOK
}

// decodeList 把JSON数组逐项解码成目标类型
// 混入的异常条目跳过并告警，不影响其余条目
func decodeList[T any](raw json.RawMessage, logger zerolog.Logger, field string) ([]T, types.FieldOutcome) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn().Err(err).Str("field", field).Msg("LLM返回的不是JSON数组")
		return nil, types.FieldMalformed
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			logger.Warn().Str("field", field).RawJSON("entry", item).Msg("跳过无法解析的列表条目")
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, types.FieldEmpty
	}
	return out, types.FieldOK
}
