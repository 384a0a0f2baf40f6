package processor

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/parser"
	"cv-agent-go/internal/types"
	"cv-agent-go/pkg/utils"
)

// 检索增强模式下各字段使用的查询语句
const (
	skillsQuery         = "List of distinct technical skills, programming languages, software, tools, and methodologies from this resume."
	experienceQuery     = "Candidate's work experience, employment history, EMPLOYMENT RECORD RELEVANT TO THE ASSIGNMENT, job titles, companies, start and end dates, and responsibilities."
	projectsQuery       = "List of projects, assignments, or key deliverables with descriptions, technologies, client_company and dates."
	certificationsQuery = "List of certifications, professional licenses, training programs, and workshops completed."
	educationQuery      = "Academic degrees, diplomas, institutions, and graduation years."
	languagesQuery      = "List of languages spoken, reading and writing proficiency levels from a table."
)

// Components 流水线依赖的组件，Analyzer/Retriever/Cache均可为nil
type Components struct {
	FieldExtractor FieldExtractor
	Sections       SectionLocator
	Contacts       ContactParser
	Analyzer       InsightAnalyzer
	Retriever      ContextRetriever
	Cache          RecordCache
	Dedupe         Deduper
}

// Settings 流水线行为参数
type Settings struct {
	MaxChunkSize      int
	ChunkOverlap      int
	NameContextChars  int
	NameFallbackChars int
	FieldConcurrency  int // 1为串行，大于1时字段抽取有界并发
	EducationKeywords []string
	Logger            zerolog.Logger
}

// Pipeline 简历解析流水线
// 规范化、联系方式、分块、逐字段LLM抽取、经历清洗、结果裁剪
// 单个字段失败只降级该字段，整个文档级的失败才返回错误
type Pipeline struct {
	comp Components
	set  Settings
}

// NewPipeline 组装流水线，核心组件缺失时报错
func NewPipeline(comp Components, set Settings) (*Pipeline, error) {
	if comp.FieldExtractor == nil {
		return nil, fmt.Errorf("字段抽取器不能为空")
	}
	if comp.Sections == nil {
		return nil, fmt.Errorf("小节提取器不能为空")
	}
	if comp.Contacts == nil {
		return nil, fmt.Errorf("联系方式提取器不能为空")
	}

	if set.MaxChunkSize <= 0 {
		set.MaxChunkSize = constants.DefaultMaxChunkSize
	}
	if set.ChunkOverlap < 0 {
		set.ChunkOverlap = constants.DefaultChunkOverlap
	}
	if set.NameContextChars <= 0 {
		set.NameContextChars = constants.DefaultNameContextChars
	}
	if set.NameFallbackChars <= 0 {
		set.NameFallbackChars = constants.DefaultNameFallbackChars
	}
	if set.FieldConcurrency <= 0 {
		set.FieldConcurrency = 1
	}
	if len(set.EducationKeywords) == 0 {
		set.EducationKeywords = constants.DefaultEducationKeywords
	}

	return &Pipeline{comp: comp, set: set}, nil
}

// ProcessText 解析一份已提取文本的简历
func (p *Pipeline) ProcessText(ctx context.Context, fileName, rawText string) (*types.ResumeRecord, error) {
	log := p.set.Logger

	normalized := parser.NormalizeText(rawText)
	if normalized == "" {
		return nil, NewEmptyDocumentError("", fileName)
	}

	// 同一份文本解析过就直接复用结果
	textMD5 := utils.CalculateMD5([]byte(normalized))
	if p.comp.Dedupe != nil {
		if dup, err := p.comp.Dedupe.CheckAndAddParsedTextMD5(ctx, textMD5); err == nil && dup {
			log.Info().Str("file", fileName).Str("md5", textMD5).Msg("检测到重复提交的简历文本")
		}
	}
	if p.comp.Cache != nil {
		if cached, err := p.comp.Cache.GetCachedRecord(ctx, textMD5); err == nil && cached != nil {
			log.Info().Str("file", fileName).Str("md5", textMD5).Msg("命中解析结果缓存")
			cached.FileName = fileName
			return cached, nil
		}
	}

	record := &types.ResumeRecord{FileName: fileName}

	record.Name = p.extractName(ctx, normalized)
	record.ContactInfo = p.comp.Contacts.Extract(normalized)

	chunks := parser.ChunkText(normalized, p.set.MaxChunkSize, p.set.ChunkOverlap)
	joined := types.JoinChunks(chunks)
	log.Debug().Str("file", fileName).Int("chunks", len(chunks)).Msg("文本分块完成")

	// 检索增强：向量化一次，后续每个字段按查询取topK块
	var chunkVectors [][]float64
	if p.comp.Retriever != nil && len(chunks) > 0 {
		vecs, err := p.comp.Retriever.EmbedChunks(ctx, chunks)
		if err != nil {
			log.Warn().Err(err).Str("file", fileName).Msg("文本块向量化失败，退回全量上下文")
		} else {
			chunkVectors = vecs
		}
	}

	contextFor := func(query string) string {
		if p.comp.Retriever != nil && chunkVectors != nil {
			if rc := p.comp.Retriever.RelevantContext(ctx, query, chunks, chunkVectors); rc != "" {
				return rc
			}
		}
		return joined
	}

	// 认证优先从CERTIFICATIONS小节取，其次TRAINING，最后全量上下文
	certContext := ""
	if section, ok := p.comp.Sections.Extract(normalized, constants.SectionCertifications); ok {
		certContext = section
	} else if section, ok := p.comp.Sections.Extract(normalized, constants.SectionTraining); ok {
		certContext = section
	} else {
		certContext = contextFor(certificationsQuery)
	}

	eduContext := ""
	if section, ok := p.comp.Sections.Extract(normalized, constants.SectionEducation); ok {
		eduContext = section
	} else {
		eduContext = contextFor(educationQuery)
	}

	fe := p.comp.FieldExtractor
	tasks := []func(){
		func() {
			skills, outcome := fe.ExtractSkills(ctx, contextFor(skillsQuery))
			p.logOutcome(fileName, "skills", outcome)
			record.Skills = skills
		},
		func() {
			experience, outcome := fe.ExtractExperience(ctx, contextFor(experienceQuery))
			p.logOutcome(fileName, "experience", outcome)
			record.Experience = experience
		},
		func() {
			education, outcome := fe.ExtractEducation(ctx, eduContext)
			p.logOutcome(fileName, "education", outcome)
			record.Education = education
		},
		func() {
			projects, outcome := fe.ExtractProjects(ctx, contextFor(projectsQuery))
			p.logOutcome(fileName, "projects", outcome)
			record.Projects = projects
		},
		func() {
			certifications, outcome := fe.ExtractCertifications(ctx, certContext)
			p.logOutcome(fileName, "certifications", outcome)
			record.Certifications = certifications
		},
	}
	if len(chunks) > 0 {
		tasks = append(tasks, func() {
			languages, outcome := fe.ExtractLanguages(ctx, contextFor(languagesQuery))
			p.logOutcome(fileName, "languages", outcome)
			record.Languages = languages
		})
	}
	p.runTasks(tasks)

	record.Experience = ReconcileExperience(record.Experience, record.Education, p.set.EducationKeywords, log)
	PruneRecord(record)

	if p.comp.Cache != nil {
		if err := p.comp.Cache.SetCachedRecord(ctx, textMD5, record); err != nil {
			log.Warn().Err(err).Str("file", fileName).Msg("写入解析结果缓存失败")
		}
	}

	log.Info().Str("file", fileName).Str("name", record.Name).Msg("简历解析完成")
	return record, nil
}

// Analyze 对解析结果生成AI分析，未配置分析器时返回nil
func (p *Pipeline) Analyze(ctx context.Context, record *types.ResumeRecord) *types.InsightRecord {
	if p.comp.Analyzer == nil {
		return nil
	}
	return p.comp.Analyzer.Analyze(ctx, record)
}

// extractName LLM优先，退化到开头大写单词的正则匹配
func (p *Pipeline) extractName(ctx context.Context, normalized string) string {
	nameContext := normalized
	if len(nameContext) > p.set.NameContextChars {
		nameContext = nameContext[:p.set.NameContextChars]
	}

	name := p.comp.FieldExtractor.ExtractName(ctx, nameContext)
	if name != "" && name != constants.NotAvailable {
		return name
	}
	if fallback := parser.FallbackName(normalized, p.set.NameFallbackChars); fallback != "" {
		return fallback
	}
	return constants.NotAvailable
}

// runTasks 执行字段抽取任务
// 各任务写入record中互不相同的字段且不共享可变状态，可以安全并发
func (p *Pipeline) runTasks(tasks []func()) {
	if p.set.FieldConcurrency <= 1 {
		for _, task := range tasks {
			task()
		}
		return
	}

	sem := make(chan struct{}, p.set.FieldConcurrency)
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func(run func()) {
			defer wg.Done()
			defer func() { <-sem }()
			run()
		}(task)
	}
	wg.Wait()
}

func (p *Pipeline) logOutcome(fileName, field string, outcome types.FieldOutcome) {
	switch outcome {
	case types.FieldMalformed:
		p.set.Logger.Warn().Str("file", fileName).Str("field", field).Msg("字段抽取失败，已降级为空值")
	case types.FieldEmpty:
		p.set.Logger.Debug().Str("file", fileName).Str("field", field).Msg("字段无内容")
	}
}
