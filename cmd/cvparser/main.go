package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"cv-agent-go/internal/agent"
	"cv-agent-go/internal/config"
	"cv-agent-go/internal/logger"
	"cv-agent-go/internal/parser"
	"cv-agent-go/internal/processor"
	"cv-agent-go/internal/storage"
	"cv-agent-go/internal/types"
)

// batchResult 批处理模式下单个文件的输出
type batchResult struct {
	Record   *types.ResumeRecord  `json:"record"`
	Insights *types.InsightRecord `json:"insights,omitempty"`
}

func main() {
	configPath := pflag.StringP("config", "c", "", "配置文件路径")
	inputDir := pflag.StringP("input", "i", "", "待处理简历目录，缺省取配置中的dirs.cv_files")
	textDir := pflag.StringP("text-dir", "t", "", "提取文本落盘目录，缺省取配置中的dirs.extracted_text")
	resultDir := pflag.StringP("output", "o", "", "解析结果目录，缺省取配置中的dirs.parsed_results")
	withInsights := pflag.Bool("insights", false, "为每份简历生成AI分析")
	pflag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	// 未显式传--insights时跟随配置
	if !pflag.CommandLine.Changed("insights") {
		*withInsights = cfg.Pipeline.WithInsights
	}

	if *inputDir == "" {
		*inputDir = cfg.Dirs.CVFiles
	}
	if *textDir == "" {
		*textDir = cfg.Dirs.ExtractedText
	}
	if *resultDir == "" {
		*resultDir = cfg.Dirs.ParsedResults
	}

	ctx := context.Background()

	store, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer store.Close()

	llm := agent.NewOllamaChatModel(cfg.Ollama.Host, cfg.Ollama.Model,
		agent.WithTimeout(time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second))

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx, parser.WithPDFLogger(logger.Logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化PDF解析器失败")
	}
	docxExtractor := parser.NewDocxTextExtractor(logger.Logger)
	preprocessor := processor.NewDocumentPreprocessor(pdfExtractor, docxExtractor, nil, logger.Logger)

	comp := processor.Components{
		FieldExtractor: parser.NewLLMFieldExtractor(llm, logger.Logger),
		Sections:       parser.NewSectionExtractor(cfg.Patterns.SectionHeadings),
		Contacts:       parser.NewContactExtractor(cfg.Patterns.Phone),
	}
	if *withInsights {
		comp.Analyzer = parser.NewResumeAnalyzer(llm, logger.Logger)
	}
	if cfg.Ollama.EnableRetrieval {
		embedder := parser.NewOllamaEmbedder(cfg.Ollama.Host, cfg.Ollama.EmbeddingModel, logger.Logger)
		comp.Retriever = parser.NewChunkRetriever(embedder, cfg.Ollama.RetrievalTopK, logger.Logger)
	}
	if store.Redis != nil {
		comp.Cache = store.Redis
		comp.Dedupe = store.Redis
	}

	pipeline, err := processor.NewPipeline(comp, processor.Settings{
		MaxChunkSize:      cfg.Pipeline.MaxChunkSize,
		ChunkOverlap:      cfg.Pipeline.ChunkOverlap,
		NameContextChars:  cfg.Pipeline.NameContextChars,
		NameFallbackChars: cfg.Pipeline.NameFallbackChars,
		FieldConcurrency:  cfg.Pipeline.FieldConcurrency,
		EducationKeywords: cfg.Patterns.EducationKeywords,
		Logger:            logger.Logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("组装解析流水线失败")
	}

	for _, dir := range []string{*textDir, *resultDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal().Err(err).Str("dir", dir).Msg("创建输出目录失败")
		}
	}

	entries, err := os.ReadDir(*inputDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *inputDir).Msg("读取输入目录失败")
	}

	processed, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".pdf" && ext != ".docx" && ext != ".doc" {
			continue
		}

		// 单个文件失败不影响批次其余文件
		if err := processOne(ctx, preprocessor, pipeline, *withInsights,
			filepath.Join(*inputDir, entry.Name()), *textDir, *resultDir); err != nil {
			logger.Error().Err(err).Str("file", entry.Name()).Msg("简历处理失败")
			failed++
			continue
		}
		processed++
	}

	logger.Info().Int("processed", processed).Int("failed", failed).Msg("批处理完成")
}

func processOne(ctx context.Context, pre *processor.DocumentPreprocessor, pipeline *processor.Pipeline, withInsights bool, filePath, textDir, resultDir string) error {
	fileName := filepath.Base(filePath)
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	rawText, err := pre.ExtractText(ctx, filePath)
	if err != nil {
		return err
	}

	// 提取文本落盘，便于排查解析问题
	textPath := filepath.Join(textDir, base+".txt")
	if err := os.WriteFile(textPath, []byte(rawText), 0o644); err != nil {
		logger.Warn().Err(err).Str("file", fileName).Msg("提取文本落盘失败")
	}

	record, err := pipeline.ProcessText(ctx, fileName, rawText)
	if err != nil {
		return err
	}

	result := batchResult{Record: record}
	if withInsights {
		result.Insights = pipeline.Analyze(ctx, record)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	resultPath := filepath.Join(resultDir, base+"_parsed.json")
	if err := os.WriteFile(resultPath, data, 0o644); err != nil {
		return processor.NewStoreError("", fileName, err.Error())
	}

	logger.Info().Str("file", fileName).Str("result", resultPath).Msg("简历处理完成")
	return nil
}
