package main

import (
	"context"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	hlog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"cv-agent-go/internal/agent"
	"cv-agent-go/internal/api/handler"
	"cv-agent-go/internal/api/router"
	"cv-agent-go/internal/config"
	"cv-agent-go/internal/logger"
	"cv-agent-go/internal/parser"
	"cv-agent-go/internal/processor"
	"cv-agent-go/internal/storage"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "配置文件路径，缺省时按常见位置搜索")
	pflag.Parse()

	ctx := context.Background()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	// 2. 初始化日志，并把Hertz的访问日志接到同一个zerolog实例
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	hlog.SetLogger(hertzadapter.From(logger.Logger))

	// 3. 初始化存储（Redis/MinIO按开关）
	store, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer store.Close()

	// 4. 模型与提取器
	llm := agent.NewOllamaChatModel(cfg.Ollama.Host, cfg.Ollama.Model,
		agent.WithTimeout(time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second))

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx, parser.WithPDFLogger(logger.Logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化PDF解析器失败")
	}
	docxExtractor := parser.NewDocxTextExtractor(logger.Logger)

	// 5. 组装流水线
	comp := processor.Components{
		FieldExtractor: parser.NewLLMFieldExtractor(llm, logger.Logger),
		Sections:       parser.NewSectionExtractor(cfg.Patterns.SectionHeadings),
		Contacts:       parser.NewContactExtractor(cfg.Patterns.Phone),
		Analyzer:       parser.NewResumeAnalyzer(llm, logger.Logger),
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

	preprocessor := processor.NewDocumentPreprocessor(pdfExtractor, docxExtractor, nil, logger.Logger)
	resumeHandler := handler.NewResumeHandler(preprocessor, pipeline, store)

	// 6. 启动HTTP服务
	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	router.RegisterRoutes(h, resumeHandler, cfg.Pipeline.WithInsights)

	logger.Info().Str("address", cfg.Server.Address).Msg("简历解析服务启动")
	h.Spin()
	os.Exit(0)
}
