package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cv-agent-go/internal/constants"
)

// OllamaConfig 本地Ollama服务配置
type OllamaConfig struct {
	Host           string `yaml:"host"`            // 例如 http://localhost:11434
	Model          string `yaml:"model"`           // 聊天模型名
	EmbeddingModel string `yaml:"embedding_model"` // 向量模型名，检索增强时使用
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 单次请求超时(秒)，0表示不限制

	EnableRetrieval bool `yaml:"enable_retrieval"` // 是否启用向量检索增强上下文
	RetrievalTopK   int  `yaml:"retrieval_top_k"`  // 检索时返回的块数量
}

// PipelineConfig 解析流水线参数
type PipelineConfig struct {
	MaxChunkSize      int  `yaml:"max_chunk_size"`      // 单块最大字符数
	ChunkOverlap      int  `yaml:"chunk_overlap"`       // 相邻块重叠字符数
	NameContextChars  int  `yaml:"name_context_chars"`  // 姓名提取上下文长度
	NameFallbackChars int  `yaml:"name_fallback_chars"` // 姓名正则回退扫描长度
	FieldConcurrency  int  `yaml:"field_concurrency"`   // 字段抽取并发度，1为串行
	WithInsights      bool `yaml:"with_insights"`       // 是否默认生成AI分析
}

// PhonePolicy 电话号码规范化策略
// 默认值复刻的是面向印度市场的区号补全规则，部署到其他地区时应调整
type PhonePolicy struct {
	MinDigits        int    `yaml:"min_digits"`        // 有效号码的最少位数
	MaxDigits        int    `yaml:"max_digits"`        // 有效号码的最多位数
	TrunkPrefix      string `yaml:"trunk_prefix"`      // 国内长途前缀，通常是"0"
	TrunkReplacement string `yaml:"trunk_replacement"` // 替换长途前缀的国际区号
}

// PatternsConfig 正则提取相关的可调参数
type PatternsConfig struct {
	SectionHeadings   []string    `yaml:"section_headings"`   // 小节标题集合
	EducationKeywords []string    `yaml:"education_keywords"` // 经历清洗用的教育关键词
	Phone             PhonePolicy `yaml:"phone"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Address string `yaml:"address"` // 监听地址，如 :8888
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"` // json 或 pretty
	TimeFormat   string `yaml:"time_format"`
	ReportCaller bool   `yaml:"report_caller"`
}

// RedisConfig Redis去重与结果缓存配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`

	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`

	MD5RecordExpireDays   int `yaml:"md5_record_expire_days"`   // 去重记录过期时间(天)
	RecordCacheExpireDays int `yaml:"record_cache_expire_days"` // 解析结果缓存过期时间(天)
}

// MinIOConfig MinIO对象存储配置
type MinIOConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
	Location        string `yaml:"location"`

	OriginalsBucket  string `yaml:"originals_bucket"`   // 原始简历文件
	ParsedTextBucket string `yaml:"parsed_text_bucket"` // 规范化后的纯文本
	ResultsBucket    string `yaml:"results_bucket"`     // 解析结果JSON
}

// DirsConfig 批处理模式使用的目录
type DirsConfig struct {
	CVFiles       string `yaml:"cv_files"`       // 待处理简历目录
	ExtractedText string `yaml:"extracted_text"` // 提取文本的落盘目录
	ParsedResults string `yaml:"parsed_results"` // 解析结果目录
}

// Config 应用程序配置
type Config struct {
	Ollama   OllamaConfig   `yaml:"ollama"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Patterns PatternsConfig `yaml:"patterns"`
	Server   ServerConfig   `yaml:"server"`
	Logger   LoggerConfig   `yaml:"logger"`
	Redis    RedisConfig    `yaml:"redis"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Dirs     DirsConfig     `yaml:"dirs"`
}

// LoadConfig 加载配置文件
// path为空时按常见位置搜索，都找不到时回退到内置默认配置，方便测试环境
func LoadConfig(path string) (*Config, error) {
	searchPaths := []string{path}
	if path == "" {
		searchPaths = []string{
			"config.yaml",
			filepath.Join("config", "config.yaml"),
			filepath.Join("..", "config.yaml"),
		}
	}

	for _, p := range searchPaths {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", p, err)
		}

		cfg := createDefaultConfig()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件 %s 失败: %w", p, err)
		}
		cfg.applyDefaults()
		return cfg, nil
	}

	if path != "" {
		return nil, fmt.Errorf("配置文件不存在: %s", path)
	}

	// 测试或本地环境没有配置文件时使用默认值
	cfg := createDefaultConfig()
	cfg.applyDefaults()
	return cfg, nil
}

// createDefaultConfig 构造一份可直接运行的默认配置
func createDefaultConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			Host:           "http://localhost:11434",
			Model:          "llama3.2:latest",
			EmbeddingModel: "mxbai-embed-large",
			TimeoutSeconds: 120,
			RetrievalTopK:  3,
		},
		Pipeline: PipelineConfig{
			MaxChunkSize:      constants.DefaultMaxChunkSize,
			ChunkOverlap:      constants.DefaultChunkOverlap,
			NameContextChars:  constants.DefaultNameContextChars,
			NameFallbackChars: constants.DefaultNameFallbackChars,
			FieldConcurrency:  1,
		},
		Patterns: PatternsConfig{
			SectionHeadings:   constants.DefaultSectionHeadings,
			EducationKeywords: constants.DefaultEducationKeywords,
			Phone: PhonePolicy{
				MinDigits:        10,
				MaxDigits:        15,
				TrunkPrefix:      "0",
				TrunkReplacement: "+91",
			},
		},
		Server: ServerConfig{Address: ":8888"},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Redis: RedisConfig{
			Address:               "localhost:6379",
			PoolSize:              10,
			MD5RecordExpireDays:   30,
			RecordCacheExpireDays: 7,
		},
		MinIO: MinIOConfig{
			Endpoint:         "localhost:9000",
			OriginalsBucket:  "cv-originals",
			ParsedTextBucket: "cv-parsed-text",
			ResultsBucket:    "cv-results",
		},
		Dirs: DirsConfig{
			CVFiles:       "cv_files",
			ExtractedText: "extracted_text",
			ParsedResults: "parsed_results",
		},
	}
}

// applyDefaults 补齐配置文件中漏填的关键字段
func (c *Config) applyDefaults() {
	if c.Pipeline.MaxChunkSize <= 0 {
		c.Pipeline.MaxChunkSize = constants.DefaultMaxChunkSize
	}
	if c.Pipeline.ChunkOverlap < 0 {
		c.Pipeline.ChunkOverlap = constants.DefaultChunkOverlap
	}
	if c.Pipeline.NameContextChars <= 0 {
		c.Pipeline.NameContextChars = constants.DefaultNameContextChars
	}
	if c.Pipeline.NameFallbackChars <= 0 {
		c.Pipeline.NameFallbackChars = constants.DefaultNameFallbackChars
	}
	if c.Pipeline.FieldConcurrency <= 0 {
		c.Pipeline.FieldConcurrency = 1
	}
	if len(c.Patterns.SectionHeadings) == 0 {
		c.Patterns.SectionHeadings = constants.DefaultSectionHeadings
	}
	if len(c.Patterns.EducationKeywords) == 0 {
		c.Patterns.EducationKeywords = constants.DefaultEducationKeywords
	}
	if c.Patterns.Phone.MinDigits <= 0 {
		c.Patterns.Phone.MinDigits = 10
	}
	if c.Patterns.Phone.MaxDigits <= 0 {
		c.Patterns.Phone.MaxDigits = 15
	}
	if c.Ollama.RetrievalTopK <= 0 {
		c.Ollama.RetrievalTopK = 3
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8888"
	}
}
