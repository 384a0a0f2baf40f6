package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
)

const ollamaEmbeddingsPath = "/api/embeddings"

// OllamaEmbedder 通过Ollama /api/embeddings 生成文本向量
// 实现 eino 的 embedding.Embedder 接口，供检索增强模式使用
type OllamaEmbedder struct {
	host       string
	modelName  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOllamaEmbedder 创建Ollama向量化客户端
func NewOllamaEmbedder(host, modelName string, logger zerolog.Logger) *OllamaEmbedder {
	if strings.TrimSpace(host) == "" {
		host = defaultEmbedderHost
	}
	return &OllamaEmbedder{
		host:       strings.TrimRight(host, "/"),
		modelName:  modelName,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

const defaultEmbedderHost = "http://localhost:11434"

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// EmbedStrings 实现 embedding.Embedder 接口
// Ollama的embeddings接口一次只接受一段文本，这里逐段调用
func (e *OllamaEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	vectors := make([][]float64, 0, len(texts))
	for i, text := range texts {
		vec, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("第%d段文本向量化失败: %w", i, err)
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func (e *OllamaEmbedder) embedOne(ctx context.Context, text string) ([]float64, error) {
	reqPayload := ollamaEmbeddingRequest{
		Model:  e.modelName,
		Prompt: text,
	}
	jsonData, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	url := e.host + ollamaEmbeddingsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建 HTTP 请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("发送 HTTP 请求失败: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ollama embeddings 请求失败，状态 %s: %s", httpResp.Status, string(bodyBytes))
	}

	var apiResp ollamaEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("反序列化 API 响应失败: %w", err)
	}
	if len(apiResp.Embedding) == 0 {
		return nil, fmt.Errorf("Ollama 返回空向量")
	}
	return apiResp.Embedding, nil
}

var _ embedding.Embedder = (*OllamaEmbedder)(nil)
