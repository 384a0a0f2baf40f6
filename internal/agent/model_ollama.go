package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"cv-agent-go/internal/logger"
)

const (
	defaultOllamaHost  = "http://localhost:11434"
	defaultOllamaModel = "llama3.2:latest"
	ollamaChatPath     = "/api/chat"
)

// --- Ollama /api/chat 请求与响应结构 ---

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type ollamaChatResponse struct {
	Model     string            `json:"model"`
	Message   ollamaChatMessage `json:"message"`
	Done      bool              `json:"done"`
	CreatedAt string            `json:"created_at,omitempty"`
}

// OllamaChatModel 实现 model.ChatModel 和 model.ToolCallingChatModel 接口，
// 用于与本地Ollama服务交互。字段抽取只用非流式单轮对话。
type OllamaChatModel struct {
	host       string
	modelName  string
	httpClient *http.Client
	boundTools []*schema.ToolInfo
}

// OllamaOption OllamaChatModel的配置选项
type OllamaOption func(*OllamaChatModel)

// WithTimeout 配置单次请求超时，0表示不限制
func WithTimeout(d time.Duration) OllamaOption {
	return func(o *OllamaChatModel) {
		o.httpClient.Timeout = d
	}
}

// WithHTTPClient 替换底层HTTP客户端，测试时使用
func WithHTTPClient(client *http.Client) OllamaOption {
	return func(o *OllamaChatModel) {
		o.httpClient = client
	}
}

// NewOllamaChatModel 创建一个新的 OllamaChatModel 实例
func NewOllamaChatModel(host, modelName string, options ...OllamaOption) *OllamaChatModel {
	if strings.TrimSpace(host) == "" {
		host = defaultOllamaHost
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultOllamaModel
	}

	m := &OllamaChatModel{
		host:       strings.TrimRight(host, "/"),
		modelName:  modelName,
		httpClient: &http.Client{},
	}
	for _, option := range options {
		option(m)
	}

	logger.Info().
		Str("host", m.host).
		Str("model", m.modelName).
		Msg("Ollama LLM 客户端已初始化")
	return m
}

// Generate 实现 model.ChatModel 接口，发起一次非流式对话
func (o *OllamaChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	apiMessages := make([]ollamaChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		apiMessages = append(apiMessages, ollamaChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	if len(apiMessages) == 0 {
		return nil, fmt.Errorf("消息列表为空，无法调用Ollama")
	}

	reqPayload := ollamaChatRequest{
		Model:    o.modelName,
		Messages: apiMessages,
		Stream:   false,
	}

	jsonData, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	url := o.host + ollamaChatPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建 HTTP 请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	httpResp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("发送 HTTP 请求失败: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ollama API 请求失败，状态 %s: %s", httpResp.Status, string(bodyBytes))
	}

	var apiResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("反序列化 API 响应失败: %w", err)
	}

	logger.Debug().
		Str("model", o.modelName).
		Int("content_len", len(apiResp.Message.Content)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Ollama 调用完成")

	role := apiResp.Message.Role
	if role == "" {
		role = "assistant"
	}
	return &schema.Message{
		Role:    schema.RoleType(role),
		Content: apiResp.Message.Content,
	}, nil
}

// Stream 实现 model.ChatModel 接口
// 字段抽取流程只需要完整响应，流式接口未实现
func (o *OllamaChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("OllamaChatModel 的 Stream 方法未实现")
}

// BindTools 实现 model.ChatModel 接口
// 简历解析不使用工具调用，仅记录传入的工具以满足接口
func (o *OllamaChatModel) BindTools(tools []*schema.ToolInfo) error {
	o.boundTools = tools
	if len(tools) > 0 {
		logger.Warn().Int("count", len(tools)).Msg("OllamaChatModel 不支持工具调用，已忽略绑定的工具")
	}
	return nil
}

// WithTools 实现 model.ToolCallingChatModel 接口
func (o *OllamaChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	if err := o.BindTools(tools); err != nil {
		return nil, err
	}
	return o, nil
}

var _ model.ChatModel = (*OllamaChatModel)(nil)
var _ model.ToolCallingChatModel = (*OllamaChatModel)(nil)
