package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cv-agent-go/internal/logger"
	"cv-agent-go/internal/processor"
	"cv-agent-go/internal/storage"
	"cv-agent-go/internal/types"
)

// ExtractResponse 简历解析接口的响应体
type ExtractResponse struct {
	SubmissionUUID string               `json:"submission_uuid"`
	FileName       string               `json:"file_name"`
	Record         *types.ResumeRecord  `json:"record"`
	Insights       *types.InsightRecord `json:"insights,omitempty"`
}

// ResumeHandler 简历上传解析的业务处理器
type ResumeHandler struct {
	preprocessor *processor.DocumentPreprocessor
	pipeline     *processor.Pipeline
	store        *storage.Storage
}

// NewResumeHandler 创建业务处理器，store可为nil
func NewResumeHandler(pre *processor.DocumentPreprocessor, pipeline *processor.Pipeline, store *storage.Storage) *ResumeHandler {
	return &ResumeHandler{
		preprocessor: pre,
		pipeline:     pipeline,
		store:        store,
	}
}

// HandleResumeExtract 处理一次简历解析请求
// 落临时文件后提取文本、跑解析流水线，按需生成AI分析并归档产物
func (h *ResumeHandler) HandleResumeExtract(ctx context.Context, file io.Reader, size int64, fileName string, withInsights bool) (*ExtractResponse, error) {
	submissionUUID := uuid.New().String()
	log := logger.Logger.With().
		Str("submission_uuid", submissionUUID).
		Str("file", fileName).
		Logger()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, processor.NewReadError(submissionUUID, fileName, err.Error())
	}

	// 原始文件归档（可选）
	if h.store != nil && h.store.MinIO != nil {
		if _, err := h.store.MinIO.UploadOriginal(ctx, submissionUUID, fileName, bytes.NewReader(data), int64(len(data))); err != nil {
			log.Warn().Err(err).Msg("原始文件归档失败")
		}
	}

	// 提取器以文件路径为输入，先落临时文件
	tmpFile, err := os.CreateTemp("", "cv-upload-*"+strings.ToLower(filepath.Ext(fileName)))
	if err != nil {
		return nil, processor.NewReadError(submissionUUID, fileName, err.Error())
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return nil, processor.NewReadError(submissionUUID, fileName, err.Error())
	}
	tmpFile.Close()

	rawText, err := h.preprocessor.ExtractText(ctx, tmpPath)
	if err != nil {
		return nil, err
	}

	record, err := h.pipeline.ProcessText(ctx, fileName, rawText)
	if err != nil {
		return nil, err
	}

	resp := &ExtractResponse{
		SubmissionUUID: submissionUUID,
		FileName:       fileName,
		Record:         record,
	}
	if withInsights {
		resp.Insights = h.pipeline.Analyze(ctx, record)
	}

	h.archiveResult(ctx, submissionUUID, rawText, resp, log)
	return resp, nil
}

// archiveResult 把解析文本和结果JSON归档到对象存储，失败只告警
func (h *ResumeHandler) archiveResult(ctx context.Context, submissionUUID, rawText string, resp *ExtractResponse, log zerolog.Logger) {
	if h.store == nil || h.store.MinIO == nil {
		return
	}

	if _, err := h.store.MinIO.UploadParsedText(ctx, submissionUUID, rawText); err != nil {
		log.Warn().Err(err).Msg("解析文本归档失败")
	}

	resultJSON, err := json.MarshalIndent(resp.Record, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("序列化解析结果失败")
		return
	}
	if _, err := h.store.MinIO.UploadResultJSON(ctx, submissionUUID, resultJSON); err != nil {
		log.Warn().Err(err).Msg("解析结果归档失败")
	}
}
