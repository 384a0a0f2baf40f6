package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cv-agent-go/internal/config"
	"cv-agent-go/internal/logger"
)

// MinIO 解析产物的对象存储
// 三个桶分别存放原始文件、规范化文本和解析结果JSON
type MinIO struct {
	client *minio.Client
	cfg    *config.MinIOConfig
}

// NewMinIO 创建MinIO适配器并确保桶存在
func NewMinIO(ctx context.Context, cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{client: client, cfg: cfg}
	for _, bucket := range []string{cfg.OriginalsBucket, cfg.ParsedTextBucket, cfg.ResultsBucket} {
		if err := m.ensureBucketExists(ctx, bucket); err != nil {
			return nil, err
		}
	}

	logger.Info().Str("endpoint", cfg.Endpoint).Msg("MinIO适配器初始化成功")
	return m, nil
}

func (m *MinIO) ensureBucketExists(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("桶名不能为空")
	}
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查桶 %s 失败: %w", bucketName, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.cfg.Location}); err != nil {
		return fmt.Errorf("创建桶 %s 失败: %w", bucketName, err)
	}
	logger.Info().Str("bucket", bucketName).Msg("已创建存储桶")
	return nil
}

// UploadOriginal 上传原始简历文件，对象名为 提交UUID+原扩展名
func (m *MinIO) UploadOriginal(ctx context.Context, submissionUUID, fileName string, reader io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	objectName := submissionUUID + ext
	_, err := m.client.PutObject(ctx, m.cfg.OriginalsBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentTypeForExt(ext),
	})
	if err != nil {
		return "", fmt.Errorf("上传原始文件失败: %w", err)
	}
	return objectName, nil
}

// UploadParsedText 上传规范化后的纯文本
func (m *MinIO) UploadParsedText(ctx context.Context, submissionUUID, text string) (string, error) {
	objectName := submissionUUID + ".txt"
	data := []byte(text)
	_, err := m.client.PutObject(ctx, m.cfg.ParsedTextBucket, objectName,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "text/plain; charset=utf-8",
		})
	if err != nil {
		return "", fmt.Errorf("上传解析文本失败: %w", err)
	}
	return objectName, nil
}

// UploadResultJSON 上传解析结果JSON
func (m *MinIO) UploadResultJSON(ctx context.Context, submissionUUID string, data []byte) (string, error) {
	objectName := submissionUUID + "_parsed.json"
	_, err := m.client.PutObject(ctx, m.cfg.ResultsBucket, objectName,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
	if err != nil {
		return "", fmt.Errorf("上传解析结果失败: %w", err)
	}
	return objectName, nil
}

// DownloadOriginal 下载原始简历文件
func (m *MinIO) DownloadOriginal(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.cfg.OriginalsBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s 失败: %w", objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s 失败: %w", objectName, err)
	}
	return data, nil
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	default:
		return "application/octet-stream"
	}
}
