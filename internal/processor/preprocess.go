package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/parser"
)

// PDFExtractor PDF文本提取能力
type PDFExtractor interface {
	ExtractFromFile(ctx context.Context, filePath string) (string, error)
}

// DocxExtractor DOCX文本提取能力
type DocxExtractor interface {
	ExtractFromFile(ctx context.Context, filePath string) (string, error)
}

// DocConverter 依赖外部工具的格式转换钩子
// 返回转换后文件的路径；未配置时对应能力直接跳过
type DocConverter interface {
	ConvertDocToDocx(ctx context.Context, filePath string) (string, error)
	ConvertDocxToPDF(ctx context.Context, filePath string) (string, error)
}

// DocumentPreprocessor 把各种格式的简历文件统一成原始文本
type DocumentPreprocessor struct {
	pdf       PDFExtractor
	docx      DocxExtractor
	converter DocConverter // 可为nil
	logger    zerolog.Logger
}

// NewDocumentPreprocessor 创建文档预处理器，converter可为nil
func NewDocumentPreprocessor(pdf PDFExtractor, docx DocxExtractor, converter DocConverter, logger zerolog.Logger) *DocumentPreprocessor {
	return &DocumentPreprocessor{
		pdf:       pdf,
		docx:      docx,
		converter: converter,
		logger:    logger,
	}
}

// ExtractText 按扩展名路由到对应的提取器
// DOCX提取结果可疑时尝试转成PDF重提，严格更短才采用PDF文本
func (d *DocumentPreprocessor) ExtractText(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		text, err := d.pdf.ExtractFromFile(ctx, filePath)
		if err != nil {
			return "", NewExtractError("", filepath.Base(filePath), err.Error())
		}
		return text, nil

	case ".docx":
		return d.extractDocxWithFallback(ctx, filePath)

	case ".doc":
		if d.converter == nil {
			d.logger.Warn().Str("file", filePath).Msg("未配置DOC转换器，跳过该文件")
			return "", NewUnsupportedFileTypeError("", filepath.Base(filePath))
		}
		docxPath, err := d.converter.ConvertDocToDocx(ctx, filePath)
		if err != nil {
			return "", NewExtractError("", filepath.Base(filePath), "DOC转DOCX失败: "+err.Error())
		}
		defer os.Remove(docxPath)
		return d.extractDocxWithFallback(ctx, docxPath)

	default:
		return "", NewUnsupportedFileTypeError("", filepath.Base(filePath))
	}
}

// extractDocxWithFallback DOCX提取，结果可疑时经PDF重试
// 可疑的判据：行数过少（大量内容藏在文本框等结构里）或体积异常膨胀
func (d *DocumentPreprocessor) extractDocxWithFallback(ctx context.Context, filePath string) (string, error) {
	text, err := d.docx.ExtractFromFile(ctx, filePath)
	if err != nil {
		return "", NewExtractError("", filepath.Base(filePath), err.Error())
	}

	if !docxTextSuspect(text) || d.converter == nil {
		return text, nil
	}

	d.logger.Info().
		Str("file", filePath).
		Int("lines", countLines(text)).
		Int("bytes", len(text)).
		Msg("DOCX提取结果可疑，尝试经PDF重提")

	pdfPath, err := d.converter.ConvertDocxToPDF(ctx, filePath)
	if err != nil {
		d.logger.Warn().Err(err).Str("file", filePath).Msg("DOCX转PDF失败，保留原始提取结果")
		return text, nil
	}
	defer os.Remove(pdfPath)

	pdfText, err := d.pdf.ExtractFromFile(ctx, pdfPath)
	if err != nil {
		d.logger.Warn().Err(err).Str("file", filePath).Msg("PDF重提失败，保留原始提取结果")
		return text, nil
	}

	// 只有PDF文本严格更短时才认为它更干净
	if len(pdfText) > 0 && len(pdfText) < len(text) {
		d.logger.Info().Str("file", filePath).Msg("采用PDF重提文本")
		return pdfText, nil
	}
	return text, nil
}

// docxTextSuspect 判断DOCX提取结果是否可疑
func docxTextSuspect(text string) bool {
	if text == "" {
		return false
	}
	return countLines(text) <= constants.DocxSuspectMaxLines || len(text) > constants.DocxSuspectMaxBytes
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

var _ PDFExtractor = (*parser.EinoPDFTextExtractor)(nil)
var _ DocxExtractor = (*parser.DocxTextExtractor)(nil)
