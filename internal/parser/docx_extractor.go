package parser

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog"

	"cv-agent-go/internal/constants"
)

// DocxTextExtractor 从DOCX文件中提取纯文本
// 正文段落按空行分隔，表格序列化成带定界标记的制表符文本，
// 这样LLM在纯文本里仍能识别表格结构（语言能力表尤其依赖这一点）
type DocxTextExtractor struct {
	logger zerolog.Logger
}

// NewDocxTextExtractor 创建DOCX文本提取器
func NewDocxTextExtractor(logger zerolog.Logger) *DocxTextExtractor {
	return &DocxTextExtractor{logger: logger}
}

// ExtractFromFile 从DOCX文件路径提取文本
func (d *DocxTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("打开DOCX文件 %s 失败: %w", filePath, err)
	}
	defer doc.Close()

	return d.extractFromXML(doc.Editable().GetContent())
}

// ExtractFromReader 从内存中的DOCX内容提取文本
func (d *DocxTextExtractor) ExtractFromReader(ctx context.Context, reader io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, size)
	if err != nil {
		return "", fmt.Errorf("解析DOCX内容失败: %w", err)
	}
	defer doc.Close()

	return d.extractFromXML(doc.Editable().GetContent())
}

// extractFromXML 遍历document.xml，按正文段落和表格两类收集文本
// 与常见文档库的行为一致：先输出全部正文段落，再输出全部表格
func (d *DocxTextExtractor) extractFromXML(content string) (string, error) {
	paragraphs, tables, err := walkDocumentXML(content)
	if err != nil {
		return "", fmt.Errorf("解析DOCX正文XML失败: %w", err)
	}

	var parts []string
	for _, p := range paragraphs {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	for _, t := range tables {
		if len(t) == 0 {
			continue
		}
		parts = append(parts, serializeTable(t))
	}

	d.logger.Debug().
		Int("paragraphs", len(paragraphs)).
		Int("tables", len(tables)).
		Msg("DOCX文本提取完成")
	return strings.Join(parts, "\n\n"), nil
}

// serializeTable 把表格序列化为带定界标记的文本
// 行内单元格用制表符连接，单元格内的换行替换为空格
func serializeTable(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, strings.ReplaceAll(cell, "\n", " "))
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return "\n" + constants.TableStartMarker + "\n" +
		strings.Join(lines, "\n") +
		"\n" + constants.TableEndMarker
}

// walkDocumentXML 解析WordprocessingML，返回正文段落与表格
// 表格内的段落只计入单元格，不混入正文段落
func walkDocumentXML(content string) (paragraphs []string, tables [][][]string, err error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		tableDepth  int
		curTable    [][]string
		curRow      []string
		curCell     strings.Builder
		curPara     strings.Builder
		inPara      bool
		cellHasPara bool
	)

	for {
		tok, tokErr := decoder.Token()
		if tokErr == io.EOF {
			break
		}
		if tokErr != nil {
			return nil, nil, tokErr
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
				if tableDepth == 1 {
					curTable = nil
				}
			case "tr":
				if tableDepth == 1 {
					curRow = nil
				}
			case "tc":
				if tableDepth == 1 {
					curCell.Reset()
					cellHasPara = false
				}
			case "p":
				if tableDepth == 0 {
					curPara.Reset()
					inPara = true
				} else if tableDepth == 1 {
					if cellHasPara {
						curCell.WriteString("\n")
					}
					cellHasPara = true
				}
			case "t":
				var text string
				if err := decoder.DecodeElement(&text, &t); err != nil {
					return nil, nil, err
				}
				if tableDepth == 0 && inPara {
					curPara.WriteString(text)
				} else if tableDepth >= 1 {
					curCell.WriteString(text)
				}
			case "br", "cr":
				if tableDepth == 0 && inPara {
					curPara.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth == 1 && len(curTable) > 0 {
					tables = append(tables, curTable)
					curTable = nil
				}
				tableDepth--
			case "tr":
				if tableDepth == 1 {
					curTable = append(curTable, curRow)
					curRow = nil
				}
			case "tc":
				if tableDepth == 1 {
					curRow = append(curRow, curCell.String())
					curCell.Reset()
				}
			case "p":
				if tableDepth == 0 && inPara {
					paragraphs = append(paragraphs, curPara.String())
					inPara = false
				}
			}
		}
	}
	return paragraphs, tables, nil
}
