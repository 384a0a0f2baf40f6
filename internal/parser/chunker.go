package parser

import (
	"strings"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/types"
)

// ChunkText 把规范化后的文本切成带重叠的顺序块
// 以空行分段后贪心装填，超长段落在最近的空格处硬切
// 第二块起每块头部携带前一块末尾overlap个字符，用换行符衔接
func ChunkText(text string, maxChunkSize, overlap int) []types.TextChunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if maxChunkSize <= 0 {
		maxChunkSize = constants.DefaultMaxChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	paragraphs := strings.Split(text, "\n\n")
	var raw []string
	current := ""

	for _, para := range paragraphs {
		if len(current)+len(para)+2 <= maxChunkSize {
			current += para + "\n\n"
			continue
		}
		if strings.TrimSpace(current) != "" {
			raw = append(raw, strings.TrimSpace(current))
		}
		current = para + "\n\n"
		for len(current) > maxChunkSize {
			splitPoint := strings.LastIndex(current[:maxChunkSize], " ")
			if splitPoint <= 0 {
				splitPoint = maxChunkSize
			}
			raw = append(raw, strings.TrimSpace(current[:splitPoint]))
			current = strings.TrimSpace(current[splitPoint:])
		}
	}
	if strings.TrimSpace(current) != "" {
		raw = append(raw, strings.TrimSpace(current))
	}

	// 重叠处理：给每个后续块补上前一块的尾部，帮助LLM理解跨块内容
	chunks := make([]types.TextChunk, 0, len(raw))
	for i, c := range raw {
		text := c
		if i > 0 && overlap > 0 {
			prev := raw[i-1]
			tail := prev
			if len(prev) > overlap {
				tail = prev[len(prev)-overlap:]
			}
			text = tail + "\n" + c
		}
		if text == "" {
			continue
		}
		chunks = append(chunks, types.TextChunk{Seq: len(chunks), Text: text})
	}
	return chunks
}
