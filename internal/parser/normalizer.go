package parser

import (
	"regexp"
	"strings"
)

// 扫描件和PDF提取常见的噪声字符
var (
	// OCR经常把项目符号识别成孤立的"e@"
	ocrArtifactRe = regexp.MustCompile(`(^|\s)e@(\s|$)`)

	bulletRe     = regexp.MustCompile(`[\x{2022}\x{25AA}\x{25CB}\x{25CF}\x{2713}\x{25BA}\x{2023}]`)
	nonASCIIRe   = regexp.MustCompile(`[^\x00-\x7F\n]+`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)

	glyphReplacer = strings.NewReplacer(
		"¢", " ",
		"«", " ",
		"*", " ",
		"©", "",
		"™", "",
		"®", "",
		"", "", // Wingdings私有区项目符号
		"|", " ",
		"_", " ",
		"—", "-", // 长破折号
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
		"…", "...",
		"\f", "",
	)
)

// NormalizeText 清洗从PDF/DOCX提取出的原始文本
// 结果只含ASCII字符与换行，任何行都没有首尾空白，空行最多连续一个
// 对同一输入重复调用结果不变
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	t := strings.ReplaceAll(text, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")

	t = ocrArtifactRe.ReplaceAllString(t, " ")
	// 删除可能因删除产生新的相邻组合，循环到稳定为止
	for strings.Contains(t, "e@") {
		t = strings.ReplaceAll(t, "e@", "")
	}

	t = glyphReplacer.Replace(t)
	t = bulletRe.ReplaceAllString(t, " ")
	t = nonASCIIRe.ReplaceAllString(t, " ")
	t = spaceRunRe.ReplaceAllString(t, " ")

	lines := strings.Split(t, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	t = strings.Join(lines, "\n")
	t = blankLinesRe.ReplaceAllString(t, "\n\n")

	return strings.TrimSpace(t)
}
