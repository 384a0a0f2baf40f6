package parser

import (
	"regexp"
	"strings"
	"sync"

	"cv-agent-go/internal/constants"
)

// SectionExtractor 按小节标题切分简历文本
// 标题集合是封闭的：只有集合内的标题会被当作小节边界
type SectionExtractor struct {
	headings []string
	boundary *regexp.Regexp

	mu      sync.Mutex
	targets map[string]*regexp.Regexp
}

// NewSectionExtractor 构造小节提取器，headings为空时使用默认标题集
func NewSectionExtractor(headings []string) *SectionExtractor {
	if len(headings) == 0 {
		headings = constants.DefaultSectionHeadings
	}
	quoted := make([]string, len(headings))
	for i, h := range headings {
		quoted[i] = regexp.QuoteMeta(h)
	}
	// 下一小节边界形如 换行+标题+冒号
	boundary := regexp.MustCompile(`(?i)\n\s*(?:` + strings.Join(quoted, "|") + `)\s*:`)
	return &SectionExtractor{
		headings: headings,
		boundary: boundary,
		targets:  make(map[string]*regexp.Regexp),
	}
}

// Extract 返回指定小节标题之后、下一小节标题之前的正文
// 找不到标题或正文为空时ok为false
func (s *SectionExtractor) Extract(text, heading string) (string, bool) {
	if text == "" || heading == "" {
		return "", false
	}

	loc := s.targetPattern(heading).FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	rest := text[loc[1]:]
	if b := s.boundary.FindStringIndex(rest); b != nil {
		rest = rest[:b[0]]
	}

	content := strings.TrimSpace(rest)
	if content == "" {
		return "", false
	}
	return content, true
}

// targetPattern 返回匹配目标标题行的正则，按标题缓存
func (s *SectionExtractor) targetPattern(heading string) *regexp.Regexp {
	key := strings.ToUpper(heading)
	s.mu.Lock()
	defer s.mu.Unlock()
	if re, ok := s.targets[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)(?:^|\n)\s*` + regexp.QuoteMeta(heading) + `\s*(?:\n+|:)?\s*`)
	s.targets[key] = re
	return re
}
