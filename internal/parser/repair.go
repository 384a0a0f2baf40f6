package parser

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSON 从LLM的自由文本响应中抢救出第一个合法的JSON值
// 依次尝试：```json代码块、首个平衡的数组、首个平衡的对象、
// 去掉代码块标记后整体解析。全部失败时ok为false
func ExtractJSON(raw string) (json.RawMessage, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}

	if m := fencedJSONRe.FindStringSubmatch(s); m != nil {
		if v, ok := tryParseJSON(strings.TrimSpace(m[1])); ok {
			return v, true
		}
	}

	if v, ok := scanBalanced(s, '[', ']'); ok {
		return v, true
	}
	if v, ok := scanBalanced(s, '{', '}'); ok {
		return v, true
	}

	cleaned := strings.ReplaceAll(s, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return tryParseJSON(strings.TrimSpace(cleaned))
}

func tryParseJSON(s string) (json.RawMessage, bool) {
	if s == "" {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}

// scanBalanced 依次检查每个以open开头的平衡括号子串，返回第一个能解析成功的
func scanBalanced(s string, open, closing byte) (json.RawMessage, bool) {
	for start := 0; start < len(s); start++ {
		if s[start] != open {
			continue
		}
		end := matchBalanced(s, start, open, closing)
		if end < 0 {
			continue
		}
		if v, ok := tryParseJSON(s[start : end+1]); ok {
			return v, true
		}
	}
	return nil, false
}

// matchBalanced 返回与s[start]配对的右括号下标，跳过字符串字面量内的括号
// 找不到配对时返回-1
func matchBalanced(s string, start int, open, closing byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
