package parser

import (
	"regexp"
	"strings"

	"cv-agent-go/internal/config"
	"cv-agent-go/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{4,6}\b`)
	urlPattern   = regexp.MustCompile(`https?://[^\s)>\]"]+`)

	phoneNoiseRe = regexp.MustCompile(`[()\s.\-]`)
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
)

// ContactExtractor 用正则从简历文本中提取联系方式
type ContactExtractor struct {
	policy config.PhonePolicy
}

// NewContactExtractor 构造联系方式提取器
func NewContactExtractor(policy config.PhonePolicy) *ContactExtractor {
	if policy.MinDigits <= 0 {
		policy.MinDigits = 10
	}
	if policy.MaxDigits <= 0 {
		policy.MaxDigits = 15
	}
	if policy.TrunkPrefix == "" {
		policy.TrunkPrefix = "0"
	}
	return &ContactExtractor{policy: policy}
}

// Extract 提取邮箱、电话和URL，找不到任何内容时各字段为空
// 电话和URL去重后按首次出现顺序排列，邮箱取最先出现的一个
func (c *ContactExtractor) Extract(text string) *types.ContactInfo {
	info := &types.ContactInfo{}
	if text == "" {
		return info
	}

	if m := emailPattern.FindString(text); m != "" {
		info.Email = m
	}

	seen := make(map[string]bool)
	for _, raw := range phonePattern.FindAllString(text, -1) {
		normalized, ok := c.normalizePhone(raw)
		if !ok || seen[normalized] {
			continue
		}
		seen[normalized] = true
		info.PhoneNumbers = append(info.PhoneNumbers, normalized)
	}

	seenURL := make(map[string]bool)
	for _, u := range urlPattern.FindAllString(text, -1) {
		if seenURL[u] {
			continue
		}
		seenURL[u] = true
		info.URLs = append(info.URLs, u)
	}

	return info
}

// normalizePhone 清洗并按位数策略规范化电话号码
// 10位无前缀时补"+"，11位带国内长途前缀时替换为配置的国际区号
// 默认的+91替换是针对印度号码的区域性策略，经由配置可调
func (c *ContactExtractor) normalizePhone(raw string) (string, bool) {
	cleaned := phoneNoiseRe.ReplaceAllString(raw, "")
	digits := strings.TrimPrefix(cleaned, "+")
	if !digitsOnlyRe.MatchString(digits) {
		return "", false
	}
	n := len(digits)
	if n < c.policy.MinDigits || n > c.policy.MaxDigits {
		return "", false
	}

	hasPlus := strings.HasPrefix(cleaned, "+")
	switch {
	case n == 10 && !hasPlus && !strings.HasPrefix(cleaned, c.policy.TrunkPrefix):
		return "+" + cleaned, true
	case n == 11 && !hasPlus && strings.HasPrefix(cleaned, c.policy.TrunkPrefix) && c.policy.TrunkReplacement != "":
		return c.policy.TrunkReplacement + cleaned[len(c.policy.TrunkPrefix):], true
	default:
		return cleaned, true
	}
}
