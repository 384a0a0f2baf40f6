package processor

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/types"
)

// ReconcileExperience 从工作经历中剔除被LLM误分类的教育条目
// 先用教育关键词粗筛，再和教育列表做机构/学位子串匹配，
// 最后用年份区间确认，三关都命中才移除，保持原有顺序
func ReconcileExperience(experience []types.Experience, education []types.Education, keywords []string, logger zerolog.Logger) []types.Experience {
	if len(experience) == 0 {
		return experience
	}
	if len(keywords) == 0 {
		keywords = constants.DefaultEducationKeywords
	}

	filtered := make([]types.Experience, 0, len(experience))
	for _, exp := range experience {
		if isEducationEntry(exp, education, keywords) {
			logger.Debug().
				Str("title", exp.Title).
				Str("company", exp.Company).
				Msg("工作经历中的教育条目已移除")
			continue
		}
		filtered = append(filtered, exp)
	}
	return filtered
}

func isEducationEntry(exp types.Experience, education []types.Education, keywords []string) bool {
	title := strings.ToLower(exp.Title)
	description := strings.ToLower(exp.Description)
	company := strings.ToLower(exp.Company)

	if !containsAny(title, keywords) && !containsAny(description, keywords) {
		return false
	}

	for _, edu := range education {
		institution := strings.ToLower(edu.Institution)
		degree := strings.ToLower(edu.Degree)

		institutionMatch := institution != "" &&
			(strings.Contains(company, institution) ||
				strings.Contains(description, institution) ||
				strings.Contains(title, institution))
		degreeMatch := degree != "" &&
			(strings.Contains(title, degree) ||
				strings.Contains(description, degree))

		if !institutionMatch && !degreeMatch {
			continue
		}

		eduYear, hasEduYear := parseYear(edu.Year)
		startYear, hasStart := parseLeadingYear(exp.StartDate)
		endYear, hasEnd := parseEndYear(exp.EndDate)

		switch {
		case hasEduYear && hasStart && hasEnd:
			if startYear <= eduYear && eduYear <= endYear {
				return true
			}
		case hasEduYear && (hasStart || hasEnd):
			if (hasStart && eduYear == startYear) || (hasEnd && eduYear == endYear) {
				return true
			}
		case !hasStart && !hasEnd:
			// 经历完全没有日期时，机构或学位命中即可判定
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// parseYear 解析纯数字年份
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return year, true
}

// parseLeadingYear 从 YYYY-MM 或 YYYY 中取出年份
func parseLeadingYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	return parseYear(strings.SplitN(s, "-", 2)[0])
}

// parseEndYear 解析结束年份，"Present"与"till date"视为当前年份
func parseEndYear(s string) (int, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "present" || trimmed == "till date" {
		return time.Now().Year(), true
	}
	return parseLeadingYear(s)
}
