package types

import (
	"encoding/json"
	"strings"
)

// ContactInfo 从简历文本中用正则提取出的联系方式
type ContactInfo struct {
	Email        string   `json:"email,omitempty"`
	PhoneNumbers []string `json:"phone_numbers,omitempty"`
	URLs         []string `json:"urls,omitempty"`
}

// IsEmpty 三个字段都为空时返回true
func (c *ContactInfo) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Email == "" && len(c.PhoneNumbers) == 0 && len(c.URLs) == 0
}

// Experience 一段正式的工作经历
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"` // YYYY-MM 或 YYYY，"Present"表示至今
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// Education 一条教育背景记录
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"` // 毕业年份 YYYY
}

// Project 简历中描述的项目经历
type Project struct {
	ProjectName      string     `json:"project_name"`
	ClientCompany    string     `json:"client_company"`
	Role             string     `json:"role,omitempty"`
	Description      string     `json:"description"`
	TechnologiesUsed StringList `json:"technologies_used,omitempty"`
}

// Certification 认证或培训记录
type Certification struct {
	Name        string `json:"name"`
	IssuingBody string `json:"issuing_body"`
	Dates       string `json:"dates"`
}

// LanguageSkill 语言能力，听说读写按熟练度描述
type LanguageSkill struct {
	Language string `json:"language"`
	Speaking string `json:"speaking"`
	Reading  string `json:"reading"`
	Writing  string `json:"writing"`
}

// ResumeRecord 一份简历的完整解析结果
// 所有字段都可缺省，序列化时缺省字段不输出
type ResumeRecord struct {
	FileName       string          `json:"file_name,omitempty"`
	Name           string          `json:"name,omitempty"`
	ContactInfo    *ContactInfo    `json:"contact_info,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Languages      []LanguageSkill `json:"languages,omitempty"`
}

// InsightRecord 基于解析结果生成的AI分析
// 分数用指针表示，nil代表分析失败或缺失
type InsightRecord struct {
	CareerGrowthScore *float64 `json:"career_growth_score,omitempty"`
	ATSScore          *float64 `json:"ats_score,omitempty"`
	RecommendedJobs   []string `json:"recommended_jobs,omitempty"`
	Summary           string   `json:"summary,omitempty"`
}

// TextChunk 分块器输出的一段文本，Seq为插入顺序
type TextChunk struct {
	Seq  int
	Text string
}

// JoinChunks 按顺序以空格拼接所有块文本
func JoinChunks(chunks []TextChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, " ")
}

// FieldOutcome 标记单个字段LLM抽取的结局，调用方据此决定日志级别
type FieldOutcome string

const (
	FieldOK        FieldOutcome = "ok"        // 解析出至少一条有效数据
	FieldEmpty     FieldOutcome = "empty"     // LLM正常返回但没有数据
	FieldMalformed FieldOutcome = "malformed" // 响应无法修复成合法JSON或调用失败
)

// StringList 容忍LLM把数组写成单个字符串的字符串列表
type StringList []string

// UnmarshalJSON 同时接受 ["a","b"] 和 "a, b" 两种形态
func (s *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = arr
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if strings.TrimSpace(single) == "" {
		*s = nil
		return nil
	}
	parts := strings.Split(single, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	*s = out
	return nil
}
