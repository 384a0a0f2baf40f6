package constants

// 字段缺失时统一使用的占位值，裁剪阶段会把它从最终结果中移除
const NotAvailable = "N/A"

// DOCX表格序列化时使用的定界标记，保证表格内容在纯文本里仍然可辨认
const (
	TableStartMarker = "--- TABLE START ---"
	TableEndMarker   = "--- TABLE END ---"
)

// 简历中常见的小节标题，小节提取器用它们判断小节边界
// 顺序无关，匹配时不区分大小写
var DefaultSectionHeadings = []string{
	"EXPERIENCE",
	"WORK HISTORY",
	"Academics",
	"PROFESSIONAL EXPERIENCE",
	"PROJECTS",
	"PUBLICATIONS",
	"AWARDS",
	"LANGUAGES",
	"CERTIFICATIONS",
	"TRAINING",
	"REFERENCES",
	"SUMMARY",
	"PROFILE",
	"SKILLS",
	"EDUCATION",
	"QUALIFICATIONS",
}

// 字段提取时优先查找的小节名
const (
	SectionEducation      = "EDUCATION"
	SectionCertifications = "CERTIFICATIONS"
	SectionTraining       = "TRAINING"
)

// 教育背景关键词，用于识别被误放进工作经历的教育条目
var DefaultEducationKeywords = []string{
	"m.tech",
	"iit",
	"university",
	"bachelor",
	"degree",
	"ph.d",
	"master",
	"college",
	"institute",
	"diploma",
	"honours",
	"hons",
}

// 流水线默认参数
const (
	DefaultMaxChunkSize      = 1500 // 单个文本块的最大字符数
	DefaultChunkOverlap      = 80   // 相邻文本块之间的重叠字符数
	DefaultNameContextChars  = 2000 // 姓名提取时送入LLM的上下文长度上限
	DefaultNameFallbackChars = 500  // 姓名正则回退时扫描的文本长度
)

// AI分析失败时返回的说明文案
const InsightFailedSummary = "AI analysis failed or returned an invalid format."

// DOCX提取结果触发PDF回退重试的阈值
const (
	DocxSuspectMaxLines = 6          // 行数小于等于该值时怀疑提取不完整
	DocxSuspectMaxBytes = 128 * 1024 // 超过该字节数时怀疑提取出了垃圾内容
)
