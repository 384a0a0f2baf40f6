package processor

import (
	"strings"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/types"
)

// PruneRecord 去掉解析结果中的空值和占位值
// 空列表置nil、占位字符串清空、全空的联系方式整体移除，
// 这样JSON序列化时缺失字段完全不出现
func PruneRecord(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	record.Name = pruneString(record.Name)

	if record.ContactInfo != nil {
		record.ContactInfo.Email = pruneString(record.ContactInfo.Email)
		if len(record.ContactInfo.PhoneNumbers) == 0 {
			record.ContactInfo.PhoneNumbers = nil
		}
		if len(record.ContactInfo.URLs) == 0 {
			record.ContactInfo.URLs = nil
		}
		if record.ContactInfo.IsEmpty() {
			record.ContactInfo = nil
		}
	}

	if len(record.Skills) == 0 {
		record.Skills = nil
	}
	if len(record.Experience) == 0 {
		record.Experience = nil
	}
	if len(record.Education) == 0 {
		record.Education = nil
	}
	if len(record.Projects) == 0 {
		record.Projects = nil
	}
	if len(record.Certifications) == 0 {
		record.Certifications = nil
	}
	if len(record.Languages) == 0 {
		record.Languages = nil
	}
}

// pruneString 占位值和空白串一律归空
func pruneString(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == constants.NotAvailable {
		return ""
	}
	return trimmed
}
