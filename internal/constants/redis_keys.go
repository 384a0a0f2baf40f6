package constants

// Redis键名常量，统一前缀便于运维排查
const (
	// ParsedTextMD5SetKey 已解析文本MD5的去重集合
	ParsedTextMD5SetKey = "cv:dedup:parsed_text_md5"

	// RecordCacheKeyPrefix 按规范化文本MD5缓存的解析结果，后接md5十六进制串
	RecordCacheKeyPrefix = "cv:record:"
)
