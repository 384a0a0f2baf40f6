package utils

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// CalculateMD5 计算字节切片的MD5十六进制摘要
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// StringPtr 返回字符串的指针
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr 返回float64的指针
func Float64Ptr(f float64) *float64 {
	return &f
}

// TimePtr 返回time.Time的指针，零值返回nil
func TimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
