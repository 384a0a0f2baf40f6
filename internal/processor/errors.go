package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrReadDocumentFailed  = errors.New("读取简历文件失败")
	ErrExtractTextFailed   = errors.New("提取简历文本失败")
	ErrEmptyDocument       = errors.New("简历文本为空")
	ErrLLMCallFailed       = errors.New("LLM调用失败")
	ErrStoreResultFailed   = errors.New("保存解析结果失败")
	ErrUnsupportedFileType = errors.New("不支持的文件类型")
)

// ExtractError 包含详细错误信息的自定义错误
type ExtractError struct {
	SubmissionUUID string
	FileName       string
	Op             string
	BaseErr        error
	Detail         string
}

func (e *ExtractError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s, UUID:%s): %s", e.BaseErr, e.Op, e.FileName, e.SubmissionUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s, UUID:%s)", e.BaseErr, e.Op, e.FileName, e.SubmissionUUID)
}

func (e *ExtractError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ExtractError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewReadError(uuid, fileName, detail string) error {
	return &ExtractError{
		SubmissionUUID: uuid,
		FileName:       fileName,
		Op:             "read",
		BaseErr:        ErrReadDocumentFailed,
		Detail:         detail,
	}
}

func NewExtractError(uuid, fileName, detail string) error {
	return &ExtractError{
		SubmissionUUID: uuid,
		FileName:       fileName,
		Op:             "extract",
		BaseErr:        ErrExtractTextFailed,
		Detail:         detail,
	}
}

func NewEmptyDocumentError(uuid, fileName string) error {
	return &ExtractError{
		SubmissionUUID: uuid,
		FileName:       fileName,
		Op:             "normalize",
		BaseErr:        ErrEmptyDocument,
	}
}

func NewStoreError(uuid, fileName, detail string) error {
	return &ExtractError{
		SubmissionUUID: uuid,
		FileName:       fileName,
		Op:             "store",
		BaseErr:        ErrStoreResultFailed,
		Detail:         detail,
	}
}

func NewUnsupportedFileTypeError(uuid, fileName string) error {
	return &ExtractError{
		SubmissionUUID: uuid,
		FileName:       fileName,
		Op:             "preprocess",
		BaseErr:        ErrUnsupportedFileType,
	}
}
