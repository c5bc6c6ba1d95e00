package response

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tsukikage7/pagekit/pagination"
)

// 注意：ExtractMessage 对内部错误（5xxxx）会隐藏详细信息。
// 如需完整错误信息（用于日志），请使用 ExtractMessageUnsafe。

// BusinessError 业务错误.
//
// 实现 error 接口，可用于在业务层传递错误码信息.
type BusinessError struct {
	Code    Code   // 错误码
	Message string // 自定义错误消息（可选）
	Cause   error  // 原始错误（可选）
}

// Error 实现 error 接口.
func (e *BusinessError) Error() string {
	msg := e.GetMessage()
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap 返回原始错误.
func (e *BusinessError) Unwrap() error {
	return e.Cause
}

// GetMessage 获取错误消息.
func (e *BusinessError) GetMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code.Message
}

// NewError 创建业务错误.
func NewError(code Code) *BusinessError {
	return &BusinessError{Code: code}
}

// NewErrorWithMessage 创建带自定义消息的业务错误.
func NewErrorWithMessage(code Code, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

// Wrap 包装错误为业务错误.
func Wrap(code Code, err error) *BusinessError {
	return &BusinessError{Code: code, Cause: err}
}

// AsBusinessError 将错误转换为业务错误.
//
// 如果不是业务错误，返回 nil.
func AsBusinessError(err error) *BusinessError {
	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr
	}
	return nil
}

// paginationCodes 分页错误到错误码的映射.
var paginationCodes = []struct {
	err  error
	code Code
}{
	{pagination.ErrUnsetField, CodeMissingParam},
	{pagination.ErrInvalidLimit, CodeInvalidParam},
	{pagination.ErrInvalidItems, CodeInvalidParam},
	{pagination.ErrInvalidLinks, CodeInvalidParam},
	{pagination.ErrPageOutOfRange, CodePageOutOfRange},
}

// paginationCode 识别分页计算返回的错误.
func paginationCode(err error) (Code, bool) {
	for _, m := range paginationCodes {
		if errors.Is(err, m.err) {
			return m.code, true
		}
	}
	return Code{}, false
}

// ExtractCode 从错误中提取错误码.
//
// 业务错误返回其错误码，分页参数错误映射为 3xxxx，
// 其余返回 CodeInternal.
func ExtractCode(err error) Code {
	if err == nil {
		return CodeSuccess
	}

	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr.Code
	}

	var code Code
	if errors.As(err, &code) {
		return code
	}

	if code, ok := paginationCode(err); ok {
		return code
	}

	switch {
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	}

	return CodeInternal
}

// ExtractMessage 从错误中提取错误消息.
//
// 对于内部错误（5xxxx），返回通用消息，避免暴露敏感信息.
func ExtractMessage(err error) string {
	if err == nil {
		return CodeSuccess.Message
	}

	code := ExtractCode(err)
	if code.Num >= 50000 {
		return code.Message
	}

	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr.GetMessage()
	}

	// 分页参数错误的描述不含敏感信息，原样返回
	if _, ok := paginationCode(err); ok {
		return err.Error()
	}

	return code.Message
}

// ExtractMessageUnsafe 从错误中提取完整错误消息（包含敏感信息）.
//
// 仅用于日志记录，不应返回给客户端.
func ExtractMessageUnsafe(err error) string {
	if err == nil {
		return CodeSuccess.Message
	}
	return err.Error()
}
