package response

import (
	"github.com/Tsukikage7/pagekit/pagination"
)

// Response 统一响应体.
//
// 泛型参数 T 表示业务数据类型.
//
// 响应格式：
//
//	{
//	    "code": 0,
//	    "message": "成功",
//	    "data": { ... }
//	}
type Response[T any] struct {
	Code    int    `json:"code"`           // 业务状态码
	Message string `json:"message"`        // 响应消息
	Data    T      `json:"data,omitempty"` // 业务数据
}

// PagedResponse 分页响应体.
//
// 响应格式：
//
//	{
//	    "code": 0,
//	    "message": "成功",
//	    "data": [...],
//	    "pagination": {
//	        "pageCurrent": 5,
//	        "pageLast": 10,
//	        ...
//	    }
//	}
type PagedResponse[T any] struct {
	Code       int              `json:"code"`                 // 业务状态码
	Message    string           `json:"message"`              // 响应消息
	Data       []T              `json:"data"`                 // 业务数据列表
	Pagination *pagination.Info `json:"pagination,omitempty"` // 分页信息
}

// OK 创建成功响应.
func OK[T any](data T) Response[T] {
	return Response[T]{
		Code:    CodeSuccess.Num,
		Message: CodeSuccess.Message,
		Data:    data,
	}
}

// Fail 创建失败响应.
func Fail[T any](code Code) Response[T] {
	return Response[T]{
		Code:    code.Num,
		Message: code.Message,
	}
}

// FailWithError 从 error 创建失败响应.
func FailWithError[T any](err error) Response[T] {
	code := ExtractCode(err)
	return Response[T]{
		Code:    code.Num,
		Message: ExtractMessage(err),
	}
}

// Paged 创建分页响应.
func Paged[T any](result pagination.Result[T]) PagedResponse[T] {
	info := result.Info
	return PagedResponse[T]{
		Code:       CodeSuccess.Num,
		Message:    CodeSuccess.Message,
		Data:       result.Items,
		Pagination: &info,
	}
}

// PagedFailWithError 从 error 创建分页失败响应.
func PagedFailWithError[T any](err error) PagedResponse[T] {
	code := ExtractCode(err)
	return PagedResponse[T]{
		Code:    code.Num,
		Message: ExtractMessage(err),
	}
}

// IsSuccess 判断是否成功响应.
func (r Response[T]) IsSuccess() bool {
	return r.Code == CodeSuccess.Num
}

// IsSuccess 判断是否成功响应.
func (r PagedResponse[T]) IsSuccess() bool {
	return r.Code == CodeSuccess.Num
}
