package response

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code 业务错误码.
type Code struct {
	Num        int        // 数字错误码
	Message    string     // 默认错误消息
	HTTPStatus int        // 对应的 HTTP 状态码
	GRPCCode   codes.Code // 对应的 gRPC 状态码
}

// Error 实现 error 接口.
func (c Code) Error() string {
	return c.Message
}

// WithMessage 创建带自定义消息的错误码副本.
func (c Code) WithMessage(msg string) Code {
	c.Message = msg
	return c
}

// Is 判断是否为指定错误码.
func (c Code) Is(target Code) bool {
	return c.Num == target.Num
}

// 预定义错误码，按首位数字分组：0 成功，1 请求生命周期，3 分页参数，4 资源，5 服务端.
var (
	CodeSuccess = NewCode(0, "成功", http.StatusOK, codes.OK)

	CodeUnknown  = NewCode(10000, "未知错误", http.StatusInternalServerError, codes.Unknown)
	CodeCanceled = NewCode(10001, "请求已取消", http.StatusRequestTimeout, codes.Canceled)
	CodeTimeout  = NewCode(10002, "请求超时", http.StatusGatewayTimeout, codes.DeadlineExceeded)

	CodeInvalidParam   = NewCode(30001, "参数无效", http.StatusBadRequest, codes.InvalidArgument)
	CodeMissingParam   = NewCode(30002, "缺少必需参数", http.StatusBadRequest, codes.InvalidArgument)
	CodePageOutOfRange = NewCode(30004, "页码超出范围", http.StatusBadRequest, codes.OutOfRange)

	CodeNotFound = NewCode(40001, "资源不存在", http.StatusNotFound, codes.NotFound)

	CodeInternal      = NewCode(50001, "服务器内部错误", http.StatusInternalServerError, codes.Internal)
	CodeDatabaseError = NewCode(50003, "数据库错误", http.StatusInternalServerError, codes.Internal)
)

// NewCode 创建自定义错误码.
func NewCode(num int, message string, httpStatus int, grpcCode codes.Code) Code {
	return Code{Num: num, Message: message, HTTPStatus: httpStatus, GRPCCode: grpcCode}
}
