package response

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// grpcCodes 按 gRPC 状态码反查错误码，同一状态码取第一个.
var grpcCodes = []Code{
	CodeSuccess,
	CodeCanceled,
	CodeTimeout,
	CodeInvalidParam,
	CodePageOutOfRange,
	CodeNotFound,
	CodeInternal,
}

// GRPCStatus 将错误转换为 gRPC Status，已是 gRPC 错误时原样返回.
func GRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if s, ok := status.FromError(err); ok {
		return s
	}
	return status.New(ExtractCode(err).GRPCCode, ExtractMessage(err))
}

// GRPCError 将错误转换为可直接由 gRPC 方法返回的 error.
func GRPCError(err error) error {
	return GRPCStatus(err).Err()
}

// FromGRPCStatus 从 gRPC Status 提取 Code，无对应错误码时返回 CodeUnknown.
func FromGRPCStatus(s *status.Status) Code {
	for _, c := range grpcCodes {
		if c.GRPCCode == s.Code() {
			return c
		}
	}
	return CodeUnknown
}

// FromGRPCError 从 gRPC error 提取 Code，非 gRPC 错误视为内部错误.
func FromGRPCError(err error) Code {
	if err == nil {
		return CodeSuccess
	}
	if s, ok := status.FromError(err); ok {
		return FromGRPCStatus(s)
	}
	return CodeInternal
}

// UnaryServerInterceptor 返回 gRPC 一元拦截器，把处理函数返回的分页错误和业务错误转换为 gRPC 状态.
//
// 使用示例:
//
//	grpc.NewServer(grpc.UnaryInterceptor(response.UnaryServerInterceptor()))
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, GRPCError(err)
		}
		return resp, nil
	}
}
