package response

import (
	"encoding/json"
	"net/http"

	"github.com/Tsukikage7/pagekit/pagination"
)

// WriteJSON 写入 JSON 响应.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess 写入成功响应.
func WriteSuccess[T any](w http.ResponseWriter, data T) error {
	return WriteJSON(w, http.StatusOK, OK(data))
}

// WriteError 写入错误响应.
//
// 自动从 error 提取错误码和消息.
func WriteError(w http.ResponseWriter, err error) error {
	code := ExtractCode(err)
	return WriteJSON(w, code.HTTPStatus, FailWithError[any](err))
}

// WritePaged 写入分页查询结果，err 不为 nil 时写入错误响应.
//
// 通常直接接收 pagination.Paginate 或 pagination.NewResult 的返回值:
//
//	result, err := pagination.Paginate[Article](ctx, db, req)
//	response.WritePaged(w, result, err)
func WritePaged[T any](w http.ResponseWriter, result pagination.Result[T], err error) error {
	if err != nil {
		code := ExtractCode(err)
		return WriteJSON(w, code.HTTPStatus, PagedFailWithError[T](err))
	}
	return WriteJSON(w, http.StatusOK, Paged(result))
}
