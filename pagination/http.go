package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

// FromRequest 使用默认设置从 HTTP 请求解析分页参数.
//
// 使用示例:
//
//	req := pagination.FromRequest(r) // ?page=3&limit=50
func FromRequest(r *http.Request) Request {
	return DefaultSettings().FromRequest(r)
}

// FromRequest 从 HTTP 请求的查询参数解析分页参数.
// 缺失或非法的值回退为默认值，每页数量不超过 MaxLimit.
func (s Settings) FromRequest(r *http.Request) Request {
	if r == nil || r.URL == nil {
		return s.NewRequest(DefaultPage, s.DefaultLimit)
	}
	query := r.URL.Query()
	page := parseInt(query.Get(s.PageParam), DefaultPage)
	limit := parseInt(query.Get(s.LimitParam), s.DefaultLimit)
	return s.NewRequest(page, limit)
}

// parseInt 解析整数参数，失败时返回默认值.
func parseInt(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}
