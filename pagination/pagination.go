// Package pagination 提供分页信息计算功能.
//
// 根据总条数、每页数量与当前页码计算总页数、上下页以及当前页两侧的页码窗口，
// 结果交由模板或 API 层渲染，本包不生成任何 HTML 或 URL.
//
// 使用示例:
//
//	cfg, err := pagination.NewConfig(page, total, limit)
//	if err != nil {
//	    return err
//	}
//	info, err := pagination.Compute(cfg)
package pagination

import "math"

const (
	// FirstPage 首页页码.
	FirstPage = 1
	// DefaultPage 默认页码.
	DefaultPage = 1
	// DefaultLimit 默认每页数量.
	DefaultLimit = 20
	// MaxLimit 最大每页数量.
	MaxLimit = 100
	// DefaultLinks 当前页两侧默认展示的页码数量.
	DefaultLinks = 10
	// MaxLinks 当前页两侧展示的页码数量上限.
	MaxLinks = 1000
)

// Request 分页请求参数.
type Request struct {
	Page  int // 页码，从1开始
	Limit int // 每页数量
}

// NewRequest 创建分页请求参数，使用默认设置校正页码和每页数量.
func NewRequest(page, limit int) Request {
	return DefaultSettings().NewRequest(page, limit)
}

// Offset 计算偏移量，溢出时返回 math.MaxInt.
func (r Request) Offset() int {
	return offset(r.Page, r.Limit)
}

func offset(page, limit int) int {
	if page <= FirstPage || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Config 结合总条数生成分页计算配置.
func (r Request) Config(items int, opts ...Option) (Config, error) {
	return NewConfig(r.Page, items, r.Limit, opts...)
}

// Result 分页查询结果.
type Result[T any] struct {
	Items []T  `json:"items"`      // 数据列表
	Info  Info `json:"pagination"` // 分页信息
}

// NewResult 创建分页结果.
func NewResult[T any](items []T, total int, req Request, opts ...Option) (Result[T], error) {
	cfg, err := req.Config(total, opts...)
	if err != nil {
		return Result[T]{}, err
	}
	info, err := Compute(cfg)
	if err != nil {
		return Result[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Items: items,
		Info:  info,
	}, nil
}
