package pagination

import (
	"fmt"
	"sync"

	"github.com/Tsukikage7/pagekit/logger"
)

// optionalInt 可能未设置的整数字段.
type optionalInt struct {
	value int
	set   bool
}

// Paginator 可变的分页参数容器.
//
// 各字段可独立设置与读取，设置时不做校验，校验推迟到 Config/Info 调用时进行.
// Paginator 可被多个 goroutine 共享，每次计算读取的是字段的一致快照.
//
// 使用示例:
//
//	p := pagination.NewPaginator(pagination.WithLinks(5))
//	p.SetPage(3)
//	p.SetItems(total)
//	p.SetLimit(20)
//	info, err := p.Info()
type Paginator struct {
	mu     sync.RWMutex
	page   optionalInt
	items  optionalInt
	limit  optionalInt
	links  int
	strict bool
	logger logger.Logger
}

// NewPaginator 创建分页参数容器，links 默认为 DefaultLinks.
func NewPaginator(opts ...Option) *Paginator {
	o := newOptions(opts...)
	return &Paginator{
		links:  o.links,
		strict: o.strict,
		logger: o.logger,
	}
}

// NewPaginatorWith 创建已设置页码、总条数和每页数量的分页参数容器.
func NewPaginatorWith(page, items, limit int, opts ...Option) *Paginator {
	p := NewPaginator(opts...)
	p.page = optionalInt{value: page, set: true}
	p.items = optionalInt{value: items, set: true}
	p.limit = optionalInt{value: limit, set: true}
	return p
}

// SetPage 设置当前页码.
func (p *Paginator) SetPage(page int) {
	p.mu.Lock()
	p.page = optionalInt{value: page, set: true}
	p.mu.Unlock()
}

// Page 返回当前页码，未设置时 ok 为 false.
func (p *Paginator) Page() (page int, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.page.value, p.page.set
}

// SetItems 设置总条数.
func (p *Paginator) SetItems(items int) {
	p.mu.Lock()
	p.items = optionalInt{value: items, set: true}
	p.mu.Unlock()
}

// Items 返回总条数，未设置时 ok 为 false.
func (p *Paginator) Items() (items int, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.items.value, p.items.set
}

// SetLimit 设置每页数量.
func (p *Paginator) SetLimit(limit int) {
	p.mu.Lock()
	p.limit = optionalInt{value: limit, set: true}
	p.mu.Unlock()
}

// Limit 返回每页数量，未设置时 ok 为 false.
func (p *Paginator) Limit() (limit int, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.limit.value, p.limit.set
}

// SetLinks 设置当前页两侧展示的页码数量.
func (p *Paginator) SetLinks(links int) {
	p.mu.Lock()
	p.links = links
	p.mu.Unlock()
}

// Links 返回当前页两侧展示的页码数量.
func (p *Paginator) Links() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.links
}

// Config 返回当前字段的快照并校验.
func (p *Paginator) Config() (Config, error) {
	p.mu.RLock()
	page, items, limit := p.page, p.items, p.limit
	links, strict := p.links, p.strict
	p.mu.RUnlock()

	switch {
	case !page.set:
		return Config{}, fmt.Errorf("%w: page", ErrUnsetField)
	case !items.set:
		return Config{}, fmt.Errorf("%w: items", ErrUnsetField)
	case !limit.set:
		return Config{}, fmt.Errorf("%w: limit", ErrUnsetField)
	}

	opts := []Option{WithLinks(links)}
	if strict {
		opts = append(opts, WithStrict())
	}
	return NewConfig(page.value, items.value, limit.value, opts...)
}

// Info 基于当前字段计算分页信息，不修改任何字段.
func (p *Paginator) Info() (Info, error) {
	cfg, err := p.Config()
	if err != nil {
		p.debug("[Pagination] 分页参数无效", logger.Err(err))
		return Info{}, err
	}

	info, err := Compute(cfg)
	if err != nil {
		return Info{}, err
	}

	if info.PageCurrent > FirstPage && info.PageCurrent > info.PageLast {
		p.debug("[Pagination] 页码超过末页",
			logger.Int("page", info.PageCurrent),
			logger.Int("pages_total", info.PagesTotal),
		)
	}
	return info, nil
}

func (p *Paginator) debug(msg string, fields ...logger.Field) {
	if p.logger == nil {
		return
	}
	p.logger.With(fields...).Debug(msg)
}
