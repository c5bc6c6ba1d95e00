package pagination

import (
	"time"

	"github.com/Tsukikage7/pagekit/cache"
	"github.com/Tsukikage7/pagekit/logger"
)

// Config 分页计算配置.
//
// Config 为不可变值，只能通过 NewConfig 或 With* 方法得到经过校验的副本.
// 零值表示未设置，对其调用 Compute 返回 ErrUnsetField.
type Config struct {
	page   int
	items  int
	limit  int
	links  int
	strict bool
	set    bool
}

// NewConfig 创建分页计算配置.
//
// links 默认为 DefaultLinks，可通过 WithLinks 修改.
//
// 使用示例:
//
//	cfg, err := pagination.NewConfig(5, 95, 10, pagination.WithLinks(2))
//	info, err := cfg.Info()
func NewConfig(page, items, limit int, opts ...Option) (Config, error) {
	o := newOptions(opts...)
	c := Config{
		page:   page,
		items:  items,
		limit:  limit,
		links:  o.links,
		strict: o.strict,
		set:    true,
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Page 返回当前页码.
func (c Config) Page() int { return c.page }

// Items 返回总条数.
func (c Config) Items() int { return c.items }

// Limit 返回每页数量.
func (c Config) Limit() int { return c.limit }

// Links 返回当前页两侧展示的页码数量.
func (c Config) Links() int { return c.links }

// Strict 是否拒绝超过末页的页码.
func (c Config) Strict() bool { return c.strict }

// IsZero 是否为未设置的零值.
func (c Config) IsZero() bool { return !c.set }

// WithPage 返回修改页码后的新配置.
func (c Config) WithPage(page int) (Config, error) {
	c.page = page
	return c.checked()
}

// WithItems 返回修改总条数后的新配置.
func (c Config) WithItems(items int) (Config, error) {
	c.items = items
	return c.checked()
}

// WithLimit 返回修改每页数量后的新配置.
func (c Config) WithLimit(limit int) (Config, error) {
	c.limit = limit
	return c.checked()
}

// WithLinks 返回修改页码窗口大小后的新配置.
func (c Config) WithLinks(links int) (Config, error) {
	c.links = links
	return c.checked()
}

// Info 计算分页信息，等价于 Compute(c).
func (c Config) Info() (Info, error) {
	return Compute(c)
}

func (c Config) checked() (Config, error) {
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// validate 校验配置.
func (c Config) validate() error {
	if !c.set {
		return ErrUnsetField
	}
	if c.limit <= 0 {
		return ErrInvalidLimit
	}
	if c.items < 0 {
		return ErrInvalidItems
	}
	if c.links < 0 || c.links > MaxLinks {
		return ErrInvalidLinks
	}
	if c.page < FirstPage {
		return ErrPageOutOfRange
	}
	// 第 1 页始终合法，保证 0 条数据时仍可计算
	if c.strict && c.page > FirstPage && c.page > totalPages(c.items, c.limit) {
		return ErrPageOutOfRange
	}
	return nil
}

// Option 分页选项.
type Option func(*options)

type options struct {
	links  int
	strict bool
	logger logger.Logger

	countCache cache.Cache
	countKey   string
	countTTL   time.Duration
}

func newOptions(opts ...Option) *options {
	o := &options{links: DefaultLinks}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLinks 设置当前页左右两侧各展示的页码数量，取值范围 [0, MaxLinks].
func WithLinks(links int) Option {
	return func(o *options) {
		o.links = links
	}
}

// WithStrict 启用严格模式，页码超过末页时返回 ErrPageOutOfRange.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger 设置日志记录器，仅对 Paginator、Paginate 和 PaginateInfo 生效.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// WithCountCache 缓存总条数，仅对 Paginate 和 PaginateInfo 生效.
//
// 缓存命中时跳过 COUNT 查询. 缓存读写失败只记录警告，不影响结果.
// key 需要能区分查询条件，ttl <= 0 表示不过期.
func WithCountCache(c cache.Cache, key string, ttl time.Duration) Option {
	return func(o *options) {
		o.countCache = c
		o.countKey = key
		o.countTTL = ttl
	}
}
