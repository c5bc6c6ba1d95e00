package pagination

// Info 分页信息，供展示层渲染页码导航.
//
// JSON 格式：
//
//	{
//	    "pageCurrent": 5,
//	    "pageNext": 6,
//	    "pageBack": 4,
//	    "pageFirst": 1,
//	    "pageLast": 10,
//	    "pagesNext": [6, 7],
//	    "pagesBack": [3, 4],
//	    "pagesTotal": 10,
//	    "pagesLimit": 10,
//	    "itemsTotal": 95
//	}
type Info struct {
	PageCurrent int   `json:"pageCurrent"`         // 当前页码
	PageNext    *int  `json:"pageNext,omitempty"`  // 下一页，不存在时为 nil
	PageBack    *int  `json:"pageBack,omitempty"`  // 上一页，不存在时为 nil
	PageFirst   int   `json:"pageFirst"`           // 首页，恒为 1
	PageLast    int   `json:"pageLast"`            // 末页，等于总页数
	PagesNext   []int `json:"pagesNext"`           // 当前页之后的页码，升序
	PagesBack   []int `json:"pagesBack"`           // 当前页之前的页码，升序
	PagesTotal  int   `json:"pagesTotal"`          // 总页数
	PagesLimit  int   `json:"pagesLimit"`          // 每页数量
	ItemsTotal  int   `json:"itemsTotal"`          // 总条数
}

// Compute 根据配置计算分页信息.
//
// 总页数为 ceil(items / limit)；PagesNext 与 PagesBack 各最多包含 links 个页码，
// 且只包含 [1, PageLast] 范围内的页码，不包含当前页.
// 计算不修改配置，相同配置多次调用结果相同.
func Compute(cfg Config) (Info, error) {
	if err := cfg.validate(); err != nil {
		return Info{}, err
	}

	pages := totalPages(cfg.items, cfg.limit)

	info := Info{
		PageCurrent: cfg.page,
		PageFirst:   FirstPage,
		PageLast:    pages,
		PagesNext:   pagesNext(cfg.page, pages, cfg.links),
		PagesBack:   pagesBack(cfg.page, pages, cfg.links),
		PagesTotal:  pages,
		PagesLimit:  cfg.limit,
		ItemsTotal:  cfg.items,
	}

	// page < pages 等价于 page+1 <= pages
	if cfg.page < pages {
		next := cfg.page + 1
		info.PageNext = &next
	}
	if cfg.page > FirstPage {
		back := cfg.page - 1
		info.PageBack = &back
	}

	return info, nil
}

// totalPages 计算总页数，limit 必须大于 0.
func totalPages(items, limit int) int {
	pages := items / limit
	if items%limit > 0 {
		pages++
	}
	return pages
}

// pagesNext 返回 (page, min(page+links, last)] 内的页码.
func pagesNext(page, last, links int) []int {
	count := min(links, last-page)
	if count <= 0 {
		return []int{}
	}
	next := make([]int, count)
	for x := range next {
		next[x] = page + x + 1
	}
	return next
}

// pagesBack 返回 [max(page-links, 1), page) 内且不超过 last 的页码.
func pagesBack(page, last, links int) []int {
	lo := FirstPage
	if page-FirstPage > links {
		lo = page - links
	}
	hi := min(page-1, last)
	if hi < lo {
		return []int{}
	}
	back := make([]int, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		back = append(back, n)
	}
	return back
}

// HasNext 是否有下一页.
func (i Info) HasNext() bool {
	return i.PageNext != nil
}

// HasBack 是否有上一页.
func (i Info) HasBack() bool {
	return i.PageBack != nil
}

// Offset 返回当前页第一条数据的偏移量（从 0 开始）.
func (i Info) Offset() int {
	return offset(i.PageCurrent, i.PagesLimit)
}

// Pages 返回完整的页码窗口：PagesBack、当前页、PagesNext.
// 当前页超出 [1, PageLast] 时不包含当前页.
func (i Info) Pages() []int {
	pages := make([]int, 0, len(i.PagesBack)+len(i.PagesNext)+1)
	pages = append(pages, i.PagesBack...)
	if i.PageCurrent >= FirstPage && i.PageCurrent <= i.PageLast {
		pages = append(pages, i.PageCurrent)
	}
	return append(pages, i.PagesNext...)
}
