package pagination

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Tsukikage7/pagekit/logger"
)

// PaginatorTestSuite 分页参数容器测试套件.
type PaginatorTestSuite struct {
	suite.Suite
	logger logger.Logger
}

func TestPaginatorSuite(t *testing.T) {
	suite.Run(t, new(PaginatorTestSuite))
}

func (s *PaginatorTestSuite) SetupSuite() {
	log, err := logger.NewLogger(&logger.Config{Level: logger.LevelDebug})
	s.Require().NoError(err)
	s.logger = log
}

func (s *PaginatorTestSuite) TearDownSuite() {
	if s.logger != nil {
		s.logger.Close()
	}
}

func (s *PaginatorTestSuite) TestDefaults() {
	p := NewPaginator()

	_, ok := p.Page()
	s.False(ok)
	_, ok = p.Items()
	s.False(ok)
	_, ok = p.Limit()
	s.False(ok)
	s.Equal(DefaultLinks, p.Links())
}

func (s *PaginatorTestSuite) TestAccessors() {
	p := NewPaginator(WithLogger(s.logger))
	p.SetPage(3)
	p.SetItems(120)
	p.SetLimit(15)
	p.SetLinks(4)

	page, ok := p.Page()
	s.True(ok)
	s.Equal(3, page)

	items, ok := p.Items()
	s.True(ok)
	s.Equal(120, items)

	limit, ok := p.Limit()
	s.True(ok)
	s.Equal(15, limit)

	s.Equal(4, p.Links())
}

func (s *PaginatorTestSuite) TestInfo_UnsetFields() {
	tests := []struct {
		name  string
		setup func(p *Paginator)
		field string
	}{
		{"页码未设置", func(p *Paginator) { p.SetItems(10); p.SetLimit(5) }, "page"},
		{"总条数未设置", func(p *Paginator) { p.SetPage(1); p.SetLimit(5) }, "items"},
		{"每页数量未设置", func(p *Paginator) { p.SetPage(1); p.SetItems(10) }, "limit"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			p := NewPaginator(WithLogger(s.logger))
			tt.setup(p)

			_, err := p.Info()
			s.ErrorIs(err, ErrUnsetField)
			s.Contains(err.Error(), tt.field)
		})
	}
}

func (s *PaginatorTestSuite) TestInfo_LinksTooLarge() {
	p := NewPaginatorWith(1, 1_000_000, 1, WithLogger(s.logger))
	p.SetLinks(MaxLinks + 1)

	_, err := p.Info()
	s.ErrorIs(err, ErrInvalidLinks)
}

func (s *PaginatorTestSuite) TestInfo_InvalidLimit() {
	p := NewPaginatorWith(1, 95, 0, WithLogger(s.logger))

	_, err := p.Info()
	s.ErrorIs(err, ErrInvalidLimit)

	// 失败的计算不修改字段
	limit, ok := p.Limit()
	s.True(ok)
	s.Equal(0, limit)
}

func (s *PaginatorTestSuite) TestInfo() {
	p := NewPaginatorWith(5, 95, 10, WithLinks(2))

	info, err := p.Info()
	s.Require().NoError(err)
	s.Equal([]int{3, 4}, info.PagesBack)
	s.Equal([]int{6, 7}, info.PagesNext)
	s.Equal(10, info.PageLast)

	again, err := p.Info()
	s.Require().NoError(err)
	s.Equal(info, again)

	p.SetPage(10)
	info, err = p.Info()
	s.Require().NoError(err)
	s.False(info.HasNext())
	s.Equal([]int{8, 9}, info.PagesBack)
}

func (s *PaginatorTestSuite) TestInfo_OutOfRange() {
	p := NewPaginatorWith(20, 95, 10, WithLogger(s.logger))
	info, err := p.Info()
	s.Require().NoError(err)
	s.Empty(info.PagesNext)
	s.Equal(10, info.PageLast)

	strict := NewPaginatorWith(20, 95, 10, WithStrict(), WithLogger(s.logger))
	_, err = strict.Info()
	s.ErrorIs(err, ErrPageOutOfRange)
}

func (s *PaginatorTestSuite) TestConfigSnapshot() {
	p := NewPaginatorWith(2, 50, 10)
	cfg, err := p.Config()
	s.Require().NoError(err)

	p.SetPage(4)
	s.Equal(2, cfg.Page())
}

func (s *PaginatorTestSuite) TestConcurrentAccess() {
	p := NewPaginatorWith(1, 1000, 10)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		go func(page int) {
			defer wg.Done()
			p.SetPage(page)
		}(i)
		go func() {
			defer wg.Done()
			info, err := p.Info()
			s.NoError(err)
			s.Equal(100, info.PagesTotal)
		}()
	}
	wg.Wait()
}
