package pagination

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Tsukikage7/pagekit/cache"
	"github.com/Tsukikage7/pagekit/logger"
)

// article 测试用模型.
type article struct {
	ID     uint `gorm:"primaryKey"`
	Title  string
	Status int
}

// GORMTestSuite GORM 分页测试套件.
type GORMTestSuite struct {
	suite.Suite
	db     *gorm.DB
	ctx    context.Context
	logger logger.Logger
}

func TestGORMSuite(t *testing.T) {
	suite.Run(t, new(GORMTestSuite))
}

func (s *GORMTestSuite) SetupSuite() {
	log, err := logger.NewLogger(logger.DefaultConfig())
	s.Require().NoError(err)
	s.logger = log
}

func (s *GORMTestSuite) TearDownSuite() {
	if s.logger != nil {
		s.logger.Close()
	}
}

func (s *GORMTestSuite) SetupTest() {
	dsn := filepath.Join(s.T().TempDir(), "pagination.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&article{}))

	// 95 条数据，其中 ID 为奇数的 status 为 1
	articles := make([]article, 0, 95)
	for i := 1; i <= 95; i++ {
		articles = append(articles, article{Title: fmt.Sprintf("article-%d", i), Status: i % 2})
	}
	s.Require().NoError(db.CreateInBatches(articles, 50).Error)

	s.db = db
	s.ctx = context.Background()
}

func (s *GORMTestSuite) TearDownTest() {
	if s.db == nil {
		return
	}
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *GORMTestSuite) TestGORMScope() {
	var items []article
	err := s.db.Scopes(NewRequest(3, 10).GORMScope()).Order("id").Find(&items).Error
	s.Require().NoError(err)
	s.Len(items, 10)
	s.Equal(uint(21), items[0].ID)
}

func (s *GORMTestSuite) TestApply() {
	var items []article
	err := NewRequest(10, 10).Apply(s.db.Order("id")).Find(&items).Error
	s.Require().NoError(err)
	s.Len(items, 5)
	s.Equal(uint(91), items[0].ID)
}

func (s *GORMTestSuite) TestApply_HugePage() {
	var items []article
	err := NewRequest(math.MaxInt/2, 10).Apply(s.db.Order("id")).Find(&items).Error
	s.Require().NoError(err)
	s.Empty(items)

	err = Request{Page: math.MaxInt, Limit: 10}.Apply(s.db.Order("id")).Find(&items).Error
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *GORMTestSuite) TestPaginate() {
	result, err := Paginate[article](s.ctx, s.db.Order("id"), NewRequest(5, 10), WithLinks(2))
	s.Require().NoError(err)

	s.Len(result.Items, 10)
	s.Equal(uint(41), result.Items[0].ID)
	s.Equal(95, result.Info.ItemsTotal)
	s.Equal(10, result.Info.PagesTotal)
	s.Equal([]int{3, 4}, result.Info.PagesBack)
	s.Equal([]int{6, 7}, result.Info.PagesNext)
}

func (s *GORMTestSuite) TestPaginate_WithCondition() {
	result, err := Paginate[article](s.ctx, s.db.Where("status = ?", 1), NewRequest(1, 20))
	s.Require().NoError(err)

	s.Equal(48, result.Info.ItemsTotal)
	s.Equal(3, result.Info.PagesTotal)
	s.Len(result.Items, 20)
	for _, item := range result.Items {
		s.Equal(1, item.Status)
	}
}

func (s *GORMTestSuite) TestPaginate_BeyondLastPage() {
	result, err := Paginate[article](s.ctx, s.db, NewRequest(20, 10))
	s.Require().NoError(err)
	s.Empty(result.Items)
	s.NotNil(result.Items)
	s.Equal(10, result.Info.PageLast)

	_, err = Paginate[article](s.ctx, s.db, NewRequest(20, 10), WithStrict())
	s.ErrorIs(err, ErrPageOutOfRange)
}

func (s *GORMTestSuite) TestPaginate_InvalidLimit() {
	_, err := Paginate[article](s.ctx, s.db, Request{Page: 1, Limit: 0})
	s.ErrorIs(err, ErrInvalidLimit)
}

func (s *GORMTestSuite) TestPaginate_QueryError() {
	_, err := Paginate[article](s.ctx, s.db.Table("missing_table"), NewRequest(1, 10), WithLogger(s.logger))
	s.Error(err)
	s.Contains(err.Error(), "统计总数失败")
}

func (s *GORMTestSuite) TestPaginateInfo_Table() {
	info, err := PaginateInfo(s.ctx, s.db.Table("articles").Where("id > ?", 90), NewRequest(1, 2), WithLinks(1))
	s.Require().NoError(err)
	s.Equal(5, info.ItemsTotal)
	s.Equal(3, info.PagesTotal)
	s.Equal([]int{2}, info.PagesNext)
	s.Empty(info.PagesBack)
}

func (s *GORMTestSuite) TestPaginateInfo_MissingTable() {
	var buf bytes.Buffer
	log, err := logger.NewLoggerWithWriter(logger.DefaultConfig(), &buf)
	s.Require().NoError(err)
	defer log.Close()

	ctx := logger.ContextWithRequestID(s.ctx, "req-missing")
	_, err = PaginateInfo(ctx, s.db.Table("missing_table"), NewRequest(1, 10), WithLogger(log))
	s.Error(err)
	s.Contains(buf.String(), "统计总数失败")
	s.Contains(buf.String(), `"requestId":"req-missing"`)
}


// brokenCache 读写均失败的缓存.
type brokenCache struct{}

func (brokenCache) Set(context.Context, string, any, time.Duration) error {
	return errors.New("connection refused")
}
func (brokenCache) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}
func (brokenCache) Del(context.Context, ...string) error { return nil }
func (brokenCache) Ping(context.Context) error           { return errors.New("connection refused") }
func (brokenCache) Close() error                         { return nil }

func (s *GORMTestSuite) TestPaginateInfo_CountCache() {
	c, err := cache.NewMemoryCache(nil, s.logger)
	s.Require().NoError(err)
	defer c.Close()

	opt := WithCountCache(c, "count:articles", time.Minute)
	info, err := PaginateInfo(s.ctx, s.db.Table("articles"), NewRequest(1, 10), opt)
	s.Require().NoError(err)
	s.Equal(95, info.ItemsTotal)

	cached, err := c.Get(s.ctx, "count:articles")
	s.Require().NoError(err)
	s.Equal("95", cached)

	// 命中缓存时不再统计
	s.Require().NoError(s.db.Exec("DELETE FROM articles WHERE id > 50").Error)
	info, err = PaginateInfo(s.ctx, s.db.Table("articles"), NewRequest(1, 10), opt)
	s.Require().NoError(err)
	s.Equal(95, info.ItemsTotal)

	s.Require().NoError(c.Del(s.ctx, "count:articles"))
	result, err := Paginate[article](s.ctx, s.db, NewRequest(1, 10), opt)
	s.Require().NoError(err)
	s.Equal(50, result.Info.ItemsTotal)
	s.Equal(5, result.Info.PagesTotal)
}

func (s *GORMTestSuite) TestPaginateInfo_CountCacheInvalidValue() {
	c, err := cache.NewMemoryCache(nil, s.logger)
	s.Require().NoError(err)
	defer c.Close()
	s.Require().NoError(c.Set(s.ctx, "count:articles", "garbage", 0))

	info, err := PaginateInfo(s.ctx, s.db.Table("articles"), NewRequest(1, 10),
		WithCountCache(c, "count:articles", time.Minute))
	s.Require().NoError(err)
	s.Equal(95, info.ItemsTotal)

	cached, err := c.Get(s.ctx, "count:articles")
	s.Require().NoError(err)
	s.Equal("95", cached)
}

func (s *GORMTestSuite) TestPaginateInfo_CountCacheUnavailable() {
	var buf bytes.Buffer
	log, err := logger.NewLoggerWithWriter(logger.DefaultConfig(), &buf)
	s.Require().NoError(err)
	defer log.Close()

	info, err := PaginateInfo(s.ctx, s.db.Table("articles"), NewRequest(2, 10),
		WithCountCache(brokenCache{}, "count:articles", time.Minute), WithLogger(log))
	s.Require().NoError(err)
	s.Equal(95, info.ItemsTotal)
	s.Contains(buf.String(), "读取总条数缓存失败")
	s.Contains(buf.String(), "写入总条数缓存失败")
}

func TestItemsFromCount(t *testing.T) {
	items, err := itemsFromCount(95)
	if err != nil || items != 95 {
		t.Fatalf("itemsFromCount(95) = %d, %v", items, err)
	}

	if _, err := itemsFromCount(-1); !errors.Is(err, ErrInvalidItems) {
		t.Errorf("itemsFromCount(-1) error = %v, want %v", err, ErrInvalidItems)
	}

	if strconv.IntSize == 32 {
		if _, err := itemsFromCount(math.MaxInt32 + 1); !errors.Is(err, ErrInvalidItems) {
			t.Errorf("itemsFromCount(MaxInt32+1) error = %v, want %v", err, ErrInvalidItems)
		}
		return
	}
	items, err = itemsFromCount(math.MaxInt64)
	if err != nil || items != math.MaxInt {
		t.Errorf("itemsFromCount(MaxInt64) = %d, %v", items, err)
	}
}
