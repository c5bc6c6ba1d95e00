package pagination

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gorm.io/gorm"

	"github.com/Tsukikage7/pagekit/cache"
	"github.com/Tsukikage7/pagekit/logger"
)

// GORMScope 返回 GORM scope 函数，按页码和每页数量限制查询范围.
//
// 使用示例:
//
//	db.Scopes(req.GORMScope()).Find(&users)
func (r Request) GORMScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return r.Apply(db)
	}
}

// Apply 应用分页到 GORM 查询.
//
// 使用示例:
//
//	pagination.NewRequest(2, 20).Apply(db).Find(&users)
func (r Request) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(r.Offset()).Limit(r.Limit)
}

// PaginateInfo 统计总条数并计算分页信息，不查询数据.
//
// db 需要通过 Model 或 Table 指定统计对象，可携带 Where 等条件.
//
// 使用示例:
//
//	info, err := pagination.PaginateInfo(ctx, db.Table("articles"), req)
func PaginateInfo(ctx context.Context, db *gorm.DB, req Request, opts ...Option) (Info, error) {
	o := newOptions(opts...)

	total, err := countTotal(ctx, db, o)
	if err != nil {
		return Info{}, err
	}

	items, err := itemsFromCount(total)
	if err != nil {
		return Info{}, err
	}

	cfg, err := req.Config(items, opts...)
	if err != nil {
		return Info{}, err
	}
	return Compute(cfg)
}

// Paginate 统计总条数并查询当前页数据.
//
// db 可携带 Where 等条件，统计与查询使用相同条件.
// 页码超过末页时不执行查询，严格模式下直接返回 ErrPageOutOfRange.
//
// 使用示例:
//
//	result, err := pagination.Paginate[User](ctx, db.Where("status = ?", 1), req)
func Paginate[T any](ctx context.Context, db *gorm.DB, req Request, opts ...Option) (Result[T], error) {
	o := newOptions(opts...)
	query := db.WithContext(ctx).Model(new(T))

	info, err := PaginateInfo(ctx, query, req, opts...)
	if err != nil {
		return Result[T]{}, err
	}

	items := []T{}
	if req.Page <= info.PageLast {
		if err := query.Session(&gorm.Session{}).Scopes(req.GORMScope()).Find(&items).Error; err != nil {
			logError(ctx, o.logger, "[Pagination] 查询分页数据失败", err)
			return Result[T]{}, fmt.Errorf("pagination: 查询分页数据失败: %w", err)
		}
	}

	return Result[T]{
		Items: items,
		Info:  info,
	}, nil
}

// countTotal 统计总条数，配置了缓存时优先读取缓存.
func countTotal(ctx context.Context, db *gorm.DB, o *options) (int64, error) {
	if o.countCache != nil {
		value, err := o.countCache.Get(ctx, o.countKey)
		switch {
		case err == nil:
			if total, perr := strconv.ParseInt(value, 10, 64); perr == nil && total >= 0 {
				return total, nil
			}
			logWarn(ctx, o.logger, "[Pagination] 缓存的总条数无效", o.countKey, nil)
		case !errors.Is(err, cache.ErrNotFound):
			logWarn(ctx, o.logger, "[Pagination] 读取总条数缓存失败", o.countKey, err)
		}
	}

	var total int64
	if err := db.WithContext(ctx).Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logError(ctx, o.logger, "[Pagination] 统计总数失败", err)
		return 0, fmt.Errorf("pagination: 统计总数失败: %w", err)
	}

	if o.countCache != nil {
		if err := o.countCache.Set(ctx, o.countKey, total, o.countTTL); err != nil {
			logWarn(ctx, o.logger, "[Pagination] 写入总条数缓存失败", o.countKey, err)
		}
	}
	return total, nil
}

// itemsFromCount 将 COUNT 结果转换为总条数，超出 int 范围时返回 ErrInvalidItems.
func itemsFromCount(total int64) (int, error) {
	if total < 0 || total > math.MaxInt {
		return 0, fmt.Errorf("%w: %d 超出 int 范围", ErrInvalidItems, total)
	}
	return int(total), nil
}

func logWarn(ctx context.Context, log logger.Logger, msg, key string, err error) {
	if log == nil {
		return
	}
	fields := []logger.Field{logger.String("key", key)}
	if err != nil {
		fields = append(fields, logger.Err(err))
	}
	log.WithContext(ctx).With(fields...).Warn(msg)
}

func logError(ctx context.Context, log logger.Logger, msg string, err error) {
	if log == nil {
		return
	}
	log.WithContext(ctx).With(logger.Err(err)).Error(msg)
}
