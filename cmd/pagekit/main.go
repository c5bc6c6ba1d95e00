// Command pagekit 计算分页信息并以 JSON 输出.
//
// 用法:
//
//	pagekit -items 95 -page 5 -limit 10 -links 2
//	pagekit -f pagekit.yaml -items 95 -page 11 -strict
//	pagekit -driver sqlite -dsn app.db -table articles -page 3
//	pagekit -dsn app.db -table articles -redis localhost:6379 -cache-ttl 5m
//
// 指定 -table 时总条数取自数据库表的行数，此时不需要 -items.
// 同时指定 -redis 时总条数会缓存到 Redis.
// 未指定 -f 时依次在当前目录和用户配置目录下搜索 pagekit.{yaml,json,toml}，
// 找不到则使用默认设置. 结果写到标准输出，日志写到标准错误.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Tsukikage7/pagekit/cache"
	"github.com/Tsukikage7/pagekit/database"
	"github.com/Tsukikage7/pagekit/logger"
	"github.com/Tsukikage7/pagekit/pagination"
	"github.com/Tsukikage7/pagekit/transport/response"
)

// 退出码.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// cliFlags 命令行参数.
type cliFlags struct {
	file     string
	page     int
	items    int
	limit    int
	links    int
	strict   bool
	logLevel string

	// 数据库模式
	driver string
	dsn    string
	table  string
	trace  bool

	// 总条数缓存
	redis    string
	cacheTTL time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}

	log, err := logger.NewLoggerWithWriter(logger.NewCLIConfig(flags.logLevel), stderr)
	if err != nil {
		fmt.Fprintf(stderr, "初始化日志失败: %v\n", err)
		return exitUsage
	}
	defer log.Close()

	// 每次运行使用独立的 requestId 关联日志
	ctx := logger.ContextWithRequestID(context.Background(), uuid.NewString())
	runLog := log.WithContext(ctx)

	settings, err := loadSettings(flags.file)
	if err != nil {
		runLog.Errorf("加载分页设置失败: %v", err)
		return exitError
	}
	runLog.With(
		logger.Int("default_limit", settings.DefaultLimit),
		logger.Int("links", settings.Links),
		logger.Bool("strict", settings.Strict),
	).Debug("[pagekit] 分页设置")

	info, err := compute(ctx, flags, settings, log)
	if err != nil {
		runLog.With(logger.Err(err)).Error("[pagekit] 计算分页信息失败")
		_ = writeJSON(stdout, response.FailWithError[any](err))
		return exitError
	}

	if err := writeJSON(stdout, response.OK(info)); err != nil {
		runLog.Errorf("写入结果失败: %v", err)
		return exitError
	}
	return exitOK
}

func parseFlags(args []string, output io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("pagekit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.file, "f", "", "配置文件")
	fs.IntVar(&f.page, "page", pagination.DefaultPage, "当前页码")
	fs.IntVar(&f.items, "items", -1, "总条数（必填）")
	fs.IntVar(&f.limit, "limit", 0, "每页数量，0 表示使用配置中的 default_limit")
	fs.IntVar(&f.links, "links", -1, "当前页两侧展示的页码数量，-1 表示使用配置中的 links")
	fs.BoolVar(&f.strict, "strict", false, "页码超过末页时返回错误")
	fs.StringVar(&f.logLevel, "log-level", logger.LevelWarn, "日志级别")
	fs.StringVar(&f.driver, "driver", database.DriverSQLite, "数据库驱动：mysql, postgres, sqlite")
	fs.StringVar(&f.dsn, "dsn", "", "数据库连接字符串")
	fs.StringVar(&f.table, "table", "", "统计总条数的数据表，指定后忽略 -items")
	fs.BoolVar(&f.trace, "trace", false, "为数据库查询启用链路追踪")
	fs.StringVar(&f.redis, "redis", "", "缓存总条数的 Redis 地址，仅对 -table 生效")
	fs.DurationVar(&f.cacheTTL, "cache-ttl", time.Minute, "总条数缓存有效期")

	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.items < 0 && f.table == "" {
		fmt.Fprintln(output, "缺少 -items 或 -table 参数")
		fs.PrintDefaults()
		return f, flag.ErrHelp
	}
	return f, nil
}

// loadSettings 加载分页设置，file 为空时搜索默认位置.
func loadSettings(file string) (*pagination.Settings, error) {
	if file != "" {
		return pagination.LoadSettings(file)
	}

	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "pagekit"))
	}
	return pagination.FindSettings("pagekit", paths)
}

// compute 按命令行参数覆盖设置后计算分页信息.
func compute(ctx context.Context, f cliFlags, settings *pagination.Settings, log logger.Logger) (pagination.Info, error) {
	limit := f.limit
	if limit == 0 {
		limit = settings.DefaultLimit
	}

	opts := []pagination.Option{pagination.WithLogger(log)}
	if f.links >= 0 {
		opts = append(opts, pagination.WithLinks(f.links))
	}
	if f.strict {
		opts = append(opts, pagination.WithStrict())
	}

	if f.table != "" {
		return countTable(ctx, f, pagination.Request{Page: f.page, Limit: limit}, settings.Options(opts...), log)
	}

	p := pagination.NewPaginatorWith(f.page, f.items, limit, settings.Options(opts...)...)
	return p.Info()
}

// countTable 以数据表行数作为总条数计算分页信息.
func countTable(ctx context.Context, f cliFlags, req pagination.Request, opts []pagination.Option, log logger.Logger) (pagination.Info, error) {
	db, err := database.Open(&database.Config{
		Driver:        f.driver,
		DSN:           f.dsn,
		EnableTracing: f.trace,
	}, log)
	if err != nil {
		return pagination.Info{}, err
	}
	defer database.Close(db)

	if f.redis != "" {
		c, err := cache.NewRedisCache(cache.NewRedisConfig(f.redis), log)
		if err != nil {
			return pagination.Info{}, err
		}
		defer c.Close()
		key := fmt.Sprintf("pagekit:count:%s:%s", f.driver, f.table)
		opts = append(opts, pagination.WithCountCache(c, key, f.cacheTTL))
	}

	return pagination.PaginateInfo(ctx, db.Table(f.table), req, opts...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
