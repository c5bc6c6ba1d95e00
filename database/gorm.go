package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/Tsukikage7/pagekit/logger"
)

// Open 打开数据库连接.
//
// 返回的 *gorm.DB 可直接传给 pagination.Paginate 或 pagination.PaginateInfo.
// 启用链路追踪时，查询需要携带 context 才能关联到上游 span.
func Open(config *Config, log logger.Logger) (*gorm.DB, error) {
	if config == nil {
		return nil, ErrNilConfig
	}
	if log == nil {
		return nil, ErrNilLogger
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.ApplyDefaults()

	dialector, err := getDialector(config.Driver, config.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGORMLoggerAdapter(log, config.SlowThreshold, config.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	if config.EnableTracing {
		if err = db.Use(tracing.NewPlugin()); err != nil {
			return nil, errors.Join(ErrRegisterTracingPlugin, err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.Pool.MaxOpen)
	sqlDB.SetMaxIdleConns(config.Pool.MaxIdle)
	sqlDB.SetConnMaxLifetime(config.Pool.MaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.Pool.MaxIdleTime)

	log.With(
		logger.String("driver", config.Driver),
		logger.Bool("tracing", config.EnableTracing),
	).Debug("[Database] 连接已建立")

	return db, nil
}

// Close 关闭 Open 返回的连接.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// getDialector 根据驱动类型返回对应的 Dialector.
func getDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres, DriverPostgreSQL:
		return postgres.Open(dsn), nil
	case DriverSQLite, DriverSQLite3:
		return sqlite.Open(dsn), nil
	default:
		return nil, ErrUnsupportedDriver
	}
}

// gormLoggerAdapter 将 GORM 日志转发到 logger.Logger.
type gormLoggerAdapter struct {
	logger        logger.Logger
	slowThreshold time.Duration
	logLevel      gormlogger.LogLevel
}

func newGORMLoggerAdapter(log logger.Logger, slowThreshold time.Duration, level string) gormlogger.Interface {
	logLevel := gormlogger.Warn
	switch level {
	case "silent":
		logLevel = gormlogger.Silent
	case "error":
		logLevel = gormlogger.Error
	case "info":
		logLevel = gormlogger.Info
	}

	return &gormLoggerAdapter{
		logger:        log,
		slowThreshold: slowThreshold,
		logLevel:      logLevel,
	}
}

// LogMode 设置日志模式.
func (l *gormLoggerAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

func (l *gormLoggerAdapter) Info(ctx context.Context, msg string, data ...any) {
	if l.logLevel >= gormlogger.Info {
		l.logger.WithContext(ctx).Infof(msg, data...)
	}
}

func (l *gormLoggerAdapter) Warn(ctx context.Context, msg string, data ...any) {
	if l.logLevel >= gormlogger.Warn {
		l.logger.WithContext(ctx).Warnf(msg, data...)
	}
}

func (l *gormLoggerAdapter) Error(ctx context.Context, msg string, data ...any) {
	if l.logLevel >= gormlogger.Error {
		l.logger.WithContext(ctx).Errorf(msg, data...)
	}
}

// Trace SQL 跟踪日志.
func (l *gormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	log := l.logger.WithContext(ctx).With(
		logger.Duration("elapsed", elapsed),
		logger.Int64("rows", rows),
		logger.String("sql", sql),
	)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.logLevel >= gormlogger.Error:
		log.With(logger.Err(err)).Error("[Database] SQL执行失败")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.logLevel >= gormlogger.Warn:
		log.With(logger.Duration("threshold", l.slowThreshold)).Warn("[Database] 慢查询")
	case l.logLevel >= gormlogger.Info:
		log.Debug("[Database] SQL执行成功")
	}
}
