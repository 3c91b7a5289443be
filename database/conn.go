package database

import (
	"context"
	"errors"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/omar-mohamud/raagsanplatform/config"
	"github.com/omar-mohamud/raagsanplatform/errs"
)

// ConnOptions holds everything needed to reach the primary store.
type ConnOptions struct {
	DSN            string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
	MaxOpenConns   int
	MaxIdleTime    time.Duration
}

// ConnOptionsFromConfig reads connection settings from the environment map.
// An empty DATABASE_URL is not an error here: it only dooms primary-store
// code paths, the fallback path must still work without it.
func ConnOptionsFromConfig(c map[string]string) ConnOptions {
	return ConnOptions{
		DSN:            config.GetString(c, "DATABASE_URL", ""),
		ConnectTimeout: config.GetSeconds(c, "DB_CONNECT_TIMEOUT_SECONDS", 30*time.Second),
		PingTimeout:    config.GetSeconds(c, "DB_PING_TIMEOUT_SECONDS", 2*time.Second),
		MaxOpenConns:   config.GetInt(c, "DB_MAX_OPEN_CONNS", 5),
		MaxIdleTime:    config.GetSeconds(c, "DB_MAX_IDLE_SECONDS", 30*time.Second),
	}
}

// ConnManager owns the single lazily-created gorm handle shared by every
// repository. The handle is created on the first successful Connect, verified
// with a cheap ping on every later call, and dropped whenever the ping or an
// operation reports a fatal connection error so the next call dials fresh.
type ConnManager struct {
	opts   ConnOptions
	logger zerolog.Logger

	mu   sync.Mutex
	conn *gorm.DB

	// flight collapses concurrent dials into one attempt. singleflight
	// forgets the key as soon as the shared call returns, so a failed dial
	// never poisons the next one.
	flight singleflight.Group

	// dial is swappable in tests
	dial func(ConnOptions) (*gorm.DB, error)
}

func NewConnManager(opts ConnOptions) *ConnManager {
	return &ConnManager{
		opts:   opts,
		logger: log.With().Str("component", "connManager").Logger(),
		dial:   dialPostgres,
	}
}

// Connect returns the live shared handle. A cached healthy handle is returned
// immediately with no new handshake; otherwise exactly one dial runs per wave
// of concurrent callers.
func (m *ConnManager) Connect(ctx context.Context) (*gorm.DB, error) {
	if m.opts.DSN == "" {
		return nil, errs.NewConnectionError("DATABASE_URL is not configured", nil)
	}

	if conn := m.cached(); conn != nil {
		if m.healthy(ctx, conn) {
			return conn, nil
		}
		m.logger.Warn().Msg("cached connection failed health check, redialing")
		m.drop(conn)
	}

	v, err, shared := m.flight.Do("connect", func() (any, error) {
		conn, err := m.dial(m.opts)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.conn = conn
		m.mu.Unlock()
		return conn, nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			m.logger.Error().Err(err).Dur("timeout", m.opts.ConnectTimeout).Msg("connection attempt timed out")
			return nil, errs.NewConnectionTimeoutError(m.opts.ConnectTimeout, err)
		}
		m.logger.Error().Err(err).Msg("connection attempt failed")
		return nil, errs.NewConnectionError("primary store rejected the connection", err)
	}
	if shared {
		m.logger.Debug().Msg("joined in-flight connection attempt")
	}
	return v.(*gorm.DB), nil
}

// Healthy reports whether the primary store currently answers a ping. It
// never dials; an unconnected manager is simply not healthy.
func (m *ConnManager) Healthy(ctx context.Context) bool {
	conn := m.cached()
	return conn != nil && m.healthy(ctx, conn)
}

// Observe inspects an operation error and drops the cached handle when the
// error looks fatal to the connection itself, so the next call redials
// instead of reusing a dead pool. The error is returned unchanged.
func (m *ConnManager) Observe(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || isConnFatal(err) {
		m.logger.Warn().Err(err).Msg("dropping cached connection after fatal error")
		m.Reset()
	}
	return err
}

func isConnFatal(err error) bool {
	s := err.Error()
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "broken pipe") ||
		strings.Contains(s, "bad connection") ||
		strings.Contains(s, "server closed")
}

// Reset discards the cached handle so the next Connect dials fresh. Called
// after operations report a fatal connection error.
func (m *ConnManager) Reset() {
	m.mu.Lock()
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()
	closePool(conn)
}

func (m *ConnManager) cached() *gorm.DB {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

// drop invalidates conn only if it is still the cached handle, so a stale
// caller cannot discard a newer connection.
func (m *ConnManager) drop(conn *gorm.DB) {
	m.mu.Lock()
	if m.conn == conn {
		m.conn = nil
	}
	m.mu.Unlock()
	closePool(conn)
}

func (m *ConnManager) healthy(ctx context.Context, conn *gorm.DB) bool {
	sqlDB, err := conn.DB()
	if err != nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, m.opts.PingTimeout)
	defer cancel()
	return sqlDB.PingContext(pingCtx) == nil
}

func closePool(conn *gorm.DB) {
	if conn == nil {
		return
	}
	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.Close()
	}
}

func dialPostgres(opts ConnOptions) (*gorm.DB, error) {
	newLogger := gormlogger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(opts.MaxIdleTime)

	// gorm opens lazily; force the handshake here so the timeout applies to
	// the dial, not to some later query.
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}
