// Package database owns the PostgreSQL connection pool.
//
// A supervisor goroutine keeps the pool alive: it connects with a fixed
// delay between attempts, pings the database periodically, and when the
// connection is lost it discards the pool and connects again. Queries issued
// while no pool is available fail fast with ErrNotConnected.
//
// Every statement runs under the configured query timeout in addition to the
// caller's context.
package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deppfellow/petcare-api/internal/config"
	loggerConfig "github.com/deppfellow/petcare-api/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// ErrNotConnected is returned by query methods while the supervisor has no
// live pool.
var ErrNotConnected = errors.New("database: not connected")

// State is the supervisor's view of the connection.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateLost
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Database wraps the pgx pool with reconnect supervision.
type Database struct {
	log    *zerolog.Logger
	cfg    config.DatabaseConfig
	health config.HealthChecksConfig

	pool  atomic.Pointer[pgxpool.Pool]
	state atomic.Int32
	// lost receives the pool a query saw drop its connection.
	lost chan *pgxpool.Pool

	open func(ctx context.Context) (*pgxpool.Pool, error)
	ping func(ctx context.Context, pool *pgxpool.Pool) error

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// DSN builds the connection string for cfg.
func DSN(cfg config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	// URL-encode the password so special characters don't break the URL.
	encodedPassword := url.QueryEscape(cfg.Password)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		encodedPassword,
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// New prepares the pool configuration. It does not connect; call Start.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	var tracers []any
	if threshold := cfg.Observability.Logging.SlowQueryThreshold; threshold > 0 {
		tracers = append(tracers, &slowQueryTracer{threshold: threshold, log: logger})
	}
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}
	if len(tracers) > 0 {
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	db := newDatabase(cfg, logger)
	db.open = func(ctx context.Context) (*pgxpool.Pool, error) {
		return pgxpool.NewWithConfig(ctx, pgxPoolConfig.Copy())
	}
	db.ping = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pool.Ping(ctx)
	}

	return db, nil
}

func newDatabase(cfg *config.Config, logger *zerolog.Logger) *Database {
	return &Database{
		log:    logger,
		cfg:    cfg.Database,
		health: cfg.Observability.HealthChecks,
		lost:   make(chan *pgxpool.Pool, 1),
	}
}

// Start launches the supervisor. It returns immediately; the first
// connection is made in the background. The supervisor runs until ctx ends
// or Close is called, so callers that drain requests on shutdown should pass
// a context that outlives the drain.
func (db *Database) Start(ctx context.Context) {
	db.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		db.cancel = cancel
		db.done = make(chan struct{})
		go db.supervise(ctx)
	})
}

// State reports the current connection state.
func (db *Database) State() State {
	return State(db.state.Load())
}

func (db *Database) setState(s State) {
	prev := State(db.state.Swap(int32(s)))
	if prev != s {
		db.log.Info().
			Str("from", prev.String()).
			Str("to", s.String()).
			Msg("database connection state changed")
	}
}

// WaitConnected blocks until the pool is connected or ctx is done.
func (db *Database) WaitConnected(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if db.State() == StateConnected {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (db *Database) supervise(ctx context.Context) {
	defer close(db.done)
	defer db.setState(StateDisconnected)
	defer db.dropPool()

	for {
		if !db.connect(ctx) {
			return
		}
		if !db.monitor(ctx) {
			return
		}
		db.setState(StateLost)
		db.dropPool()
	}
}

// connect retries until a pool answers a ping. It returns false when ctx
// ends first.
func (db *Database) connect(ctx context.Context) bool {
	db.setState(StateConnecting)

	for attempt := 1; ; attempt++ {
		pool, err := db.open(ctx)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, db.pingTimeout())
			err = db.ping(pingCtx, pool)
			cancel()
			if err != nil {
				pool.Close()
			}
		}

		if err == nil {
			db.pool.Store(pool)
			db.setState(StateConnected)
			db.log.Info().Int("attempt", attempt).Msg("connected to the database")
			return true
		}

		db.log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", db.cfg.ReconnectDelay).
			Msg("database connection attempt failed")

		select {
		case <-ctx.Done():
			return false
		case <-time.After(db.cfg.ReconnectDelay):
		}
	}
}

// monitor watches a connected pool. It returns true when the connection is
// lost and false when ctx ends.
func (db *Database) monitor(ctx context.Context) bool {
	var tick <-chan time.Time
	if db.health.Enabled && db.health.Interval > 0 {
		ticker := time.NewTicker(db.health.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return false
		case pool := <-db.lost:
			if pool != db.pool.Load() {
				continue
			}
			db.log.Warn().Msg("query reported lost database connection")
			return true
		case <-tick:
			pool := db.pool.Load()
			if pool == nil {
				return true
			}
			pingCtx, cancel := context.WithTimeout(ctx, db.pingTimeout())
			err := db.ping(pingCtx, pool)
			cancel()
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				db.log.Error().Err(err).Msg("database health ping failed")
				return true
			}
		}
	}
}

func (db *Database) pingTimeout() time.Duration {
	if db.health.Timeout > 0 {
		return db.health.Timeout
	}
	return 5 * time.Second
}

func (db *Database) dropPool() {
	if pool := db.pool.Swap(nil); pool != nil {
		pool.Close()
	}
}

// reportLost wakes the supervisor when pool is still the live one. Reports
// about a pool that has already been replaced are dropped. It never blocks.
func (db *Database) reportLost(pool *pgxpool.Pool) {
	if pool == nil || pool != db.pool.Load() {
		return
	}
	select {
	case db.lost <- pool:
	default:
	}
}

// observe inspects an error from a statement run on pool and reports
// connection loss.
func (db *Database) observe(pool *pgxpool.Pool, err error) error {
	if IsConnectionLoss(err) {
		db.reportLost(pool)
	}
	return err
}

func (db *Database) current() (*pgxpool.Pool, error) {
	pool := db.pool.Load()
	if pool == nil {
		return nil, ErrNotConnected
	}
	return pool, nil
}

func (db *Database) withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.cfg.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.cfg.QueryTimeout)
}

// Exec runs a statement that returns no rows.
func (db *Database) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool, err := db.current()
	if err != nil {
		return pgconn.CommandTag{}, err
	}

	ctx, cancel := db.withQueryTimeout(ctx)
	defer cancel()

	tag, err := pool.Exec(ctx, sql, args...)
	return tag, db.observe(pool, err)
}

// QueryRow runs a statement returning at most one row. The query timeout
// covers the call to Scan.
func (db *Database) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, err := db.current()
	if err != nil {
		return errRow{err: err}
	}

	ctx, cancel := db.withQueryTimeout(ctx)
	return &row{
		row:    pool.QueryRow(ctx, sql, args...),
		cancel: cancel,
		db:     db,
		pool:   pool,
	}
}

// Querier is the statement interface shared by the pool and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BeginFunc runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
//
// The query timeout applies to each statement run through the Querier, not
// to the transaction as a whole; the transaction lives as long as ctx.
func (db *Database) BeginFunc(ctx context.Context, fn func(Querier) error) error {
	pool, err := db.current()
	if err != nil {
		return err
	}

	return db.observe(pool, pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return fn(&txQuerier{tx: tx, db: db, pool: pool})
	}))
}

type txQuerier struct {
	tx   pgx.Tx
	db   *Database
	pool *pgxpool.Pool
}

func (q *txQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ctx, cancel := q.db.withQueryTimeout(ctx)
	defer cancel()
	return q.tx.Exec(ctx, sql, args...)
}

func (q *txQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ctx, cancel := q.db.withQueryTimeout(ctx)
	return &row{row: q.tx.QueryRow(ctx, sql, args...), cancel: cancel, db: q.db, pool: q.pool}
}

// Ping checks the current pool.
func (db *Database) Ping(ctx context.Context) error {
	pool, err := db.current()
	if err != nil {
		return err
	}
	return db.observe(pool, db.ping(ctx, pool))
}

// Stat returns pool statistics, or nil while disconnected.
func (db *Database) Stat() *pgxpool.Stat {
	pool := db.pool.Load()
	if pool == nil {
		return nil
	}
	return pool.Stat()
}

// Close stops the supervisor and closes the pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	if db.cancel != nil {
		db.cancel()
		<-db.done
	}
	db.dropPool()
	db.setState(StateDisconnected)
	return nil
}

type row struct {
	row    pgx.Row
	cancel context.CancelFunc
	db     *Database
	pool   *pgxpool.Pool
}

func (r *row) Scan(dest ...any) error {
	defer r.cancel()
	err := r.row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return r.db.observe(r.pool, err)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
