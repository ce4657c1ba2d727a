package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/folio/portfolio-cms/internal/config"
)

// DBTX is an interface that both *sqlx.DB and *sqlx.Tx satisfy.
// Repositories accept it so tests can hand them either.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}

var _ DBTX = (*sqlx.DB)(nil)
var _ DBTX = (*sqlx.Tx)(nil)

var (
	// ErrUnavailable is returned whenever no live pool can be handed out.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrNotConfigured means DATABASE_URL is empty. It is a supported
	// degraded mode, not a failure.
	ErrNotConfigured = fmt.Errorf("%w: no connection string configured", ErrUnavailable)
)

type State string

const (
	StateUnset      State = "unset"
	StateConnecting State = "connecting"
	StateReady      State = "ready"
	StateFailed     State = "failed"
	StateDisabled   State = "disabled"
)

// ConnectFunc establishes a verified pool. Connect is the production value.
type ConnectFunc func(ctx context.Context, databaseURL string) (*sqlx.DB, error)

type attempt struct {
	done chan struct{}
	db   *sqlx.DB
	err  error
}

// Manager owns the single process-wide pool. It connects lazily, lets
// every concurrent caller share one in-flight attempt and forgets a
// failed attempt so the next call starts over.
type Manager struct {
	databaseURL    string
	connect        ConnectFunc
	connectTimeout time.Duration
	opTimeout      time.Duration

	mu       sync.Mutex
	state    State
	db       *sqlx.DB
	inflight *attempt
}

type Option func(*Manager)

func WithConnectFunc(fn ConnectFunc) Option {
	return func(m *Manager) { m.connect = fn }
}

func WithConnectTimeout(d time.Duration) Option {
	return func(m *Manager) { m.connectTimeout = d }
}

func WithOperationTimeout(d time.Duration) Option {
	return func(m *Manager) { m.opTimeout = d }
}

func NewManager(databaseURL string, opts ...Option) *Manager {
	m := &Manager{
		databaseURL:    databaseURL,
		connect:        Connect,
		connectTimeout: config.DBConnectTimeout,
		opTimeout:      config.DBOperationTimeout,
		state:          StateUnset,
	}
	if databaseURL == "" {
		m.state = StateDisabled
	}
	for _, opt := range opts {
		opt(m)
	}
	setStateGauge(m.state)
	return m
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Get returns the live pool, joining an in-flight attempt or starting one.
// The attempt itself runs detached from ctx so a caller that gives up does
// not abort it for everyone else.
func (m *Manager) Get(ctx context.Context) (*sqlx.DB, error) {
	if m.databaseURL == "" {
		return nil, ErrNotConfigured
	}

	m.mu.Lock()
	if m.db != nil {
		db := m.db
		m.mu.Unlock()
		return db, nil
	}
	a := m.inflight
	if a == nil {
		a = &attempt{done: make(chan struct{})}
		m.inflight = a
		m.setState(StateConnecting)
		go m.establish(a)
	}
	m.mu.Unlock()

	select {
	case <-a.done:
		if a.err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, a.err)
		}
		return a.db, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	}
}

func (m *Manager) establish(a *attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), m.connectTimeout)
	defer cancel()

	db, err := m.connect(ctx, m.databaseURL)

	m.mu.Lock()
	m.inflight = nil
	if err != nil {
		m.setState(StateFailed)
		connectAttempts.WithLabelValues("failure").Inc()
		logConnectError(err)
	} else {
		m.db = db
		m.setState(StateReady)
		connectAttempts.WithLabelValues("success").Inc()
		log.Info().Msg("database connected")
	}
	a.db, a.err = db, err
	m.mu.Unlock()

	close(a.done)
}

// WithStorage runs fn against the pool under the per-operation timeout.
// A connection-level failure inside fn drops the pool so the next call
// reconnects from scratch.
func (m *Manager) WithStorage(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error {
	db, err := m.Get(ctx)
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	err = fn(opCtx, db)
	if err != nil && isConnectionError(err) {
		m.reset(db, err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func (m *Manager) reset(db *sqlx.DB, cause error) {
	m.mu.Lock()
	if m.db != db {
		m.mu.Unlock()
		return
	}
	m.db = nil
	m.setState(StateUnset)
	m.mu.Unlock()

	logConnectError(cause)
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close dropped database pool")
	}
}

func (m *Manager) Close() error {
	m.mu.Lock()
	db := m.db
	m.db = nil
	if m.state != StateDisabled {
		m.setState(StateUnset)
	}
	m.mu.Unlock()

	if db == nil {
		return nil
	}
	return db.Close()
}

// setState must be called with mu held.
func (m *Manager) setState(s State) {
	m.state = s
	setStateGauge(s)
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	// A per-operation deadline or a caller hanging up says nothing about the pool.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "57P01", "57P02", "57P03":
			return true
		}
		return pqErr.Code.Class() == "08"
	}
	return false
}

func logConnectError(err error) {
	code := "NO_CODE"
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code = string(pqErr.Code)
	}
	log.Error().
		Err(err).
		Str("kind", errorKind(err)).
		Str("code", code).
		Msg("database connection error")
}

// errorKind names the innermost error type, which says more than the
// *fmt.wrapError on top.
func errorKind(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}
