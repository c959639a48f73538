package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

const DEFAULT_CONNECT_TIMEOUT = 5 * time.Second

var ErrNoConnectionString = errors.New("cannot find connection string for DB in the environment")

type State int

const (
	Unconnected State = iota
	Connecting
	Connected
	Failed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return "unconnected"
	}
}

// Dialer opens a client and makes sure the server answers. ctx already
// carries the connect timeout.
type Dialer func(ctx context.Context, connString string, timeout time.Duration) (*mongo.Client, error)

type ManagerConfig struct {
	ConnString     string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	Dial           Dialer
}

// Manager hands out one MongoDB client shared by every request. The client is
// created on first use; callers arriving while a connection attempt is in
// flight wait for that attempt instead of starting their own.
type Manager struct {
	cfg    ManagerConfig
	logger *slog.Logger
	group  singleflight.Group

	mu     sync.RWMutex
	state  State
	client *mongo.Client
}

func NewManager(cfg ManagerConfig, logger *slog.Logger) *Manager {
	if cfg.Dial == nil {
		cfg.Dial = Dial
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DEFAULT_CONNECT_TIMEOUT
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ConnString == "" {
		logger.Warn("no connection string configured, bookings routes will fail until one is provided")
	}

	return &Manager{cfg: cfg, logger: logger}
}

func Dial(ctx context.Context, connString string, timeout time.Duration) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(connString).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("db is not available: %w", err)
	}

	return client, nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Acquire returns the cached client or joins the connection attempt. A failed
// attempt is reported to everyone waiting on it and leaves nothing behind, so
// the next call dials again.
func (m *Manager) Acquire(ctx context.Context) (*mongo.Client, error) {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()
	if client != nil {
		return client, nil
	}

	if m.cfg.ConnString == "" {
		return nil, ErrNoConnectionString
	}

	result := m.group.DoChan("connect", m.connect)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	}
}

func (m *Manager) connect() (interface{}, error) {
	m.mu.Lock()
	if m.client != nil {
		client := m.client
		m.mu.Unlock()
		return client, nil
	}
	m.state = Connecting
	m.mu.Unlock()

	m.logger.Info("connecting to database", "database", m.cfg.Database, "timeout", m.cfg.ConnectTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ConnectTimeout)
	defer cancel()

	started := time.Now()
	client, err := m.cfg.Dial(ctx, m.cfg.ConnString, m.cfg.ConnectTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.state = Failed
		m.logger.Error("database connection failed", "error", err, "elapsed", time.Since(started))
		return nil, err
	}

	m.client = client
	m.state = Connected
	m.logger.Info("connected to database", "database", m.cfg.Database, "elapsed", time.Since(started))
	return client, nil
}

func (m *Manager) Collection(ctx context.Context) (*mongo.Collection, error) {
	client, err := m.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.cfg.Database).Collection(m.cfg.Collection), nil
}

func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Disconnect(ctx)
	m.client = nil
	m.state = Unconnected
	if err != nil {
		return fmt.Errorf("cannot disconnect from the db: %w", err)
	}
	return nil
}
