package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/ncobase/relaypage/data/balance"
	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/logging/logger"
)

// Manager manages database connections for read-write splitting
type Manager struct {
	master   *sql.DB
	slaves   []*sql.DB
	strategy balance.Balancer[*sql.DB]
	maxRetry int
	mutex    sync.RWMutex
}

// NewManager opens the master and every reachable slave with the dialect's
// database/sql driver.
func NewManager(ctx context.Context, conf *config.Database, dialect *Dialect) (*Manager, error) {
	if conf == nil || conf.Master == nil || conf.Master.Source == "" {
		return nil, errors.New("master database configuration is required")
	}

	strategy, err := balance.New[*sql.DB](conf.Strategy, conf.Weights())
	if err != nil {
		return nil, err
	}

	master, err := newDBClient(ctx, dialect.DriverName, conf.Master)
	if err != nil {
		return nil, err
	}

	var slaves []*sql.DB
	for i, slaveCfg := range conf.Slaves {
		slave, err := newDBClient(ctx, dialect.DriverName, slaveCfg)
		if err != nil {
			logger.Warnf(ctx, "%s: failed to connect to slave %d: %v", dialect.Name, i, err)
			continue
		}
		slaves = append(slaves, slave)
	}

	// if no slave database is available, use master
	if len(slaves) == 0 {
		slaves = append(slaves, master)
	}

	return &Manager{
		master:   master,
		slaves:   slaves,
		strategy: strategy,
		maxRetry: conf.MaxRetry,
	}, nil
}

// NewSingle wraps an open database as a manager without replicas.
func NewSingle(db *sql.DB) *Manager {
	return &Manager{
		master:   db,
		slaves:   []*sql.DB{db},
		strategy: &balance.RoundRobin[*sql.DB]{},
	}
}

func newDBClient(ctx context.Context, driverName string, conf *config.DBNode) (*sql.DB, error) {
	if conf == nil || conf.Source == "" {
		return nil, errors.New("connection source is empty")
	}

	db, err := sql.Open(driverName, conf.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if conf.MaxIdleConn > 0 {
		db.SetMaxIdleConns(conf.MaxIdleConn)
	}
	if conf.MaxOpenConn > 0 {
		db.SetMaxOpenConns(conf.MaxOpenConn)
	}
	if conf.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(conf.ConnMaxLifeTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Master returns the master database connection
func (m *Manager) Master() *sql.DB {
	return m.master
}

// Slave returns a read connection chosen by the load balancing strategy,
// falling back to the master when no replica answers.
func (m *Manager) Slave(ctx context.Context) *sql.DB {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for i := 0; i <= m.maxRetry; i++ {
		slave, err := m.strategy.Next(m.slaves)
		if err != nil {
			break
		}
		if slave == m.master || slave.PingContext(ctx) == nil {
			return slave
		}
	}
	return m.master
}

// Health pings the master and drops unhealthy replicas from rotation.
func (m *Manager) Health(ctx context.Context) error {
	if err := m.master.PingContext(ctx); err != nil {
		return fmt.Errorf("master database health check failed: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	var healthySlaves []*sql.DB
	for _, slave := range m.slaves {
		if err := slave.PingContext(ctx); err != nil {
			logger.Warnf(ctx, "slave database health check failed: %v", err)
			continue
		}
		healthySlaves = append(healthySlaves, slave)
	}

	m.slaves = healthySlaves

	if len(m.slaves) == 0 {
		m.slaves = append(m.slaves, m.master)
	}

	return nil
}

// Close closes all database connections
func (m *Manager) Close() error {
	var errs []error

	if err := m.master.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing master connection: %w", err))
	}

	for i, slave := range m.slaves {
		if slave != m.master { // Avoid double closing the master connection
			if err := slave.Close(); err != nil {
				errs = append(errs, fmt.Errorf("error closing slave %d connection: %w", i, err))
			}
		}
	}

	return errors.Join(errs...)
}
