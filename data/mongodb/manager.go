package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ncobase/relaypage/data/balance"
	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/logging/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Manager holds the master client and the read replicas. Paginated reads go
// to a replica chosen by the configured strategy.
type Manager struct {
	master   *mongo.Client
	slaves   []*mongo.Client
	strategy balance.Balancer[*mongo.Client]
	database string
	maxRetry int
	mutex    sync.RWMutex
}

// NewManager connects to the master and every reachable slave.
func NewManager(ctx context.Context, conf *config.MongoDB) (*Manager, error) {
	if conf == nil || conf.Master == nil {
		return nil, errors.New("master mongodb configuration is required")
	}

	database := conf.Database
	if database == "" {
		cs, err := connstring.ParseAndValidate(conf.Master.URI)
		if err != nil {
			return nil, fmt.Errorf("invalid master uri: %w", err)
		}
		database = cs.Database
	}
	if database == "" {
		return nil, errors.New("mongodb database name is required")
	}

	strategy, err := balance.New[*mongo.Client](conf.Strategy, conf.Weights())
	if err != nil {
		return nil, err
	}

	master, err := newMongoClient(ctx, conf.Master)
	if err != nil {
		return nil, err
	}

	var slaves []*mongo.Client
	for i, slaveCfg := range conf.Slaves {
		slave, err := newMongoClient(ctx, slaveCfg)
		if err != nil {
			logger.Warnf(ctx, "mongodb: failed to connect to slave %d: %v", i, err)
			continue
		}
		slaves = append(slaves, slave)
	}

	// the weights no longer line up when a slave is skipped; the balancer
	// falls back to round robin
	if len(slaves) == 0 {
		slaves = append(slaves, master)
	}

	return &Manager{
		master:   master,
		slaves:   slaves,
		strategy: strategy,
		database: database,
		maxRetry: conf.MaxRetry,
	}, nil
}

// Master returns the master client
func (m *Manager) Master() *mongo.Client {
	if m == nil {
		return nil
	}
	return m.master
}

// Slave returns a read client, falling back to the master when no replica
// answers.
func (m *Manager) Slave(ctx context.Context) *mongo.Client {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for i := 0; i <= m.maxRetry; i++ {
		slave, err := m.strategy.Next(m.slaves)
		if err != nil {
			break
		}
		if slave == m.master || slave.Ping(ctx, nil) == nil {
			return slave
		}
	}
	return m.master
}

// Collection returns a read handle on the named collection.
func (m *Manager) Collection(ctx context.Context, name string) *mongo.Collection {
	return m.Slave(ctx).Database(m.database).Collection(name)
}

// Health pings the master and drops unhealthy replicas from rotation.
func (m *Manager) Health(ctx context.Context) error {
	if err := m.master.Ping(ctx, nil); err != nil {
		return fmt.Errorf("master mongodb health check failed: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	var healthySlaves []*mongo.Client
	for _, slave := range m.slaves {
		if err := slave.Ping(ctx, nil); err != nil {
			logger.Warnf(ctx, "mongodb: slave health check failed: %v", err)
			continue
		}
		healthySlaves = append(healthySlaves, slave)
	}

	m.slaves = healthySlaves

	if len(m.slaves) == 0 {
		logger.Warnf(ctx, "mongodb: no healthy slave available, using master for reads")
		m.slaves = append(m.slaves, m.master)
	}

	return nil
}

// Close disconnects every client
func (m *Manager) Close(ctx context.Context) error {
	var errs []error

	if err := m.master.Disconnect(ctx); err != nil {
		errs = append(errs, fmt.Errorf("error closing master connection: %w", err))
	}

	for i, slave := range m.slaves {
		if slave != m.master {
			if err := slave.Disconnect(ctx); err != nil {
				errs = append(errs, fmt.Errorf("error closing slave %d connection: %w", i, err))
			}
		}
	}

	return errors.Join(errs...)
}

func newMongoClient(ctx context.Context, conf *config.MongoNode) (*mongo.Client, error) {
	if conf == nil || conf.URI == "" {
		return nil, errors.New("mongodb configuration is nil or empty")
	}

	clientOptions := options.Client().ApplyURI(conf.URI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping error: %w", err)
	}

	return client, nil
}
