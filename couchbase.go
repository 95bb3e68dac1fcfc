package couchbase

import (
	"context"
	"fmt"
	"sort"

	"github.com/couchbase/gocb/v2"
	"gorm.io/couchbase/logger"
	"gorm.io/couchbase/relational"
	"gorm.io/couchbase/schema"
)

const (
	// DefaultBucket bucket used when none is configured
	DefaultBucket = "default"
	// DefaultScope scope used when none is configured
	DefaultScope = "_default"
)

// Config relation resolver config
type Config struct {
	// NamingStrategy collections, fields and relation keys naming strategy
	NamingStrategy schema.Namer
	// Logger
	Logger logger.Interface
	// Relational factory relations to non document models are forwarded to
	Relational relational.Factory

	// Bucket and Scope query handles are scoped to
	Bucket string
	Scope  string

	// ConnectionString cluster to connect to on Open, e.g. `couchbase://localhost`
	ConnectionString string
	Username         string
	Password         string
	// Connection bucket backing query handles, dialed from ConnectionString when nil
	Connection *gocb.Bucket

	// MorphMap morph type alias to registered model name, aliases are
	// registered in lexical order so a model aliased twice takes its
	// lexically first alias as morph class
	MorphMap map[string]string

	// LogLevel level LoadConfig read from COUCHBASE_LOG_LEVEL
	LogLevel logger.LogLevel

	cluster  *gocb.Cluster
	registry *registry
}

// DB relation resolver handle, safe for concurrent use
type DB struct {
	*Config
	ctx context.Context
}

// Open initialize the resolver, dialing the cluster when a connection string is configured
func Open(config *Config, opts ...ConfigOption) (db *DB, err error) {
	if config == nil {
		config = &Config{}
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.NamingStrategy == nil {
		config.NamingStrategy = schema.NamingStrategy{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	if config.Relational == nil {
		config.Relational = &relational.Default{Namer: config.NamingStrategy}
	}

	if config.Bucket == "" {
		config.Bucket = DefaultBucket
	}

	if config.Scope == "" {
		config.Scope = DefaultScope
	}

	if config.registry == nil {
		config.registry = newRegistry(config.NamingStrategy)
	}

	db = &DB{Config: config, ctx: context.Background()}

	aliases := make([]string, 0, len(config.MorphMap))
	for alias := range config.MorphMap {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		if err = config.registry.alias(alias, config.MorphMap[alias]); err != nil {
			return nil, err
		}
	}

	if config.Connection == nil && config.ConnectionString != "" {
		if err = db.connect(); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func (db *DB) connect() error {
	cluster, err := gocb.Connect(db.ConnectionString, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: db.Username,
			Password: db.Password,
		},
	})
	if err != nil {
		return fmt.Errorf("connect %s: %w", db.ConnectionString, err)
	}

	db.cluster = cluster
	db.Connection = cluster.Bucket(db.Bucket)
	db.Logger.Info(db.ctx, "connected to bucket %s", db.Bucket)
	return nil
}

// Close the cluster connection opened by Open
func (db *DB) Close() error {
	if db.cluster == nil {
		return nil
	}

	err := db.cluster.Close(nil)
	db.cluster = nil
	db.Connection = nil
	return err
}

// WithContext returns a copy handing ctx to the logger
func (db *DB) WithContext(ctx context.Context) *DB {
	if ctx == nil {
		ctx = context.Background()
	}
	return &DB{Config: db.Config, ctx: ctx}
}

// Debug returns a copy logging every resolution, the copy shares the
// connection but Close on it is a no-op
func (db *DB) Debug() *DB {
	config := *db.Config
	config.Logger = db.Logger.LogMode(logger.Info)
	config.cluster = nil
	return &DB{Config: &config, ctx: db.ctx}
}

// Context context of the handle
func (db *DB) Context() context.Context {
	return db.ctx
}
