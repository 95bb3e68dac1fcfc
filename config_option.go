package couchbase

import (
	"github.com/couchbase/gocb/v2"
	"gorm.io/couchbase/logger"
	"gorm.io/couchbase/relational"
	"gorm.io/couchbase/schema"
)

// ConfigOption use functional option for Config.
type ConfigOption func(c *Config)

// WithNamingStrategy set schema namer.
func WithNamingStrategy(namer schema.Namer) ConfigOption {
	return func(c *Config) {
		c.NamingStrategy = namer
	}
}

// WithLogger set logger.
func WithLogger(logger logger.Interface) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithBucket set bucket of query handles.
func WithBucket(bucket string) ConfigOption {
	return func(c *Config) {
		c.Bucket = bucket
	}
}

// WithScope set scope of query handles.
func WithScope(scope string) ConfigOption {
	return func(c *Config) {
		c.Scope = scope
	}
}

// WithMorphMap add morph type aliases, alias -> model name.
func WithMorphMap(morphMap map[string]string) ConfigOption {
	return func(c *Config) {
		if c.MorphMap == nil {
			c.MorphMap = make(map[string]string, len(morphMap))
		}
		for alias, name := range morphMap {
			c.MorphMap[alias] = name
		}
	}
}

// WithRelationalFactory set the factory non document relations are forwarded to.
func WithRelationalFactory(factory relational.Factory) ConfigOption {
	return func(c *Config) {
		c.Relational = factory
	}
}

// WithConnection set an already opened bucket.
func WithConnection(bucket *gocb.Bucket) ConfigOption {
	return func(c *Config) {
		c.Connection = bucket
	}
}

// WithCredentials set the cluster connection string and credentials dialed on Open.
func WithCredentials(connectionString, username, password string) ConfigOption {
	return func(c *Config) {
		c.ConnectionString = connectionString
		c.Username = username
		c.Password = password
	}
}
