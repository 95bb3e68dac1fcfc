package query

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/couchbase/gocb/v2"
	"github.com/google/uuid"
	"gorm.io/couchbase/relation"
)

// ErrNotConnected the builder was created without a bucket connection
var ErrNotConnected = errors.New("query builder is not connected to a bucket")

// Builder document store query handle scoped to one collection
type Builder struct {
	ID         uuid.UUID
	Bucket     string
	Scope      string
	Collection string
	Model      reflect.Type

	conn *gocb.Bucket
}

// New creates a fresh query handle, conn may be nil
func New(bucket, scope, collection string, model reflect.Type, conn *gocb.Bucket) *Builder {
	return &Builder{
		ID:         uuid.New(),
		Bucket:     bucket,
		Scope:      scope,
		Collection: collection,
		Model:      model,
		conn:       conn,
	}
}

// Source collection name
func (b *Builder) Source() string {
	return b.Collection
}

// Backend always the document store
func (b *Builder) Backend() relation.Backend {
	return relation.DocumentStore
}

// Keyspace N1QL keyspace, `bucket`.`scope`.`collection`
func (b *Builder) Keyspace() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{b.Bucket, b.Scope, b.Collection} {
		if part != "" {
			parts = append(parts, quote(part))
		}
	}
	return strings.Join(parts, ".")
}

// Connected reports whether a bucket connection backs the handle
func (b *Builder) Connected() bool {
	return b.conn != nil
}

// SDKCollection collection handle of the bucket connection
func (b *Builder) SDKCollection() (*gocb.Collection, error) {
	if b.conn == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotConnected, b.Keyspace())
	}
	return b.conn.Scope(b.Scope).Collection(b.Collection), nil
}

func (b *Builder) String() string {
	if b.Model != nil {
		return fmt.Sprintf("%s (%s)", b.Keyspace(), b.Model.Name())
	}
	return b.Keyspace()
}

func quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}
