package couchbase_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/couchbase"
	"gorm.io/couchbase/logger"
	"gorm.io/couchbase/relation"
)

type User struct {
	couchbase.Model
	ID   string
	Name string
}

type Role struct {
	couchbase.Model
	ID   string
	Name string
}

type Post struct {
	couchbase.Model
	ID    string
	Title string
}

func (p *Post) Comments(db *couchbase.DB) (relation.Relation, error) {
	return db.HasMany(p, &Comment{})
}

func (p *Post) Images(db *couchbase.DB) (relation.Relation, error) {
	return db.MorphMany(p, &Image{}, "imageable")
}

type Comment struct {
	couchbase.Model
	ID     string
	PostID string `json:"post_id"`
	Body   string
}

type Book struct {
	couchbase.Model
	ID       string
	AuthorID string
}

func (b *Book) Author(db *couchbase.DB) (relation.Relation, error) {
	return db.BelongsTo(b, &User{})
}

type Image struct {
	couchbase.Model
	ID            string
	ImageableType string
	ImageableID   string
	URL           string
}

func (i *Image) Imageable(db *couchbase.DB) (relation.Relation, error) {
	return db.MorphTo(i)
}

type Video struct {
	couchbase.Model
	Key string
}

func (Video) KeyName() string { return "key" }

// Tag stores its polymorphic target only as schemaless attributes
type Tag struct {
	couchbase.Model
	ID string
}

func (t *Tag) Taggable(db *couchbase.DB) (relation.Relation, error) {
	return db.MorphTo(t)
}

// Account is persisted by the relational ORM
type Account struct {
	ID     uint
	Number string
}

type Profile struct {
	ID        uint
	AccountID uint
}

func openDB(t *testing.T, opts ...couchbase.ConfigOption) *couchbase.DB {
	t.Helper()

	db, err := couchbase.Open(nil, append([]couchbase.ConfigOption{couchbase.WithLogger(logger.Discard)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}
