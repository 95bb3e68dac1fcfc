package couchbase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/couchbase"
	"gorm.io/couchbase/query"
	"gorm.io/couchbase/relation"
)

func TestIsDocument(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{}
		document bool
	}{
		{"embedding model", &Post{}, true},
		{"nil pointer", (*Comment)(nil), true},
		{"struct value", Post{}, false},
		{"bare base model", &couchbase.Model{}, false},
		{"relational model", &Account{}, false},
		{"nil", nil, false},
		{"scalar", "Post", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.document, couchbase.IsDocument(tt.model))
		})
	}
}

func TestModelAttributes(t *testing.T) {
	post := &Post{}

	assert.True(t, query.IsMissing(post.GetAttribute("views")))

	post.SetAttribute("views", 42)
	post.SetAttribute("draft", nil)
	assert.Equal(t, 42, post.GetAttribute("views"))
	assert.Nil(t, post.GetAttribute("draft"))
	assert.False(t, query.IsMissing(post.GetAttribute("draft")))

	attributes := post.Attributes()
	assert.Equal(t, map[string]interface{}{"views": 42, "draft": nil}, attributes)

	attributes["views"] = 0
	assert.Equal(t, 42, post.GetAttribute("views"))
}

func TestParentRelation(t *testing.T) {
	db := openDB(t)
	post := &Post{ID: "post-1"}

	rel, err := post.Comments(db)
	require.NoError(t, err)

	comment := &Comment{ID: "comment-1"}
	assert.Nil(t, comment.ParentRelation())

	comment.SetParentRelation(rel)
	assert.Same(t, rel.(*relation.HasMany), comment.ParentRelation().(*relation.HasMany))
}
