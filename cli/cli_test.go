package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/couchbase"
	"gorm.io/couchbase/logger"
	"gorm.io/couchbase/relation"
)

func TestParseRelations(t *testing.T) {
	rels, err := ParseRelations("comments:Comment:has_many, author:User:belongs_to,images:Image:morph_many:imageable,imageable::morph_to,roles:Role:many2many")
	require.NoError(t, err)

	assert.Equal(t, []RelationInfo{
		{Name: "comments", Target: "Comment", Type: relation.HasManyRel},
		{Name: "author", Target: "User", Type: relation.BelongsToRel},
		{Name: "images", Target: "Image", Type: relation.MorphManyRel, MorphName: "imageable"},
		{Name: "imageable", Type: relation.MorphToRel},
		{Name: "roles", Target: "Role", Type: relation.Many2ManyRel},
	}, rels)
}

func TestParseRelationsInvalid(t *testing.T) {
	for _, value := range []string{"comments", "comments:Comment:links", "comments::has_many", ":Comment:has_many"} {
		_, err := ParseRelations(value)
		assert.ErrorIs(t, err, ErrInvalidRelation, value)
	}
}

func TestRelationalTargets(t *testing.T) {
	rels, err := ParseRelations("comments:Comment:has_many,account:Account:belongs_to,imageable:post:morph_to,owner:Account:belongs_to")
	require.NoError(t, err)

	assert.Equal(t, []string{"Account"}, RelationalTargets([]string{"Post", "Comment"}, "Post", rels))
	assert.Equal(t, []string{"Profile", "Account"}, RelationalTargets([]string{"Comment"}, "Profile", rels))
}

func TestExplain(t *testing.T) {
	db, err := couchbase.Open(nil, couchbase.WithLogger(logger.Discard))
	require.NoError(t, err)

	rels, err := ParseRelations("comments:Comment:has_many,author:User:belongs_to,images:Image:morph_many:imageable,roles:Role:many_to_many,parent:Post:morph_to")
	require.NoError(t, err)

	docs := []string{"Post", "Comment", "Image", "Role"}
	require.NoError(t, RegisterEntities(db, docs, RelationalTargets(docs, "Post", rels)))

	var buf bytes.Buffer
	require.NoError(t, Explain(db, "Post", rels, &buf))

	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Regexp(t, `comments\s+has_many\s+couchbase\s+comments\s+foreign_key=post_id local_key=id`, output)
	assert.Regexp(t, `author\s+belongs_to\s+relational\s+users\s+foreign_key=author_id owner_key=id`, output)
	assert.Regexp(t, `images\s+morph_many\s+couchbase\s+images\s+morph_type=imageable_type morph_id=imageable_id local_key=id morph_class=Post`, output)
	assert.Regexp(t, `roles\s+many_to_many\s+couchbase\s+roles\s+collection=roles foreign_pivot_key=posts related_pivot_key=roles`, output)
	assert.Regexp(t, `parent\s+morph_to\s+couchbase\s+posts\s+morph_type=parent_type morph_id=parent_id owner_key=id morph_value=Post`, output)
}

func TestExplainUnknownOwner(t *testing.T) {
	db, err := couchbase.Open(nil, couchbase.WithLogger(logger.Discard))
	require.NoError(t, err)

	err = Explain(db, "Post", nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, couchbase.ErrModelNotRegistered)
}

func TestExplainPendingMorphTo(t *testing.T) {
	db, err := couchbase.Open(nil, couchbase.WithLogger(logger.Discard))
	require.NoError(t, err)
	require.NoError(t, RegisterEntities(db, []string{"Image"}, nil))

	rels, err := ParseRelations("imageable::morph_to")
	require.NoError(t, err)

	results, err := Resolve(db, "Image", rels)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].(*relation.MorphTo).Pending())

	var buf bytes.Buffer
	require.NoError(t, Explain(db, "Image", rels, &buf))
	assert.Regexp(t, `imageable\s+morph_to\s+-\s+<pending>`, buf.String())
}
