package query

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/couchbase/relation"
)

type Comment struct {
	ID   string
	Body string
}

func TestBuilder(t *testing.T) {
	builder := New("travel-sample", "inventory", "comments", reflect.TypeOf(Comment{}), nil)

	assert.Equal(t, "comments", builder.Source())
	assert.Equal(t, relation.DocumentStore, builder.Backend())
	assert.Equal(t, "`travel-sample`.`inventory`.`comments`", builder.Keyspace())
	assert.Equal(t, "`travel-sample`.`inventory`.`comments` (Comment)", builder.String())
	assert.False(t, builder.Connected())

	var _ relation.Query = builder
}

func TestBuilder_FreshIdentity(t *testing.T) {
	first := New("default", "_default", "comments", nil, nil)
	second := New("default", "_default", "comments", nil, nil)

	assert.Equal(t, first.Keyspace(), second.Keyspace())
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotSame(t, first, second)
}

func TestBuilder_Keyspace(t *testing.T) {
	tests := []struct {
		name     string
		builder  *Builder
		expected string
	}{
		{"collection only", New("", "", "posts", nil, nil), "`posts`"},
		{"bucket and collection", New("default", "", "posts", nil, nil), "`default`.`posts`"},
		{"escaped", New("my`bucket", "_default", "posts", nil, nil), "`my``bucket`.`_default`.`posts`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.builder.Keyspace())
		})
	}
}

func TestBuilder_SDKCollectionNotConnected(t *testing.T) {
	builder := New("default", "_default", "posts", nil, nil)

	collection, err := builder.SDKCollection()
	require.ErrorIs(t, err, ErrNotConnected)
	assert.Nil(t, collection)
	assert.Contains(t, err.Error(), "`default`.`_default`.`posts`")
}

func TestMissing(t *testing.T) {
	assert.True(t, IsMissing(Missing))
	assert.False(t, IsMissing(nil))
	assert.False(t, IsMissing(""))
	assert.Equal(t, "<missing>", Missing.(interface{ String() string }).String())
}
