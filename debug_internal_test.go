package couchbase

import (
	"testing"

	"github.com/couchbase/gocb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/couchbase/logger"
)

func TestDebugLeavesConnectionToOriginal(t *testing.T) {
	bucket := &gocb.Bucket{}
	db, err := Open(nil, WithLogger(logger.Discard), WithConnection(bucket))
	require.NoError(t, err)

	cluster := &gocb.Cluster{}
	db.cluster = cluster

	debug := db.Debug()
	assert.Nil(t, debug.cluster)
	assert.Same(t, bucket, debug.Connection, "debug copy queries the same bucket")

	require.NoError(t, debug.Close())
	assert.Same(t, cluster, db.cluster)
	assert.Same(t, bucket, db.Connection)
	assert.Same(t, bucket, debug.Connection)

	db.cluster = nil
	assert.NoError(t, db.Close())
}
