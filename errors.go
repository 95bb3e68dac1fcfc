package couchbase

import (
	"errors"

	"gorm.io/couchbase/schema"
)

var (
	// ErrInvalidModel model is nil, not a struct pointer or the bare base model
	ErrInvalidModel = schema.ErrInvalidModel
	// ErrModelNotRegistered related model given by an unknown name
	ErrModelNotRegistered = errors.New("model not registered")
	// ErrUnknownMorphType stored morph type is not mapped to any model
	ErrUnknownMorphType = errors.New("unknown morph type")
	// ErrRegistered name or alias already registered for another model
	ErrRegistered = errors.New("registered")
	// ErrInvalidConfig malformed configuration value
	ErrInvalidConfig = errors.New("invalid config")
)
