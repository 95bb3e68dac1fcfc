package couchbase

import (
	"reflect"

	"gorm.io/couchbase/query"
	"gorm.io/couchbase/relation"
	"gorm.io/couchbase/schema"
)

// Model base model of document store models, embed it to store a model in
// Couchbase
//
//	type Comment struct {
//	  couchbase.Model
//	  ID   string
//	  Body string
//	}
type Model struct {
	attributes     map[string]interface{}
	parentRelation relation.Relation
}

// Document implemented by models embedding Model
type Document interface {
	documentModel() *Model
}

// MorphClasser overrides the discriminator stored in morph type fields
type MorphClasser interface {
	MorphClass() string
}

var baseModelType = reflect.TypeOf(Model{})

func (m *Model) documentModel() *Model {
	return m
}

// IsDocument reports whether model is a document store model, the bare Model is not
func IsDocument(model interface{}) bool {
	if _, ok := model.(Document); !ok {
		return false
	}

	modelType, err := schema.ModelType(model)
	return err == nil && modelType != baseModelType
}

// SetAttribute set a schemaless attribute
func (m *Model) SetAttribute(key string, value interface{}) {
	if m.attributes == nil {
		m.attributes = map[string]interface{}{}
	}
	m.attributes[key] = value
}

// GetAttribute schemaless attribute, query.Missing when never set
func (m *Model) GetAttribute(key string) interface{} {
	if value, ok := m.attributes[key]; ok {
		return value
	}
	return query.Missing
}

// Attributes copy of the schemaless attributes
func (m *Model) Attributes() map[string]interface{} {
	attributes := make(map[string]interface{}, len(m.attributes))
	for key, value := range m.attributes {
		attributes[key] = value
	}
	return attributes
}

// SetParentRelation remember the relation the model was loaded through
func (m *Model) SetParentRelation(r relation.Relation) {
	m.parentRelation = r
}

// ParentRelation relation the model was loaded through
func (m *Model) ParentRelation() relation.Relation {
	return m.parentRelation
}

// storedValue value stored under key, struct fields first, then schemaless attributes
func (db *DB) storedValue(model interface{}, key string) interface{} {
	if value, ok := schema.LookUpValue(model, key, db.NamingStrategy); ok {
		return value
	}

	if doc, ok := model.(Document); ok {
		if m := doc.documentModel(); m != nil {
			return m.GetAttribute(key)
		}
	}
	return query.Missing
}
