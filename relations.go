package couchbase

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"gorm.io/couchbase/query"
	"gorm.io/couchbase/relation"
	"gorm.io/couchbase/schema"
	"gorm.io/couchbase/utils"
)

type relationOptions struct {
	foreignKey   string
	localKey     string
	ownerKey     string
	otherKey     string
	relationName string
	morphType    string
	morphID      string
	collection   string
	parentKey    string
	relatedKey   string
}

// RelationOption overrides a conventional key or name of a relation
type RelationOption func(*relationOptions)

// ForeignKey foreign key, the parent's membership array of a many to many relation
func ForeignKey(name string) RelationOption {
	return func(o *relationOptions) { o.foreignKey = name }
}

// LocalKey parent key of has one / many and morph one / many relations
func LocalKey(name string) RelationOption {
	return func(o *relationOptions) { o.localKey = name }
}

// OwnerKey related key of belongs to and morph to relations
func OwnerKey(name string) RelationOption {
	return func(o *relationOptions) { o.ownerKey = name }
}

// OtherKey related membership array of a many to many relation
func OtherKey(name string) RelationOption {
	return func(o *relationOptions) { o.otherKey = name }
}

// RelationName skip inferring the relation name from the calling method
func RelationName(name string) RelationOption {
	return func(o *relationOptions) { o.relationName = name }
}

// MorphType discriminator field of a polymorphic relation
func MorphType(name string) RelationOption {
	return func(o *relationOptions) { o.morphType = name }
}

// MorphID foreign key field of a polymorphic relation
func MorphID(name string) RelationOption {
	return func(o *relationOptions) { o.morphID = name }
}

// Collection collection, or pivot table when relational, of a many to many relation
func Collection(name string) RelationOption {
	return func(o *relationOptions) { o.collection = name }
}

// ParentKey parent key of a many to many relation
func ParentKey(name string) RelationOption {
	return func(o *relationOptions) { o.parentKey = name }
}

// RelatedKey related key of a many to many relation
func RelatedKey(name string) RelationOption {
	return func(o *relationOptions) { o.relatedKey = name }
}

func newRelationOptions(opts []RelationOption) *relationOptions {
	o := &relationOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// trace log a resolution, rel is nil on failure
func (db *DB) trace(begin time.Time, typ relation.Type, name string, rel *relation.Relation, backend *relation.Backend, err *error) {
	db.Logger.Trace(db.ctx, begin, func() (string, string) {
		if *rel != nil {
			return relation.Describe(*rel), string(*backend)
		}
		return strings.TrimSpace(string(typ) + " " + name), string(*backend)
	}, *err)
}

// parent validated owner model
func (db *DB) parent(owner interface{}) (*schema.Model, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: nil owner", ErrInvalidModel)
	}

	model, err := schema.Parse(owner, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}

	if model.ModelType == baseModelType {
		return nil, fmt.Errorf("%w: owner is the bare base model", ErrInvalidModel)
	}
	return model, nil
}

// related instance of the related model, given as instance or registered name
func (db *DB) related(related interface{}) (interface{}, error) {
	switch value := related.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil related model", ErrInvalidModel)
	case string:
		return db.registry.newModel(value)
	}

	modelType, err := schema.ModelType(related)
	if err != nil {
		return nil, fmt.Errorf("related: %w", err)
	}

	if modelType == baseModelType {
		return nil, fmt.Errorf("%w: related is the bare base model", ErrInvalidModel)
	}

	value := reflect.ValueOf(related)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return schema.New(related)
		}
	case reflect.Struct:
		ptr := reflect.New(modelType)
		ptr.Elem().Set(value)
		return ptr.Interface(), nil
	case reflect.Slice, reflect.Array:
		return schema.New(related)
	}
	return related, nil
}

// forwarded related argument handed to the relational factory, the caller's
// own unless it named a registered model
func forwarded(related, instance interface{}) interface{} {
	if _, ok := related.(string); ok {
		return instance
	}
	return related
}

// fallback log forwarding to the relational factory
func (db *DB) fallback(typ relation.Type, related interface{}) {
	db.Logger.Info(db.ctx, "%T is not a document model, %s relation forwarded to the relational factory", related, typ)
}

func (db *DB) newQuery(model *schema.Model) *query.Builder {
	return query.New(db.Bucket, db.Scope, model.Table, model.ModelType, db.Connection)
}

// HasOne one to one relation, the related document stores the owner's key
// in ForeignKey, `post_id` for a `Post` owner
func (db *DB) HasOne(owner, related interface{}, opts ...RelationOption) (rel relation.Relation, err error) {
	var (
		begin   = time.Now()
		backend = relation.DocumentStore
	)
	defer db.trace(begin, relation.HasOneRel, "", &rel, &backend, &err)

	o := newRelationOptions(opts)
	ownerModel, relatedModel, instance, err := db.pair(owner, related)
	if err != nil {
		return nil, err
	}

	if relatedModel == nil {
		backend = relation.Relational
		db.fallback(relation.HasOneRel, instance)
		return db.Relational.HasOne(owner, forwarded(related, instance), o.foreignKey, o.localKey)
	}

	return &relation.HasOne{HasOneOrMany: relation.HasOneOrMany{
		Parent:     owner,
		Query:      db.newQuery(relatedModel),
		ForeignKey: orDefault(o.foreignKey, ownerModel.ForeignKey),
		LocalKey:   orDefault(o.localKey, ownerModel.PrimaryKey),
	}}, nil
}

// HasMany one to many relation, keys as HasOne
func (db *DB) HasMany(owner, related interface{}, opts ...RelationOption) (rel relation.Relation, err error) {
	var (
		begin   = time.Now()
		backend = relation.DocumentStore
	)
	defer db.trace(begin, relation.HasManyRel, "", &rel, &backend, &err)

	o := newRelationOptions(opts)
	ownerModel, relatedModel, instance, err := db.pair(owner, related)
	if err != nil {
		return nil, err
	}

	if relatedModel == nil {
		backend = relation.Relational
		db.fallback(relation.HasManyRel, instance)
		return db.Relational.HasMany(owner, forwarded(related, instance), o.foreignKey, o.localKey)
	}

	return &relation.HasMany{HasOneOrMany: relation.HasOneOrMany{
		Parent:     owner,
		Query:      db.newQuery(relatedModel),
		ForeignKey: orDefault(o.foreignKey, ownerModel.ForeignKey),
		LocalKey:   orDefault(o.localKey, ownerModel.PrimaryKey),
	}}, nil
}

// BelongsTo inverse relation, the owner stores the related key, the relation
// name defaults to the calling method, `Author` -> `author` stored in `author_id`
func (db *DB) BelongsTo(owner, related interface{}, opts ...RelationOption) (rel relation.Relation, err error) {
	var (
		begin   = time.Now()
		backend = relation.DocumentStore
		o       = newRelationOptions(opts)
	)

	if o.relationName == "" {
		o.relationName = db.NamingStrategy.RelationName(utils.CallerName(1))
	}
	defer db.trace(begin, relation.BelongsToRel, o.relationName, &rel, &backend, &err)

	_, relatedModel, instance, err := db.pair(owner, related)
	if err != nil {
		return nil, err
	}

	if relatedModel == nil {
		backend = relation.Relational
		db.fallback(relation.BelongsToRel, instance)
		return db.Relational.BelongsTo(owner, forwarded(related, instance), o.foreignKey, o.ownerKey, o.relationName)
	}

	foreignKey := o.foreignKey
	if foreignKey == "" {
		if o.relationName != "" {
			foreignKey = schema.ToDBName(o.relationName) + "_id"
		} else {
			foreignKey = relatedModel.ForeignKey
		}
	}

	return &relation.BelongsTo{
		Parent:     owner,
		Query:      db.newQuery(relatedModel),
		ForeignKey: foreignKey,
		OwnerKey:   orDefault(o.ownerKey, relatedModel.PrimaryKey),
		Relation:   o.relationName,
	}, nil
}

// MorphOne polymorphic one to one relation, the related document stores the
// owner's key in `<name>_id` and its morph class in `<name>_type`
func (db *DB) MorphOne(owner, related interface{}, name string, opts ...RelationOption) (rel relation.Relation, err error) {
	var (
		begin   = time.Now()
		backend = relation.DocumentStore
		o       = newRelationOptions(opts)
	)
	defer db.trace(begin, relation.MorphOneRel, name, &rel, &backend, &err)

	morph, instance, err := db.morphOneOrMany(relation.MorphOneRel, owner, related, name, o)
	switch {
	case err != nil:
		return nil, err
	case morph != nil:
		return &relation.MorphOne{MorphOneOrMany: *morph}, nil
	}

	backend = relation.Relational
	return db.Relational.MorphOne(owner, forwarded(related, instance), name, o.morphType, o.morphID, o.localKey)
}

// MorphMany polymorphic one to many relation, keys as MorphOne
func (db *DB) MorphMany(owner, related interface{}, name string, opts ...RelationOption) (rel relation.Relation, err error) {
	var (
		begin   = time.Now()
		backend = relation.DocumentStore
		o       = newRelationOptions(opts)
	)
	defer db.trace(begin, relation.MorphManyRel, name, &rel, &backend, &err)

	morph, instance, err := db.morphOneOrMany(relation.MorphManyRel, owner, related, name, o)
	switch {
	case err != nil:
		return nil, err
	case morph != nil:
		return &relation.MorphMany{MorphOneOrMany: *morph}, nil
	}

	backend = relation.Relational
	return db.Relational.MorphMany(owner, forwarded(related, instance), name, o.morphType, o.morphID, o.localKey)
}

// morphOneOrMany nil keys with the related instance when it is not a document model
func (db *DB) morphOneOrMany(typ relation.Type, owner, related interface{}, name string, o *relationOptions) (*relation.MorphOneOrMany, interface{}, error) {
	ownerModel, relatedModel, instance, err := db.pair(owner, related)
	if err != nil {
		return nil, nil, err
	}

	if relatedModel == nil {
		db.fallback(typ, instance)
		return nil, instance, nil
	}

	morphClass, err := db.MorphClass(owner)
	if err != nil {
		return nil, nil, err
	}

	morphType, morphID := db.NamingStrategy.MorphKeys(name)
	return &relation.MorphOneOrMany{
		Parent:     owner,
		Query:      db.newQuery(relatedModel),
		MorphType:  orDefault(o.morphType, morphType),
		MorphID:    orDefault(o.morphID, morphID),
		LocalKey:   orDefault(o.localKey, ownerModel.PrimaryKey),
		MorphClass: morphClass,
	}, nil, nil
}

// MorphTo polymorphic inverse relation, the target model is read from the
// owner's `<name>_type` field, the name defaults to the calling method. No
// stored type yields a pending relation without query.
func (db *DB) MorphTo(owner interface{}, opts ...RelationOption) (rel relation.Relation, err error) {
	var (
		begin   = time.Now()
		backend = relation.DocumentStore
		o       = newRelationOptions(opts)
	)

	if o.relationName == "" {
		o.relationName = schema.ToDBName(utils.CallerName(1))
	}
	defer db.trace(begin, relation.MorphToRel, o.relationName, &rel, &backend, &err)

	if _, err = db.parent(owner); err != nil {
		return nil, err
	}

	morphType, morphID := db.NamingStrategy.MorphKeys(o.relationName)
	morphType, morphID = orDefault(o.morphType, morphType), orDefault(o.morphID, morphID)

	morphTo := &relation.MorphTo{
		Parent:    owner,
		MorphID:   morphID,
		MorphType: morphType,
		Relation:  o.relationName,
	}

	value := db.storedValue(owner, morphType)
	if query.IsMissing(value) || value == nil || utils.ToString(value) == "" {
		return morphTo, nil
	}

	morphTo.MorphValue = utils.ToString(value)
	instance, err := db.registry.morphModel(morphTo.MorphValue)
	if err != nil {
		return nil, err
	}

	model, err := schema.Parse(instance, db.NamingStrategy)
	if err != nil {
		return nil, err
	}

	if IsDocument(instance) {
		morphTo.Query = db.newQuery(model)
	} else {
		backend = relation.Relational
		if morphTo.Query, err = db.Relational.NewQuery(instance); err != nil {
			return nil, err
		}
	}

	morphTo.OwnerKey = orDefault(o.ownerKey, model.PrimaryKey)
	return morphTo, nil
}

// BelongsToMany many to many relation, document store owners keep membership
// arrays named after the models, `users` and `roles` for `User` and `Role`,
// the relation name defaults to both model names in lexical order, `role_user`
func (db *DB) BelongsToMany(owner, related interface{}, opts ...RelationOption) (rel relation.Relation, err error) {
	var (
		begin   = time.Now()
		backend = relation.DocumentStore
		o       = newRelationOptions(opts)
	)
	defer func() {
		db.trace(begin, relation.Many2ManyRel, o.relationName, &rel, &backend, &err)
	}()

	ownerModel, relatedModel, instance, err := db.pair(owner, related)
	if err != nil {
		return nil, err
	}

	if o.relationName == "" {
		o.relationName = db.guessBelongsToManyRelation(ownerModel, instance)
	}

	if relatedModel == nil {
		backend = relation.Relational
		db.fallback(relation.Many2ManyRel, instance)
		return db.Relational.BelongsToMany(owner, forwarded(related, instance), o.collection, o.foreignKey, o.otherKey, o.parentKey, o.relatedKey, o.relationName)
	}

	return &relation.BelongsToMany{
		Parent:          owner,
		Query:           db.newQuery(relatedModel),
		Collection:      orDefault(o.collection, relatedModel.Table),
		ForeignPivotKey: orDefault(o.foreignKey, db.NamingStrategy.MembershipKeyName(ownerModel.ForeignKey, ownerModel.PrimaryKey)),
		RelatedPivotKey: orDefault(o.otherKey, db.NamingStrategy.MembershipKeyName(relatedModel.ForeignKey, relatedModel.PrimaryKey)),
		ParentKey:       orDefault(o.parentKey, ownerModel.PrimaryKey),
		RelatedKey:      orDefault(o.relatedKey, relatedModel.PrimaryKey),
		Relation:        o.relationName,
	}, nil
}

func (db *DB) guessBelongsToManyRelation(owner *schema.Model, related interface{}) string {
	names := []string{schema.ToDBName(owner.Name)}
	if model, err := schema.Parse(related, db.NamingStrategy); err == nil {
		names = append(names, schema.ToDBName(model.Name))
	}
	sort.Strings(names)
	return strings.Join(names, "_")
}

// pair validate owner and related, the related model is only parsed when it
// is a document model
func (db *DB) pair(owner, related interface{}) (ownerModel, relatedModel *schema.Model, instance interface{}, err error) {
	if ownerModel, err = db.parent(owner); err != nil {
		return nil, nil, nil, err
	}

	if instance, err = db.related(related); err != nil {
		return nil, nil, nil, err
	}

	if !IsDocument(instance) {
		return ownerModel, nil, instance, nil
	}

	if relatedModel, err = schema.Parse(instance, db.NamingStrategy); err != nil {
		return nil, nil, nil, fmt.Errorf("related: %w", err)
	}
	return ownerModel, relatedModel, instance, nil
}
