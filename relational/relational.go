package relational

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/couchbase/relation"
	"gorm.io/couchbase/schema"
)

// Factory relation factory of the host relational ORM, relations whose
// related model is not a document model are forwarded here with the caller's
// raw, possibly empty, key names
type Factory interface {
	HasOne(parent, related interface{}, foreignKey, localKey string) (relation.Relation, error)
	HasMany(parent, related interface{}, foreignKey, localKey string) (relation.Relation, error)
	BelongsTo(parent, related interface{}, foreignKey, ownerKey, name string) (relation.Relation, error)
	MorphOne(parent, related interface{}, name, morphType, morphID, localKey string) (relation.Relation, error)
	MorphMany(parent, related interface{}, name, morphType, morphID, localKey string) (relation.Relation, error)
	BelongsToMany(parent, related interface{}, table, foreignPivotKey, relatedPivotKey, parentKey, relatedKey, name string) (relation.Relation, error)
	NewQuery(model interface{}) (relation.Query, error)
}

// Query relational query handle scoped to one table
type Query struct {
	ID    uuid.UUID
	Table string
	Model *schema.Model
}

// Source table name
func (q *Query) Source() string {
	return q.Table
}

// Backend always relational
func (q *Query) Backend() relation.Backend {
	return relation.Relational
}

// Default Factory following the usual relational conventions
type Default struct {
	Namer schema.Namer
}

var _ Factory = (*Default)(nil)

func (d *Default) namer() schema.Namer {
	if d == nil || d.Namer == nil {
		return schema.NamingStrategy{}
	}
	return d.Namer
}

func (d *Default) parse(model interface{}) (*schema.Model, error) {
	return schema.Parse(model, d.namer())
}

func (d *Default) parsePair(parent, related interface{}) (*schema.Model, *schema.Model, error) {
	parentModel, err := d.parse(parent)
	if err != nil {
		return nil, nil, fmt.Errorf("parent: %w", err)
	}

	relatedModel, err := d.parse(related)
	if err != nil {
		return nil, nil, fmt.Errorf("related: %w", err)
	}
	return parentModel, relatedModel, nil
}

// NewQuery fresh query handle on model's table
func (d *Default) NewQuery(model interface{}) (relation.Query, error) {
	parsed, err := d.parse(model)
	if err != nil {
		return nil, err
	}
	return newQuery(parsed), nil
}

func newQuery(model *schema.Model) *Query {
	return &Query{ID: uuid.New(), Table: model.Table, Model: model}
}

func (d *Default) hasOneOrMany(parent, related interface{}, foreignKey, localKey string) (relation.HasOneOrMany, error) {
	parentModel, relatedModel, err := d.parsePair(parent, related)
	if err != nil {
		return relation.HasOneOrMany{}, err
	}

	if foreignKey == "" {
		foreignKey = parentModel.ForeignKey
	}

	if localKey == "" {
		localKey = parentModel.PrimaryKey
	}

	return relation.HasOneOrMany{
		Parent:     parent,
		Query:      newQuery(relatedModel),
		ForeignKey: foreignKey,
		LocalKey:   localKey,
	}, nil
}

// HasOne `posts.id` <- `comments.post_id`
func (d *Default) HasOne(parent, related interface{}, foreignKey, localKey string) (relation.Relation, error) {
	rel, err := d.hasOneOrMany(parent, related, foreignKey, localKey)
	if err != nil {
		return nil, err
	}
	return &relation.HasOne{HasOneOrMany: rel}, nil
}

// HasMany same keys as HasOne
func (d *Default) HasMany(parent, related interface{}, foreignKey, localKey string) (relation.Relation, error) {
	rel, err := d.hasOneOrMany(parent, related, foreignKey, localKey)
	if err != nil {
		return nil, err
	}
	return &relation.HasMany{HasOneOrMany: rel}, nil
}

// BelongsTo foreign key from the relation name and the related key,
// `author` -> `author_id`, the related model's foreign key without a name
func (d *Default) BelongsTo(parent, related interface{}, foreignKey, ownerKey, name string) (relation.Relation, error) {
	_, relatedModel, err := d.parsePair(parent, related)
	if err != nil {
		return nil, err
	}

	if ownerKey == "" {
		ownerKey = relatedModel.PrimaryKey
	}

	if foreignKey == "" {
		if name != "" {
			foreignKey = schema.ToDBName(name) + "_" + relatedModel.PrimaryKey
		} else {
			foreignKey = relatedModel.ForeignKey
		}
	}

	return &relation.BelongsTo{
		Parent:     parent,
		Query:      newQuery(relatedModel),
		ForeignKey: foreignKey,
		OwnerKey:   ownerKey,
		Relation:   name,
	}, nil
}

func (d *Default) morphOneOrMany(parent, related interface{}, name, morphType, morphID, localKey string) (relation.MorphOneOrMany, error) {
	parentModel, relatedModel, err := d.parsePair(parent, related)
	if err != nil {
		return relation.MorphOneOrMany{}, err
	}

	typ, id := d.namer().MorphKeys(name)
	if morphType == "" {
		morphType = typ
	}

	if morphID == "" {
		morphID = id
	}

	if localKey == "" {
		localKey = parentModel.PrimaryKey
	}

	return relation.MorphOneOrMany{
		Parent:     parent,
		Query:      newQuery(relatedModel),
		MorphType:  morphType,
		MorphID:    morphID,
		LocalKey:   localKey,
		MorphClass: parentModel.Name,
	}, nil
}

// MorphOne `imageable_type` / `imageable_id` for name `imageable`
func (d *Default) MorphOne(parent, related interface{}, name, morphType, morphID, localKey string) (relation.Relation, error) {
	rel, err := d.morphOneOrMany(parent, related, name, morphType, morphID, localKey)
	if err != nil {
		return nil, err
	}
	return &relation.MorphOne{MorphOneOrMany: rel}, nil
}

// MorphMany same keys as MorphOne
func (d *Default) MorphMany(parent, related interface{}, name, morphType, morphID, localKey string) (relation.Relation, error) {
	rel, err := d.morphOneOrMany(parent, related, name, morphType, morphID, localKey)
	if err != nil {
		return nil, err
	}
	return &relation.MorphMany{MorphOneOrMany: rel}, nil
}

// BelongsToMany pivot table of both singular model names in lexical order,
// `Role`, `User` -> `role_user` with `user_id` and `role_id`
func (d *Default) BelongsToMany(parent, related interface{}, table, foreignPivotKey, relatedPivotKey, parentKey, relatedKey, name string) (relation.Relation, error) {
	parentModel, relatedModel, err := d.parsePair(parent, related)
	if err != nil {
		return nil, err
	}

	if table == "" {
		table = d.namer().JoinTableName(parentModel.Name, relatedModel.Name)
	}

	if foreignPivotKey == "" {
		foreignPivotKey = parentModel.ForeignKey
	}

	if relatedPivotKey == "" {
		relatedPivotKey = relatedModel.ForeignKey
	}

	if parentKey == "" {
		parentKey = parentModel.PrimaryKey
	}

	if relatedKey == "" {
		relatedKey = relatedModel.PrimaryKey
	}

	return &relation.BelongsToMany{
		Parent:          parent,
		Query:           newQuery(relatedModel),
		Collection:      table,
		ForeignPivotKey: foreignPivotKey,
		RelatedPivotKey: relatedPivotKey,
		ParentKey:       parentKey,
		RelatedKey:      relatedKey,
		Relation:        name,
	}, nil
}
