package relation

import (
	"fmt"
	"strings"
)

// Type relation type
type Type string

const (
	HasOneRel    Type = "has_one"      // HasOneRel has one relation
	HasManyRel   Type = "has_many"     // HasManyRel has many relation
	BelongsToRel Type = "belongs_to"   // BelongsToRel belongs to relation
	MorphOneRel  Type = "morph_one"    // MorphOneRel polymorphic has one relation
	MorphManyRel Type = "morph_many"   // MorphManyRel polymorphic has many relation
	MorphToRel   Type = "morph_to"     // MorphToRel polymorphic belongs to relation
	Many2ManyRel Type = "many_to_many" // Many2ManyRel many to many relation
)

// Backend storage backend a query handle targets
type Backend string

const (
	DocumentStore Backend = "couchbase"
	Relational    Backend = "relational"
)

// Query query handle scoped to the related model's collection or table,
// constructed but never executed by the resolver
type Query interface {
	Source() string
	Backend() Backend
}

// Relation resolved relation descriptor
type Relation interface {
	Type() Type
	ParentModel() interface{}
	// RelatedQuery nil for a pending morph to
	RelatedQuery() Query
	RelationName() string
}

// HasOneOrMany keys shared by has one and has many relations
type HasOneOrMany struct {
	Parent     interface{}
	Query      Query
	ForeignKey string
	LocalKey   string
}

func (r *HasOneOrMany) ParentModel() interface{} { return r.Parent }
func (r *HasOneOrMany) RelatedQuery() Query      { return r.Query }
func (r *HasOneOrMany) RelationName() string     { return "" }

// HasOne one to one relation, the related document stores the parent's key
type HasOne struct {
	HasOneOrMany
}

func (r *HasOne) Type() Type { return HasOneRel }

// HasMany one to many relation
type HasMany struct {
	HasOneOrMany
}

func (r *HasMany) Type() Type { return HasManyRel }

// BelongsTo inverse of has one / has many, the parent stores the related key
type BelongsTo struct {
	Parent     interface{}
	Query      Query
	ForeignKey string
	OwnerKey   string
	Relation   string
}

func (r *BelongsTo) Type() Type               { return BelongsToRel }
func (r *BelongsTo) ParentModel() interface{} { return r.Parent }
func (r *BelongsTo) RelatedQuery() Query      { return r.Query }
func (r *BelongsTo) RelationName() string     { return r.Relation }

// MorphOneOrMany keys shared by polymorphic has one and has many relations
type MorphOneOrMany struct {
	Parent    interface{}
	Query     Query
	MorphType string
	MorphID   string
	LocalKey  string
	// MorphClass discriminator the related documents store in MorphType
	MorphClass string
}

func (r *MorphOneOrMany) ParentModel() interface{} { return r.Parent }
func (r *MorphOneOrMany) RelatedQuery() Query      { return r.Query }
func (r *MorphOneOrMany) RelationName() string     { return "" }

// MorphOne polymorphic one to one relation
type MorphOne struct {
	MorphOneOrMany
}

func (r *MorphOne) Type() Type { return MorphOneRel }

// MorphMany polymorphic one to many relation
type MorphMany struct {
	MorphOneOrMany
}

func (r *MorphMany) Type() Type { return MorphManyRel }

// MorphTo polymorphic inverse relation, the target model is read from the
// parent's stored discriminator
type MorphTo struct {
	Parent interface{}
	Query  Query
	// MorphID foreign key holding the target's key
	MorphID string
	// OwnerKey empty while pending
	OwnerKey   string
	MorphType  string
	Relation   string
	MorphValue string
}

func (r *MorphTo) Type() Type               { return MorphToRel }
func (r *MorphTo) ParentModel() interface{} { return r.Parent }
func (r *MorphTo) RelatedQuery() Query      { return r.Query }
func (r *MorphTo) RelationName() string     { return r.Relation }

// Pending no discriminator stored yet, the target is resolved once the
// parent is loaded
func (r *MorphTo) Pending() bool {
	return r.Query == nil
}

// BelongsToMany many to many relation, document store parents keep
// membership arrays instead of a pivot table
type BelongsToMany struct {
	Parent          interface{}
	Query           Query
	Collection      string
	ForeignPivotKey string
	RelatedPivotKey string
	ParentKey       string
	RelatedKey      string
	Relation        string
}

func (r *BelongsToMany) Type() Type               { return Many2ManyRel }
func (r *BelongsToMany) ParentModel() interface{} { return r.Parent }
func (r *BelongsToMany) RelatedQuery() Query      { return r.Query }
func (r *BelongsToMany) RelationName() string     { return r.Relation }

// Describe one line summary, `belongs_to author -> users`
func Describe(r Relation) string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(string(r.Type()))
	if name := r.RelationName(); name != "" {
		sb.WriteByte(' ')
		sb.WriteString(name)
	}

	sb.WriteString(" -> ")
	if query := r.RelatedQuery(); query != nil {
		sb.WriteString(query.Source())
	} else {
		sb.WriteString("<pending>")
	}
	return sb.String()
}

// Keys key names of a descriptor in declaration order
func Keys(r Relation) [][2]string {
	switch r := r.(type) {
	case *HasOne:
		return [][2]string{{"foreign_key", r.ForeignKey}, {"local_key", r.LocalKey}}
	case *HasMany:
		return [][2]string{{"foreign_key", r.ForeignKey}, {"local_key", r.LocalKey}}
	case *BelongsTo:
		return [][2]string{{"foreign_key", r.ForeignKey}, {"owner_key", r.OwnerKey}}
	case *MorphOne:
		return morphKeys(&r.MorphOneOrMany)
	case *MorphMany:
		return morphKeys(&r.MorphOneOrMany)
	case *MorphTo:
		return [][2]string{{"morph_type", r.MorphType}, {"morph_id", r.MorphID}, {"owner_key", r.OwnerKey}, {"morph_value", r.MorphValue}}
	case *BelongsToMany:
		return [][2]string{
			{"collection", r.Collection},
			{"foreign_pivot_key", r.ForeignPivotKey},
			{"related_pivot_key", r.RelatedPivotKey},
			{"parent_key", r.ParentKey},
			{"related_key", r.RelatedKey},
		}
	}
	return nil
}

func morphKeys(r *MorphOneOrMany) [][2]string {
	return [][2]string{{"morph_type", r.MorphType}, {"morph_id", r.MorphID}, {"local_key", r.LocalKey}, {"morph_class", r.MorphClass}}
}

// String `key=value` pairs of Keys
func String(r Relation) string {
	keys := Keys(r)
	pairs := make([]string, 0, len(keys))
	for _, kv := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", kv[0], kv[1]))
	}
	return strings.Join(pairs, " ")
}
