package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gorm.io/couchbase"
	"gorm.io/couchbase/relation"
	"gorm.io/couchbase/utils"
)

// Resolve resolve every relation of the registered owner model
func Resolve(db *couchbase.DB, owner string, rels []RelationInfo) ([]relation.Relation, error) {
	model, err := db.NewModel(owner)
	if err != nil {
		return nil, err
	}

	results := make([]relation.Relation, 0, len(rels))
	for _, info := range rels {
		rel, err := resolve(db, model, info)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", info.Type, info.Name, err)
		}
		results = append(results, rel)
	}
	return results, nil
}

func resolve(db *couchbase.DB, owner interface{}, info RelationInfo) (relation.Relation, error) {
	morphName := info.MorphName
	if morphName == "" {
		morphName = info.Name
	}

	switch info.Type {
	case relation.HasOneRel:
		return db.HasOne(owner, info.Target)
	case relation.HasManyRel:
		return db.HasMany(owner, info.Target)
	case relation.BelongsToRel:
		return db.BelongsTo(owner, info.Target, couchbase.RelationName(info.Name))
	case relation.MorphOneRel:
		return db.MorphOne(owner, info.Target, morphName)
	case relation.MorphManyRel:
		return db.MorphMany(owner, info.Target, morphName)
	case relation.MorphToRel:
		if info.Target != "" {
			typ, _ := db.NamingStrategy.MorphKeys(info.Name)
			if doc, ok := owner.(*Entity); ok {
				doc.SetAttribute(typ, info.Target)
			}
		}
		return db.MorphTo(owner, couchbase.RelationName(info.Name))
	case relation.Many2ManyRel:
		return db.BelongsToMany(owner, info.Target, couchbase.RelationName(info.Name))
	}
	return nil, fmt.Errorf("%w: unsupported type %s", ErrInvalidRelation, info.Type)
}

// Explain print one line per resolved relation
func Explain(db *couchbase.DB, owner string, rels []RelationInfo, w io.Writer) error {
	results, err := Resolve(db, owner, rels)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tBACKEND\tSOURCE\tKEYS")
	for i, rel := range results {
		backend, source := "-", "<pending>"
		if query := rel.RelatedQuery(); query != nil {
			backend, source = string(query.Backend()), query.Source()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rels[i].Name, rel.Type(), backend, source, relation.String(rel))
	}

	return tw.Flush()
}

// RelationalTargets names referenced by owner and rels that are not documents
func RelationalTargets(documents []string, owner string, rels []RelationInfo) []string {
	var names []string
	for _, name := range append([]string{owner}, targets(rels)...) {
		if name != "" && !utils.Contains(documents, name) && !utils.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func targets(rels []RelationInfo) []string {
	names := make([]string, 0, len(rels))
	for _, rel := range rels {
		if rel.Type == relation.MorphToRel {
			continue
		}
		names = append(names, rel.Target)
	}
	return names
}
