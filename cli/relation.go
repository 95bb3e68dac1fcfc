package cli

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/couchbase/relation"
)

// ErrInvalidRelation malformed relation flag
var ErrInvalidRelation = errors.New("invalid relation")

// RelationInfo one relation of the owner, `name:Target:type[:morph]`
type RelationInfo struct {
	Name   string
	Target string
	Type   relation.Type
	// MorphName base name of morph one / many keys, the relation name by default
	MorphName string
}

var relationTypes = map[string]relation.Type{
	"has_one":      relation.HasOneRel,
	"has_many":     relation.HasManyRel,
	"one2many":     relation.HasManyRel,
	"belongs_to":   relation.BelongsToRel,
	"morph_one":    relation.MorphOneRel,
	"morph_many":   relation.MorphManyRel,
	"morph_to":     relation.MorphToRel,
	"many_to_many": relation.Many2ManyRel,
	"many2many":    relation.Many2ManyRel,
}

// ParseRelations parse `comments:Comment:has_many,author:User:belongs_to`,
// the target of a morph_to relation is the stored morph type and may be empty
func ParseRelations(value string) ([]RelationInfo, error) {
	var rels []RelationInfo
	for _, r := range strings.Split(value, ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}

		parts := strings.Split(r, ":")
		if len(parts) != 3 && len(parts) != 4 {
			return nil, fmt.Errorf("%w: %q, expected name:Target:type[:morph]", ErrInvalidRelation, r)
		}

		typ, ok := relationTypes[strings.ToLower(parts[2])]
		if !ok {
			return nil, fmt.Errorf("%w: unknown type %q in %q", ErrInvalidRelation, parts[2], r)
		}

		info := RelationInfo{Name: parts[0], Target: parts[1], Type: typ}
		if info.Name == "" || (info.Target == "" && typ != relation.MorphToRel) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRelation, r)
		}

		if len(parts) == 4 {
			info.MorphName = parts[3]
		}
		rels = append(rels, info)
	}
	return rels, nil
}

// ParseList parse a comma separated list of model names
func ParseList(value string) []string {
	var names []string
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
