package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Namer naming conventions used to infer collections and relation keys
type Namer interface {
	TableName(model string) string
	ColumnName(field string) string
	ForeignKeyName(model, primaryKey string) string
	MembershipKeyName(foreignKey, primaryKey string) string
	JoinTableName(models ...string) string
	MorphKeys(name string) (typ, id string)
	RelationName(method string) string
}

// NamingStrategy collections, fields and relation keys naming strategy
type NamingStrategy struct {
	TablePrefix   string
	SingularTable bool
}

// TableName convert model name to collection name
func (ns NamingStrategy) TableName(model string) string {
	if ns.SingularTable {
		return ns.TablePrefix + toDBName(model)
	}
	return ns.TablePrefix + inflection.Plural(toDBName(model))
}

// ColumnName convert field name to document field name
func (ns NamingStrategy) ColumnName(field string) string {
	return toDBName(field)
}

// ForeignKeyName conventional foreign key of a model, `Post` -> `post_id`
func (ns NamingStrategy) ForeignKeyName(model, primaryKey string) string {
	return toDBName(model) + "_" + primaryKey
}

// MembershipKeyName array membership field of a many to many relation, derived
// from the foreign key: `user_id` -> `users`
func (ns NamingStrategy) MembershipKeyName(foreignKey, primaryKey string) string {
	if primaryKey != "" {
		if trimmed := strings.TrimSuffix(foreignKey, "_"+primaryKey); trimmed != "" {
			foreignKey = trimmed
		}
	}
	return inflection.Plural(foreignKey)
}

// JoinTableName relational pivot table name, singular model names in lexical order
func (ns NamingStrategy) JoinTableName(models ...string) string {
	names := make([]string, 0, len(models))
	for _, model := range models {
		names = append(names, inflection.Singular(toDBName(model)))
	}
	sort.Strings(names)
	return ns.TablePrefix + strings.Join(names, "_")
}

// MorphKeys type and id field names of a polymorphic relation
func (ns NamingStrategy) MorphKeys(name string) (string, string) {
	return name + "_type", name + "_id"
}

// RelationName relation name from a method name, `Author` -> `author`, `URLs` -> `urls`
func (ns NamingStrategy) RelationName(method string) string {
	if method == "" {
		return ""
	}

	runes := []rune(method)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}

	switch {
	case upper == 0:
		return method
	case upper == 1, upper == len(runes):
	case unicode.IsLetter(runes[upper]) && unicode.IsLower(runes[upper]):
		// keep the last upper rune as start of the next word, `URLTarget` -> `urlTarget`
		if runes[upper] != 's' || upper+1 < len(runes) {
			upper--
		}
	}

	for i := 0; i < upper; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	var commonInitialismsForReplacer []string
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, cases.Title(language.Und).String(initialism))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

// ToDBName convert name to snake case
func ToDBName(name string) string {
	return toDBName(name)
}

func toDBName(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return fmt.Sprint(v)
	}

	var (
		value                          = commonInitialismsReplacer.Replace(name)
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = value[0] <= 'Z' && value[0] >= 'A'
	)

	for i, v := range value[:len(value)-1] {
		nextCase = value[i+1] <= 'Z' && value[i+1] >= 'A'
		nextNumber = value[i+1] >= '0' && value[i+1] <= '9'

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(v + 32)
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(v + 32)
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[len(value)-1] + 32)
	} else {
		buf.WriteByte(value[len(value)-1])
	}

	result := buf.String()
	smap.Store(name, result)
	return result
}

// Studly convert a snake or kebab cased discriminator to a model name, `blog_post` -> `BlogPost`
func Studly(name string) string {
	var (
		buf   strings.Builder
		title = cases.Title(language.Und, cases.NoLower)
	)

	for _, part := range strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	}) {
		buf.WriteString(title.String(part))
	}
	return buf.String()
}
