package cli

import (
	"fmt"

	"gorm.io/couchbase"
)

// Entity document model known only by name
type Entity struct {
	couchbase.Model
	Name string `json:"-"`
}

func (e *Entity) ModelName() string {
	return e.Name
}

// RelationalEntity relational model known only by name
type RelationalEntity struct {
	Name string `json:"-"`
}

func (e *RelationalEntity) ModelName() string {
	return e.Name
}

// RegisterEntities register documents as document models and every other
// name as relational model
func RegisterEntities(db *couchbase.DB, documents, relationals []string) error {
	for _, name := range documents {
		name := name
		if err := db.RegisterFactory(name, func() interface{} { return &Entity{Name: name} }); err != nil {
			return fmt.Errorf("document %s: %w", name, err)
		}
	}

	for _, name := range relationals {
		name := name
		if err := db.RegisterFactory(name, func() interface{} { return &RelationalEntity{Name: name} }); err != nil {
			return fmt.Errorf("relational %s: %w", name, err)
		}
	}
	return nil
}
