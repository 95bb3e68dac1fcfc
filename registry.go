package couchbase

import (
	"fmt"
	"reflect"
	"sync"

	"gorm.io/couchbase/schema"
)

type registry struct {
	mu        sync.RWMutex
	namer     schema.Namer
	factories map[string]func() interface{}
	types     map[string]reflect.Type
	aliases   map[string]string
	classes   map[string]string
}

func newRegistry(namer schema.Namer) *registry {
	return &registry{
		namer:     namer,
		factories: map[string]func() interface{}{},
		types:     map[string]reflect.Type{},
		aliases:   map[string]string{},
		classes:   map[string]string{},
	}
}

func (r *registry) register(model interface{}) (string, error) {
	parsed, err := schema.Parse(model, r.namer)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if registered, ok := r.types[parsed.Name]; ok {
		if registered != parsed.ModelType {
			return "", fmt.Errorf("%w: model %s as %v", ErrRegistered, parsed.Name, registered)
		}
		return parsed.Name, nil
	}

	if _, ok := r.factories[parsed.Name]; ok {
		return "", fmt.Errorf("%w: model %s", ErrRegistered, parsed.Name)
	}

	modelType := parsed.ModelType
	r.types[parsed.Name] = modelType
	r.factories[parsed.Name] = func() interface{} {
		return reflect.New(modelType).Interface()
	}
	return parsed.Name, nil
}

func (r *registry) registerFactory(name string, fc func() interface{}) error {
	if name == "" || fc == nil {
		return fmt.Errorf("%w: empty factory %q", ErrInvalidModel, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: model %s", ErrRegistered, name)
	}
	r.factories[name] = fc
	return nil
}

func (r *registry) alias(alias, name string) error {
	if alias == "" || name == "" {
		return fmt.Errorf("%w: morph alias %q -> %q", ErrInvalidConfig, alias, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if registered, ok := r.aliases[alias]; ok {
		if registered != name {
			return fmt.Errorf("%w: morph alias %s for %s", ErrRegistered, alias, registered)
		}
		return nil
	}

	r.aliases[alias] = name
	if _, ok := r.classes[name]; !ok {
		r.classes[name] = alias
	}
	return nil
}

func (r *registry) newModel(name string) (interface{}, error) {
	r.mu.RLock()
	fc, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotRegistered, name)
	}
	return fc(), nil
}

// morphModel instance of the model a stored discriminator denotes, looked up
// as alias, model name, then studly cased model name
func (r *registry) morphModel(discriminator string) (interface{}, error) {
	r.mu.RLock()
	name, aliased := r.aliases[discriminator]
	if !aliased {
		name = discriminator
	}

	fc, ok := r.factories[name]
	if !ok && !aliased {
		fc, ok = r.factories[schema.Studly(discriminator)]
	}
	r.mu.RUnlock()

	switch {
	case ok:
		return fc(), nil
	case aliased:
		return nil, fmt.Errorf("%w: morph alias %s maps to %s", ErrModelNotRegistered, discriminator, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMorphType, discriminator)
	}
}

func (r *registry) morphClass(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if alias, ok := r.classes[name]; ok {
		return alias
	}
	return name
}

// Register register model prototypes by model name, related models can then
// be given by name
func (db *DB) Register(models ...interface{}) error {
	for _, model := range models {
		name, err := db.registry.register(model)
		if err != nil {
			return err
		}
		db.Logger.Info(db.ctx, "registered model %s", name)
	}
	return nil
}

// RegisterFactory register a constructor for models whose name is not their Go type name
func (db *DB) RegisterFactory(name string, fc func() interface{}) error {
	return db.registry.registerFactory(name, fc)
}

// RegisterMorph map a morph type alias to a model, given as instance or registered name,
// the first alias of a model becomes its morph class
func (db *DB) RegisterMorph(alias string, model interface{}) error {
	name, ok := model.(string)
	if !ok {
		var err error
		if name, err = db.registry.register(model); err != nil {
			return err
		}
	}
	return db.registry.alias(alias, name)
}

// NewModel fresh instance of a registered model
func (db *DB) NewModel(name string) (interface{}, error) {
	return db.registry.newModel(name)
}

// MorphClass discriminator stored in morph type fields for model
func (db *DB) MorphClass(model interface{}) (string, error) {
	if classer, ok := model.(MorphClasser); ok {
		if class := classer.MorphClass(); class != "" {
			return class, nil
		}
	}

	parsed, err := schema.Parse(model, db.NamingStrategy)
	if err != nil {
		return "", err
	}
	return db.registry.morphClass(parsed.Name), nil
}
