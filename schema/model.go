package schema

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidModel model is nil, not a struct or can't be instantiated
var ErrInvalidModel = errors.New("invalid model")

// Model naming conventions of one model type
type Model struct {
	Name       string
	Table      string
	PrimaryKey string
	ForeignKey string
	ModelType  reflect.Type
}

// ModelNamer overrides the name conventions are derived from
type ModelNamer interface {
	ModelName() string
}

// Tabler overrides the collection or table name
type Tabler interface {
	TableName() string
}

// KeyNamer overrides the primary key name, `id` by default
type KeyNamer interface {
	KeyName() string
}

// ForeignKeyer overrides the conventional foreign key name
type ForeignKeyer interface {
	ForeignKey() string
}

// DefaultPrimaryKey primary key name of models without KeyName
const DefaultPrimaryKey = "id"

func (model Model) String() string {
	if model.ModelType == nil {
		return model.Name
	}
	return fmt.Sprintf("%v.%v", model.ModelType.PkgPath(), model.Name)
}

// ModelType indirect struct type of dest
func ModelType(dest interface{}) (reflect.Type, error) {
	if dest == nil {
		return nil, ErrInvalidModel
	}

	modelType := reflect.TypeOf(dest)
	for modelType.Kind() == reflect.Slice || modelType.Kind() == reflect.Array || modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	if modelType.Kind() != reflect.Struct {
		if modelType.PkgPath() == "" {
			return nil, fmt.Errorf("%w: unsupported data %+v", ErrInvalidModel, dest)
		}
		return nil, fmt.Errorf("%w: unsupported data type %v.%v", ErrInvalidModel, modelType.PkgPath(), modelType.Name())
	}
	return modelType, nil
}

// New returns a fresh zero valued instance of dest's model type
func New(dest interface{}) (interface{}, error) {
	modelType, err := ModelType(dest)
	if err != nil {
		return nil, err
	}
	return reflect.New(modelType).Interface(), nil
}

// Parse read the naming conventions of dest
func Parse(dest interface{}, namer Namer) (*Model, error) {
	modelType, err := ModelType(dest)
	if err != nil {
		return nil, err
	}

	value := reflect.ValueOf(dest)
	if value.Kind() == reflect.Ptr && value.IsNil() {
		dest = reflect.New(modelType).Interface()
	}

	model := &Model{
		Name:       modelType.Name(),
		PrimaryKey: DefaultPrimaryKey,
		ModelType:  modelType,
	}

	if namer, ok := dest.(ModelNamer); ok {
		if name := namer.ModelName(); name != "" {
			model.Name = name
		}
	}

	if model.Name == "" {
		return nil, fmt.Errorf("%w: anonymous struct %v", ErrInvalidModel, modelType)
	}

	if keyNamer, ok := dest.(KeyNamer); ok && keyNamer.KeyName() != "" {
		model.PrimaryKey = keyNamer.KeyName()
	}

	if tabler, ok := dest.(Tabler); ok && tabler.TableName() != "" {
		model.Table = tabler.TableName()
	} else {
		model.Table = namer.TableName(model.Name)
	}

	if foreignKeyer, ok := dest.(ForeignKeyer); ok && foreignKeyer.ForeignKey() != "" {
		model.ForeignKey = foreignKeyer.ForeignKey()
	} else {
		model.ForeignKey = namer.ForeignKeyName(model.Name, model.PrimaryKey)
	}

	return model, nil
}
