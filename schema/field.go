package schema

import (
	"go/ast"
	"reflect"
	"strings"
)

// FieldDBName document field name of a struct field, the json tag name wins over the naming strategy
func FieldDBName(field reflect.StructField, namer Namer) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return namer.ColumnName(field.Name)
}

// LookUpValue value of the exported field stored as dbName, nil pointers are reported as nil
func LookUpValue(dest interface{}, dbName string, namer Namer) (interface{}, bool) {
	value := reflect.ValueOf(dest)
	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, false
		}
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return nil, false
	}

	for _, field := range reflect.VisibleFields(value.Type()) {
		if field.Anonymous || !ast.IsExported(field.Name) {
			continue
		}

		if tag, ok := field.Tag.Lookup("json"); ok && tag == "-" {
			continue
		}

		if FieldDBName(field, namer) != dbName {
			continue
		}

		fieldValue, err := value.FieldByIndexErr(field.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			return nil, false
		}

		for fieldValue.Kind() == reflect.Ptr || fieldValue.Kind() == reflect.Interface {
			if fieldValue.IsNil() {
				return nil, true
			}
			fieldValue = fieldValue.Elem()
		}
		return fieldValue.Interface(), true
	}

	return nil, false
}
