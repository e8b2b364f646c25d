package toml

import (
	"fmt"
	"reflect"
	"strings"
)

// Unmarshal parses data into the struct pointed to by v
// Keys are matched against `toml` tags, falling back to field names;
// keys without a matching field are ignored
func Unmarshal(data []byte, v any) error {
	doc, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	return Decode(doc, v)
}

// Decode assigns a parsed document tree to v
func Decode(doc map[string]any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("toml: decode target must be a non-nil pointer")
	}
	return decodeValue(doc, rv.Elem())
}

func decodeValue(data any, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Ptr:
		target := reflect.New(v.Type().Elem())
		if err := decodeValue(data, target.Elem()); err != nil {
			return err
		}
		v.Set(target)

	case reflect.Struct:
		table, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected table, got %T", data)
		}
		return decodeStruct(table, v)

	case reflect.Slice:
		items, err := sliceItems(data)
		if err != nil {
			return err
		}
		out := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeValue(item, out.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		v.Set(out)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok {
			return fmt.Errorf("expected integer, got %T", data)
		}
		if v.OverflowInt(n) {
			return fmt.Errorf("integer %d overflows %s", n, v.Type())
		}
		v.SetInt(n)

	case reflect.Float32, reflect.Float64:
		switch f := data.(type) {
		case float64:
			v.SetFloat(f)
		case int64:
			v.SetFloat(float64(f))
		default:
			return fmt.Errorf("expected number, got %T", data)
		}

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", data)
		}
		v.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return fmt.Errorf("expected boolean, got %T", data)
		}
		v.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type %s", v.Type())
	}
	return nil
}

func sliceItems(data any) ([]any, error) {
	switch s := data.(type) {
	case []any:
		return s, nil
	case []map[string]any:
		items := make([]any, len(s))
		for i, m := range s {
			items[i] = m
		}
		return items, nil
	}
	return nil, fmt.Errorf("expected array, got %T", data)
}

func decodeStruct(table map[string]any, v reflect.Value) error {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key, skip := fieldKey(field)
		if skip {
			continue
		}
		data, ok := table[key]
		if !ok {
			continue
		}
		if err := decodeValue(data, v.Field(i)); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// fieldKey resolves the TOML key of a struct field and whether it is excluded
func fieldKey(field reflect.StructField) (key string, skip bool) {
	tag := field.Tag.Get("toml")
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return field.Name, false
}
