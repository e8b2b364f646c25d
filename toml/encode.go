package toml

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Marshal encodes a struct as a TOML document
//
// Scalars of a table are written before its sub-tables, in field order.
// Struct fields become [table] sections and slices of structs become
// [[array]] sections. Nil pointers, `toml:"-"` fields and zero
// `omitempty` fields are skipped
func Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("toml: cannot marshal nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("toml: root must be a struct, got %s", rv.Kind())
	}

	var buf bytes.Buffer
	if err := encodeTable(&buf, rv, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type entry struct {
	key string
	val reflect.Value
}

func encodeTable(buf *bytes.Buffer, rv reflect.Value, prefix string) error {
	var scalars, tables []entry

	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key, skip := fieldKey(field)
		if skip {
			continue
		}

		val := rv.Field(i)
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				continue
			}
			val = val.Elem()
		}
		if strings.Contains(field.Tag.Get("toml"), ",omitempty") && val.IsZero() {
			continue
		}

		if isTable(val) {
			tables = append(tables, entry{key, val})
		} else {
			scalars = append(scalars, entry{key, val})
		}
	}

	for _, e := range scalars {
		buf.WriteString(quoteKey(e.key))
		buf.WriteString(" = ")
		if err := encodeValue(buf, e.val); err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		buf.WriteByte('\n')
	}

	for _, e := range tables {
		path := quoteKey(e.key)
		if prefix != "" {
			path = prefix + "." + path
		}

		if e.val.Kind() == reflect.Struct {
			fmt.Fprintf(buf, "\n[%s]\n", path)
			if err := encodeTable(buf, e.val, path); err != nil {
				return err
			}
			continue
		}

		for i := 0; i < e.val.Len(); i++ {
			elem := e.val.Index(i)
			if elem.Kind() == reflect.Ptr {
				if elem.IsNil() {
					continue
				}
				elem = elem.Elem()
			}
			fmt.Fprintf(buf, "\n[[%s]]\n", path)
			if err := encodeTable(buf, elem, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeValue(buf *bytes.Buffer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.String:
		buf.WriteString(quote(v.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(v.Float(), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		buf.WriteString(s)
	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := encodeValue(buf, v.Index(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unsupported value type %s", v.Type())
	}
	return nil
}

// isTable reports whether v is written as a section rather than inline
func isTable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct:
		return true
	case reflect.Slice, reflect.Array:
		elem := v.Type().Elem()
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		return elem.Kind() == reflect.Struct
	}
	return false
}

var escaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`, "\b", `\b`, "\f", `\f`,
)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// quoteKey leaves keys bare unless the lexer would read them as something else
func quoteKey(k string) string {
	if k == "" || k == "true" || k == "false" || !isBareChar(k[0]) || isDigit(k[0]) || k[0] == '-' {
		return quote(k)
	}
	for i := 0; i < len(k); i++ {
		if !isBareChar(k[i]) {
			return quote(k)
		}
	}
	return k
}
