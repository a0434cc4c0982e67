package serializer

import (
	"bytes"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/fatih/color"
	"reflect"
	"sort"
	"strings"
)

// NewTextSerializer creates a serializer rendering records as "key: value" lines.
// If colored is true the keys are highlighted.
func NewTextSerializer(colored bool) IResultSerializer {
	key := color.New(color.FgCyan, color.Bold)
	if colored {
		key.EnableColor()
	} else {
		key.DisableColor()
	}
	return &textSerializerImpl{key: key}
}

// textSerializerImpl implements the IResultSerializer interface for terminals
type textSerializerImpl struct {
	key *color.Color
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IResultSerializer)
// --------------------------------------------------------------------------

func (t textSerializerImpl) Serialize(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	t.write(&buf, reflect.ValueOf(v))
	return buf.Bytes(), nil
}

func (t textSerializerImpl) Deserialize(_ []byte, _ interface{}) error {
	return ErrWriteOnly
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// write renders maps as blocks of lines, lists as one entry per line (blocks are
// separated by an empty line) and everything else as a single line
func (t textSerializerImpl) write(buf *bytes.Buffer, v reflect.Value) {
	v = indirect(v)
	if !v.IsValid() {
		buf.WriteString("-\n")
		return
	}

	switch v.Kind() {
	case reflect.Map:
		t.writeMap(buf, v)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			buf.WriteString(formatScalar(v))
			buf.WriteByte('\n')
			return
		}
		for i := 0; i < v.Len(); i++ {
			elem := indirect(v.Index(i))
			if elem.IsValid() && elem.Kind() == reflect.Map {
				if i > 0 {
					buf.WriteByte('\n')
				}
				t.writeMap(buf, elem)
				continue
			}
			buf.WriteString(formatScalar(elem))
			buf.WriteByte('\n')
		}
	default:
		buf.WriteString(formatScalar(v))
		buf.WriteByte('\n')
	}
}

func (t textSerializerImpl) writeMap(buf *bytes.Buffer, m reflect.Value) {
	keys := make([]string, 0, m.Len())
	values := make(map[string]reflect.Value, m.Len())
	for _, k := range m.MapKeys() {
		name := fmt.Sprint(k.Interface())
		keys = append(keys, name)
		values[name] = m.MapIndex(k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(buf, "%s: %s\n", t.key.Sprint(k), formatScalar(indirect(values[k])))
	}
}

// formatScalar renders a value on a single line. Nested lists are comma separated,
// nested maps use the "{k=v, ...}" form.
func formatScalar(v reflect.Value) string {
	if !v.IsValid() {
		return "-"
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return fmt.Sprintf("%q", v.Bytes())
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatScalar(indirect(v.Index(i)))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		values := make(map[string]reflect.Value, v.Len())
		for _, k := range v.MapKeys() {
			name := fmt.Sprint(k.Interface())
			keys = append(keys, name)
			values[name] = v.MapIndex(k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + formatScalar(indirect(values[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return common.ToString(v.Interface())
	}
}

// indirect unwraps interfaces and pointers
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
