package reconcile

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"table-sync/core/utils"
)

// Kind identifies the scalar kind held by a Value.
type Kind uint8

const (
	// KindNull is a SQL NULL or a nil Go value.
	KindNull Kind = iota
	// KindString holds text (including []byte column data).
	KindString
	// KindInt holds any signed or unsigned integer.
	KindInt
	// KindFloat holds float32/float64 values.
	KindFloat
	// KindBool holds booleans.
	KindBool
	// KindTime holds timestamps.
	KindTime
	// KindUnknown holds a value of an unsupported Go type; it never converts.
	KindUnknown
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// timePrecision is the finest resolution kept when comparing timestamps.
// Postgres and MySQL both store microseconds.
const timePrecision = time.Microsecond

// Value is a tagged union over the scalar kinds a source row or a destination field can hold.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
	raw  any
}

// Null is the NULL value.
var Null = Value{kind: KindNull}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// IntValue wraps an integer.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue wraps a float.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// TimeValue wraps a timestamp.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

// ValueOf classifies a Go value, as returned by database drivers, into a Value.
// Pointers are dereferenced and driver.Valuer implementations (sql.NullString etc.) are unwrapped.
// Types outside the supported scalar set become KindUnknown.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case Value:
		return x
	case string:
		return StringValue(x)
	case []byte:
		return StringValue(string(x))
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint, uint8, uint16, uint32, uint64:
		i, err := utils.ToInt64(x)
		if err != nil {
			return Value{kind: KindUnknown, raw: v}
		}
		return IntValue(i)
	case float32:
		f, _ := utils.ToFloat64(x)
		return FloatValue(f)
	case float64:
		return FloatValue(x)
	case bool:
		return BoolValue(x)
	case time.Time:
		return TimeValue(x)
	case driver.Valuer:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return Null
		}
		dv, err := x.Value()
		if err != nil {
			return Value{kind: KindUnknown, raw: v}
		}
		return ValueOf(dv)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Null
		}
		return ValueOf(rv.Elem().Interface())
	}
	return Value{kind: KindUnknown, raw: v}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface returns the value as a plain Go value suitable for database drivers.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindUnknown:
		return v.raw
	default:
		return nil
	}
}

// String renders the canonical text form of the value.
// Floats carry no exponent, times are rendered on the wall clock.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return wallClock(v.t)
	default:
		return fmt.Sprintf("%v", v.raw)
	}
}

// Key returns the canonical string used to address an entity by this value.
// 5, 5.0 and "5" share a key; other spellings such as "5.00" only match once coerced to the
// destination field type (see Candidates). NULL and unknown values have no key.
func (v Value) Key() (string, bool) {
	switch v.kind {
	case KindNull, KindUnknown:
		return "", false
	case KindFloat:
		if i, err := utils.ToInt64(v.f); err == nil {
			return strconv.FormatInt(i, 10), true
		}
	case KindBool:
		if v.b {
			return "1", true
		}
		return "0", true
	}
	return v.String(), true
}

// AsString converts the value to a string. NULL is rejected.
func (v Value) AsString() (string, error) {
	switch v.kind {
	case KindNull:
		return "", ErrNullValue
	case KindUnknown:
		return "", fmt.Errorf("%w: %T", ErrTypeMismatch, v.raw)
	case KindTime:
		return v.t.Format(time.RFC3339Nano), nil
	}
	return v.String(), nil
}

// AsInt converts the value to an int64. NULL is rejected.
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case KindNull:
		return 0, ErrNullValue
	case KindInt:
		return v.i, nil
	case KindTime, KindUnknown:
		return 0, fmt.Errorf("%w: %s to int", ErrTypeMismatch, v.kind)
	}
	i, err := utils.ToInt64(v.Interface())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return i, nil
}

// AsFloat converts the value to a float64. NULL is rejected.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindNull:
		return 0, ErrNullValue
	case KindFloat:
		return v.f, nil
	case KindTime, KindUnknown:
		return 0, fmt.Errorf("%w: %s to float", ErrTypeMismatch, v.kind)
	}
	f, err := utils.ToFloat64(v.Interface())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return f, nil
}

// AsBool converts the value to a bool. NULL is rejected.
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindNull:
		return false, ErrNullValue
	case KindBool:
		return v.b, nil
	case KindTime, KindUnknown:
		return false, fmt.Errorf("%w: %s to bool", ErrTypeMismatch, v.kind)
	}
	b, err := utils.ToBool(v.Interface())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return b, nil
}

// AsTime converts the value to a time.Time. NULL is rejected.
func (v Value) AsTime() (time.Time, error) {
	switch v.kind {
	case KindNull:
		return time.Time{}, ErrNullValue
	case KindTime:
		return v.t, nil
	case KindString:
		t, err := utils.ParseTime(v.s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s to time", ErrTypeMismatch, v.kind)
}

// Equal compares two values after normalizing them to a common representation.
//
//   - int and float compare numerically
//   - a number and a string compare numerically when the string parses
//   - a time and a string compare as times when the string parses
//   - times compare on the wall clock at microsecond precision
//   - bool and int compare as 0/1
//
// Anything else falls back to the canonical string form.
func (v Value) Equal(o Value) bool {
	if v.kind == KindNull || o.kind == KindNull {
		return v.kind == o.kind
	}
	if v.kind == KindUnknown || o.kind == KindUnknown {
		return v.kind == o.kind && reflect.DeepEqual(v.raw, o.raw)
	}
	if v.kind == o.kind {
		switch v.kind {
		case KindString:
			return v.s == o.s
		case KindInt:
			return v.i == o.i
		case KindFloat:
			return v.f == o.f
		case KindBool:
			return v.b == o.b
		case KindTime:
			return wallClock(v.t) == wallClock(o.t)
		}
	}

	if v.kind == KindTime || o.kind == KindTime {
		a, errA := v.AsTime()
		b, errB := o.AsTime()
		if errA != nil || errB != nil {
			return false
		}
		return wallClock(a) == wallClock(b)
	}
	if v.kind == KindBool || o.kind == KindBool {
		a, errA := v.AsBool()
		b, errB := o.AsBool()
		return errA == nil && errB == nil && a == b
	}
	if v.isNumeric() || o.isNumeric() {
		a, errA := v.AsFloat()
		b, errB := o.AsFloat()
		if errA == nil && errB == nil {
			return a == b
		}
	}
	return v.String() == o.String()
}

func (v Value) isNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// wallClock renders t without its location, truncated to timePrecision.
// Destination columns are timestamps without time zone, so two values naming the same
// wall-clock instant are considered equal whatever zone the driver attached.
func wallClock(t time.Time) string {
	return t.Truncate(timePrecision).Format("2006-01-02T15:04:05.999999")
}
