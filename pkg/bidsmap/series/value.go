package series

import "strconv"

// Kind discriminates the scalar kinds a tag value can take
type Kind int

const (
	// KindAbsent marks a value that could not be extracted
	KindAbsent Kind = iota
	// KindInt is an integer value
	KindInt
	// KindText is a text value
	KindText
)

// Value is a scalar extracted from a DICOM file, normalized to either an
// integer or text. The zero Value is absent.
type Value struct {
	kind Kind
	i    int64
	s    string
}

// Absent returns the absent value
func Absent() Value {
	return Value{}
}

// Int returns an integer value
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Text returns a text value
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is absent
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Int returns the integer payload. It is zero unless Kind is KindInt.
func (v Value) Int() int64 {
	return v.i
}

// Text returns the text payload. It is empty unless Kind is KindText.
func (v Value) Text() string {
	return v.s
}

// String renders the value for logs and stored attribute dumps. Absent
// values render as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindText:
		return v.s
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and payload. Two
// absent values compare equal; an absent value never equals a present one.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindText:
		return v.s == other.s
	default:
		return true
	}
}
