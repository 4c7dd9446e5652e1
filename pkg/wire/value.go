package wire

// Kind discriminates the payload carried by a [Value].
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindUint32
	KindInt32
	KindUint64
	KindInt64
	KindDouble
	KindString
	KindObjectPath
	KindSignature
	KindVariant
	KindArray
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindUint32:
		return "uint32"
	case KindInt32:
		return "int32"
	case KindUint64:
		return "uint64"
	case KindInt64:
		return "int64"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindObjectPath:
		return "object_path"
	case KindSignature:
		return "signature"
	case KindVariant:
		return "variant"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	default:
		return "invalid"
	}
}

// Value is the tagged union representing every piece of data exchangeable
// over the bus. The dispatch core only pattern-matches on it; encoding it
// to the wire format is the transport's concern.
type Value struct {
	kind Kind
	b    bool
	u    uint64
	i    int64
	f    float64
	s    string
	elem []Value
	dict map[string]Value
}

func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

func Uint32(v uint32) Value {
	return Value{kind: KindUint32, u: uint64(v)}
}

func Int32(v int32) Value {
	return Value{kind: KindInt32, i: int64(v)}
}

func Uint64(v uint64) Value {
	return Value{kind: KindUint64, u: v}
}

func Int64(v int64) Value {
	return Value{kind: KindInt64, i: v}
}

func Double(v float64) Value {
	return Value{kind: KindDouble, f: v}
}

func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// ObjectPath is a string constrained to the bus object path grammar.
// The grammar itself is not enforced here, see the package doc.
func ObjectPath(v string) Value {
	return Value{kind: KindObjectPath, s: v}
}

// Signature is a string holding a type signature.
func Signature(v string) Value {
	return Value{kind: KindSignature, s: v}
}

// Variant wraps any Value so it can travel through a `v`-typed slot.
func Variant(inner Value) Value {
	return Value{kind: KindVariant, elem: []Value{inner}}
}

func Array(elems ...Value) Value {
	return Value{kind: KindArray, elem: elems}
}

// Dict is a dictionary keyed by a basic string value.
func Dict(entries map[string]Value) Value {
	return Value{kind: KindDict, dict: entries}
}

func (v Value) Kind() Kind {
	return v.kind
}

// AsString reports the string payload of a string-kinded Value.
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case KindString, KindObjectPath, KindSignature:
		return v.s, true
	default:
		return "", false
	}
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsUint32() (uint32, bool) {
	if v.kind != KindUint32 {
		return 0, false
	}
	return uint32(v.u), true
}

func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt64 && v.kind != KindInt32 {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsDouble() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.f, true
}

// AsVariant unwraps one layer of variant.
func (v Value) AsVariant() (Value, bool) {
	if v.kind != KindVariant || len(v.elem) != 1 {
		return Value{}, false
	}
	return v.elem[0], true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.elem, true
}

func (v Value) AsDict() (map[string]Value, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	return v.dict, true
}
