package protocol

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"google.golang.org/protobuf/encoding/protowire"
)

// fieldcodec.go implements a small reflection-driven protobuf field
// walker on top of protowire's varint/length-delimited primitives. Each
// message struct tags its fields with `pb:"<number>"`; the Go field type
// (pointer-to-scalar for proto2 optional, slice for repeated, pointer-
// to-struct for an embedded message) determines the wire type, so the
// ~45 Trezor/KeepKey message shapes in the closed label union need no
// per-message marshal code, only a struct declaration each.
//
// This exists because no protoc toolchain is available in this
// environment to regenerate the upstream messages-*.proto schemas into
// .pb.go stubs (see the real protoc-gen-go output shipped as reference
// material alongside this pack); protowire is the same runtime those
// generated stubs build on, used here one layer lower.

type fieldMeta struct {
	num   protowire.Number
	index []int
}

var fieldCache sync.Map // map[reflect.Type][]fieldMeta

func fieldsOf(t reflect.Type) []fieldMeta {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldMeta)
	}
	var metas []fieldMeta
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("pb")
		if tag == "" {
			continue
		}
		n, err := strconv.Atoi(strings.SplitN(tag, ",", 2)[0])
		if err != nil {
			continue
		}
		metas = append(metas, fieldMeta{num: protowire.Number(n), index: sf.Index})
	}
	fieldCache.Store(t, metas)
	return metas
}

// Marshal encodes msg (a pointer to a struct with "pb" tags) into
// protobuf wire bytes.
func Marshal(msg any) ([]byte, error) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, fmt.Errorf("protocol: Marshal requires a non-nil pointer, got %T", msg)
	}
	return marshalStruct(v.Elem())
}

func marshalStruct(v reflect.Value) ([]byte, error) {
	var out []byte
	for _, fm := range fieldsOf(v.Type()) {
		fv := v.FieldByIndex(fm.index)
		enc, err := marshalField(fm.num, fv)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

func marshalField(num protowire.Number, fv reflect.Value) ([]byte, error) {
	switch fv.Kind() {
	case reflect.Ptr:
		if fv.IsNil() {
			return nil, nil
		}
		elem := fv.Elem()
		if elem.Kind() == reflect.Struct {
			body, err := marshalStruct(elem)
			if err != nil {
				return nil, err
			}
			var out []byte
			out = protowire.AppendTag(out, num, protowire.BytesType)
			out = protowire.AppendBytes(out, body)
			return out, nil
		}
		// A set proto2 optional is emitted even when its value is zero.
		return marshalScalar(num, elem, true)
	case reflect.Struct:
		body, err := marshalStruct(fv)
		if err != nil {
			return nil, err
		}
		if len(body) == 0 {
			return nil, nil
		}
		var out []byte
		out = protowire.AppendTag(out, num, protowire.BytesType)
		out = protowire.AppendBytes(out, body)
		return out, nil
	case reflect.Slice:
		return marshalRepeated(num, fv)
	case reflect.String:
		if fv.Len() == 0 {
			return nil, nil
		}
		var out []byte
		out = protowire.AppendTag(out, num, protowire.BytesType)
		out = protowire.AppendBytes(out, []byte(fv.String()))
		return out, nil
	default:
		return marshalScalar(num, fv, false)
	}
}

func marshalScalar(num protowire.Number, fv reflect.Value, keepZero bool) ([]byte, error) {
	var out []byte
	switch fv.Kind() {
	case reflect.Bool:
		if !fv.Bool() && !keepZero {
			return nil, nil
		}
		var b uint64
		if fv.Bool() {
			b = 1
		}
		out = protowire.AppendTag(out, num, protowire.VarintType)
		out = protowire.AppendVarint(out, b)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		if fv.Uint() == 0 && !keepZero {
			return nil, nil
		}
		out = protowire.AppendTag(out, num, protowire.VarintType)
		out = protowire.AppendVarint(out, fv.Uint())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		if fv.Int() == 0 && !keepZero {
			return nil, nil
		}
		out = protowire.AppendTag(out, num, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(fv.Int()))
	default:
		return nil, fmt.Errorf("protocol: unsupported scalar kind %s", fv.Kind())
	}
	return out, nil
}

func marshalRepeated(num protowire.Number, fv reflect.Value) ([]byte, error) {
	if fv.Len() == 0 {
		return nil, nil
	}
	elemKind := fv.Type().Elem().Kind()
	if elemKind == reflect.Uint8 {
		// []byte is a single bytes field, not repeated.
		var out []byte
		out = protowire.AppendTag(out, num, protowire.BytesType)
		out = protowire.AppendBytes(out, fv.Bytes())
		return out, nil
	}
	var out []byte
	if elemKind == reflect.Struct || elemKind == reflect.Ptr {
		for i := 0; i < fv.Len(); i++ {
			enc, err := marshalField(num, fv.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	}
	// Packed repeated varint.
	var packed []byte
	for i := 0; i < fv.Len(); i++ {
		packed = protowire.AppendVarint(packed, asUint64(fv.Index(i)))
	}
	out = protowire.AppendTag(out, num, protowire.BytesType)
	out = protowire.AppendBytes(out, packed)
	return out, nil
}

func asUint64(v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int())
	default:
		return v.Uint()
	}
}

// Unmarshal decodes protobuf wire bytes into msg (a pointer to a struct
// with "pb" tags), skipping unknown field numbers.
func Unmarshal(data []byte, msg any) error {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("protocol: Unmarshal requires a non-nil pointer, got %T", msg)
	}
	return unmarshalStruct(data, v.Elem())
}

func unmarshalStruct(data []byte, v reflect.Value) error {
	metas := fieldsOf(v.Type())
	index := make(map[protowire.Number]fieldMeta, len(metas))
	for _, fm := range metas {
		index[fm.num] = fm
	}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("protocol: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		var raw []byte
		var scalar uint64
		var isScalar bool
		switch typ {
		case protowire.VarintType:
			val, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("protocol: malformed varint: %w", protowire.ParseError(n))
			}
			data = data[n:]
			scalar, isScalar = val, true
		case protowire.BytesType:
			val, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("protocol: malformed bytes: %w", protowire.ParseError(n))
			}
			data = data[n:]
			raw = val
		case protowire.Fixed32Type:
			val, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return fmt.Errorf("protocol: malformed fixed32: %w", protowire.ParseError(n))
			}
			data = data[n:]
			scalar, isScalar = uint64(val), true
		case protowire.Fixed64Type:
			val, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return fmt.Errorf("protocol: malformed fixed64: %w", protowire.ParseError(n))
			}
			data = data[n:]
			scalar, isScalar = val, true
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("protocol: malformed field: %w", protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		fm, ok := index[num]
		if !ok {
			continue // unknown field, forward-compatible skip
		}
		fv := v.FieldByIndex(fm.index)
		if err := assignField(fv, raw, scalar, isScalar); err != nil {
			return err
		}
	}
	return nil
}

func assignField(fv reflect.Value, raw []byte, scalar uint64, isScalar bool) error {
	switch fv.Kind() {
	case reflect.Ptr:
		elemType := fv.Type().Elem()
		if elemType.Kind() == reflect.Struct {
			sub := reflect.New(elemType)
			if err := unmarshalStruct(raw, sub.Elem()); err != nil {
				return err
			}
			fv.Set(sub)
			return nil
		}
		nv := reflect.New(elemType)
		if err := setScalar(nv.Elem(), raw, scalar, isScalar); err != nil {
			return err
		}
		fv.Set(nv)
		return nil
	case reflect.Struct:
		return unmarshalStruct(raw, fv)
	case reflect.Slice:
		elemType := fv.Type().Elem()
		if elemType.Kind() == reflect.Uint8 {
			fv.SetBytes(append([]byte(nil), raw...))
			return nil
		}
		if elemType.Kind() == reflect.Struct {
			sub := reflect.New(elemType)
			if err := unmarshalStruct(raw, sub.Elem()); err != nil {
				return err
			}
			fv.Set(reflect.Append(fv, sub.Elem()))
			return nil
		}
		if elemType.Kind() == reflect.Ptr {
			sub := reflect.New(elemType.Elem())
			if err := unmarshalStruct(raw, sub.Elem()); err != nil {
				return err
			}
			fv.Set(reflect.Append(fv, sub))
			return nil
		}
		// Packed repeated varint.
		rest := raw
		for len(rest) > 0 {
			val, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return fmt.Errorf("protocol: malformed packed varint: %w", protowire.ParseError(n))
			}
			rest = rest[n:]
			elem := reflect.New(elemType).Elem()
			if err := setScalar(elem, nil, val, true); err != nil {
				return err
			}
			fv.Set(reflect.Append(fv, elem))
		}
		return nil
	case reflect.String:
		fv.SetString(string(raw))
		return nil
	default:
		return setScalar(fv, raw, scalar, isScalar)
	}
}

func setScalar(fv reflect.Value, raw []byte, scalar uint64, isScalar bool) error {
	switch fv.Kind() {
	case reflect.Bool:
		fv.SetBool(scalar != 0)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		if !isScalar {
			return fmt.Errorf("protocol: expected varint for uint field")
		}
		fv.SetUint(scalar)
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		if !isScalar {
			return fmt.Errorf("protocol: expected varint for int field")
		}
		fv.SetInt(int64(scalar))
	case reflect.String:
		fv.SetString(string(raw))
	default:
		return fmt.Errorf("protocol: unsupported scalar kind %s", fv.Kind())
	}
	return nil
}
