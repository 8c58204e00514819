// Package hbase is a Go binding for the subset of the HBase Thrift2 service
// declared in ../hbase.thrift. Field ids follow the upstream IDL so unknown
// fields sent by newer gateways are skipped on decode.
package hbase

import (
	"context"
	"fmt"
	"sort"

	"github.com/apache/thrift/lib/go/thrift"
)

func writeField(ctx context.Context, p thrift.TProtocol, name string, typ thrift.TType, id int16, value func() error) error {
	if err := p.WriteFieldBegin(ctx, name, typ, id); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T write field begin error %d:%s: ", p, id, name), err)
	}
	if err := value(); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T.%s (%d) field write error: ", p, name, id), err)
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T write field end error %d:%s: ", p, id, name), err)
	}
	return nil
}

func writeBinary(ctx context.Context, p thrift.TProtocol, name string, id int16, b []byte) error {
	return writeField(ctx, p, name, thrift.STRING, id, func() error { return p.WriteBinary(ctx, b) })
}

func writeString(ctx context.Context, p thrift.TProtocol, name string, id int16, s string) error {
	return writeField(ctx, p, name, thrift.STRING, id, func() error { return p.WriteString(ctx, s) })
}

func writeI32(ctx context.Context, p thrift.TProtocol, name string, id int16, n int32) error {
	return writeField(ctx, p, name, thrift.I32, id, func() error { return p.WriteI32(ctx, n) })
}

func writeI64(ctx context.Context, p thrift.TProtocol, name string, id int16, n int64) error {
	return writeField(ctx, p, name, thrift.I64, id, func() error { return p.WriteI64(ctx, n) })
}

func writeBool(ctx context.Context, p thrift.TProtocol, name string, id int16, b bool) error {
	return writeField(ctx, p, name, thrift.BOOL, id, func() error { return p.WriteBool(ctx, b) })
}

func writeStructField(ctx context.Context, p thrift.TProtocol, name string, id int16, s thrift.TStruct) error {
	return writeField(ctx, p, name, thrift.STRUCT, id, func() error { return s.Write(ctx, p) })
}

func writeList(ctx context.Context, p thrift.TProtocol, name string, id int16, elem thrift.TType, n int, value func(i int) error) error {
	return writeField(ctx, p, name, thrift.LIST, id, func() error {
		if err := p.WriteListBegin(ctx, elem, n); err != nil {
			return thrift.PrependError("error writing list begin: ", err)
		}
		for i := 0; i < n; i++ {
			if err := value(i); err != nil {
				return err
			}
		}
		if err := p.WriteListEnd(ctx); err != nil {
			return thrift.PrependError("error writing list end: ", err)
		}
		return nil
	})
}

func writeStruct(ctx context.Context, p thrift.TProtocol, name string, fields func() error) error {
	if err := p.WriteStructBegin(ctx, name); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T write struct begin error: ", p), err)
	}
	if err := fields(); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return thrift.PrependError("write field stop error: ", err)
	}
	if err := p.WriteStructEnd(ctx); err != nil {
		return thrift.PrependError("write struct stop error: ", err)
	}
	return nil
}

// readStruct walks the fields of a struct. field reports whether it consumed
// the value, anything it does not consume is skipped.
func readStruct(ctx context.Context, p thrift.TProtocol, name string, field func(id int16, typ thrift.TType) (bool, error)) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s read error: ", name), err)
	}
	for {
		_, typ, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("%s field %d read error: ", name, id), err)
		}
		if typ == thrift.STOP {
			break
		}
		ok, err := field(id, typ)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("%s field %d read error: ", name, id), err)
		}
		if !ok {
			if err := p.Skip(ctx, typ); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.ReadStructEnd(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s read struct end error: ", name), err)
	}
	return nil
}

func readList(ctx context.Context, p thrift.TProtocol, elem func() error) error {
	_, size, err := p.ReadListBegin(ctx)
	if err != nil {
		return thrift.PrependError("error reading list begin: ", err)
	}
	for i := 0; i < size; i++ {
		if err := elem(); err != nil {
			return err
		}
	}
	if err := p.ReadListEnd(ctx); err != nil {
		return thrift.PrependError("error reading list end: ", err)
	}
	return nil
}

func readI32Ptr(ctx context.Context, p thrift.TProtocol) (*int32, error) {
	v, err := p.ReadI32(ctx)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readI64Ptr(ctx context.Context, p thrift.TProtocol) (*int64, error) {
	v, err := p.ReadI64(ctx)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeI16(ctx context.Context, p thrift.TProtocol, name string, id int16, n int16) error {
	return writeField(ctx, p, name, thrift.I16, id, func() error { return p.WriteI16(ctx, n) })
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// writeMap writes m with its keys in byte order, so equal maps encode to
// equal bytes.
func writeMap(ctx context.Context, p thrift.TProtocol, name string, id int16, kt, vt thrift.TType, m map[string]string, key, value func(s string) error) error {
	return writeField(ctx, p, name, thrift.MAP, id, func() error {
		if err := p.WriteMapBegin(ctx, kt, vt, len(m)); err != nil {
			return thrift.PrependError("error writing map begin: ", err)
		}
		for _, k := range sortedKeys(m) {
			if err := key(k); err != nil {
				return err
			}
			if err := value(m[k]); err != nil {
				return err
			}
		}
		if err := p.WriteMapEnd(ctx); err != nil {
			return thrift.PrependError("error writing map end: ", err)
		}
		return nil
	})
}

// writeBinaryMap writes a map<binary, binary>. Keys are held as strings since
// []byte cannot key a Go map.
func writeBinaryMap(ctx context.Context, p thrift.TProtocol, name string, id int16, m map[string][]byte) error {
	flat := make(map[string]string, len(m))
	for k, v := range m {
		flat[k] = string(v)
	}
	return writeMap(ctx, p, name, id, thrift.STRING, thrift.STRING, flat,
		func(k string) error { return p.WriteBinary(ctx, []byte(k)) },
		func(v string) error { return p.WriteBinary(ctx, []byte(v)) })
}

func writeStringMap(ctx context.Context, p thrift.TProtocol, name string, id int16, m map[string]string) error {
	return writeMap(ctx, p, name, id, thrift.STRING, thrift.STRING, m,
		func(k string) error { return p.WriteString(ctx, k) },
		func(v string) error { return p.WriteString(ctx, v) })
}

func readMap(ctx context.Context, p thrift.TProtocol, entry func() error) error {
	_, _, size, err := p.ReadMapBegin(ctx)
	if err != nil {
		return thrift.PrependError("error reading map begin: ", err)
	}
	for i := 0; i < size; i++ {
		if err := entry(); err != nil {
			return err
		}
	}
	if err := p.ReadMapEnd(ctx); err != nil {
		return thrift.PrependError("error reading map end: ", err)
	}
	return nil
}

func readBinaryMap(ctx context.Context, p thrift.TProtocol) (map[string][]byte, error) {
	m := map[string][]byte{}
	err := readMap(ctx, p, func() error {
		k, err := p.ReadBinary(ctx)
		if err != nil {
			return err
		}
		v, err := p.ReadBinary(ctx)
		if err != nil {
			return err
		}
		m[string(k)] = v
		return nil
	})
	return m, err
}

func readStringMap(ctx context.Context, p thrift.TProtocol) (map[string]string, error) {
	m := map[string]string{}
	err := readMap(ctx, p, func() error {
		k, err := p.ReadString(ctx)
		if err != nil {
			return err
		}
		v, err := p.ReadString(ctx)
		if err != nil {
			return err
		}
		m[k] = v
		return nil
	})
	return m, err
}

func readI16Ptr(ctx context.Context, p thrift.TProtocol) (*int16, error) {
	v, err := p.ReadI16(ctx)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readBoolPtr(ctx context.Context, p thrift.TProtocol) (*bool, error) {
	v, err := p.ReadBool(ctx)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
