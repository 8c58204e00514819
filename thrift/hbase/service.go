package hbase

import (
	"context"
	"errors"

	"github.com/apache/thrift/lib/go/thrift"
)

// THBaseService is the part of the gateway's service we call.
type THBaseService interface {
	Put(ctx context.Context, table []byte, tput *TPut) error
	PutMultiple(ctx context.Context, table []byte, tputs []*TPut) error
	DeleteSingle(ctx context.Context, table []byte, tdelete *TDelete) error
	GetScannerResults(ctx context.Context, table []byte, tscan *TScan, numRows int32) ([]*TResult_, error)
	GetTableDescriptor(ctx context.Context, table *TTableName) (*TTableDescriptor, error)
	GetTableNamesByPattern(ctx context.Context, regex *string, includeSysTables bool) ([]*TTableName, error)
	CreateTable(ctx context.Context, desc *TTableDescriptor, splitKeys [][]byte) error
	DeleteTable(ctx context.Context, tableName *TTableName) error
	TruncateTable(ctx context.Context, tableName *TTableName, preserveSplits bool) error
	EnableTable(ctx context.Context, tableName *TTableName) error
	DisableTable(ctx context.Context, tableName *TTableName) error
	IsTableEnabled(ctx context.Context, tableName *TTableName) (bool, error)
	TableExists(ctx context.Context, tableName *TTableName) (bool, error)
	ModifyTable(ctx context.Context, desc *TTableDescriptor) error
}

type THBaseServiceClient struct {
	c    thrift.TClient
	meta thrift.ResponseMeta
}

var _ THBaseService = (*THBaseServiceClient)(nil)

func NewTHBaseServiceClient(c thrift.TClient) *THBaseServiceClient {
	return &THBaseServiceClient{c: c}
}

func (p *THBaseServiceClient) Client_() thrift.TClient {
	return p.c
}

func (p *THBaseServiceClient) LastResponseMeta_() thrift.ResponseMeta {
	return p.meta
}

// callArgs is the argument struct of a service method, fields are written in
// declaration order.
type callArgs struct {
	method string
	fields []argField
}

type argField struct {
	name  string
	id    int16
	write func(ctx context.Context, p thrift.TProtocol) error
}

func (a *callArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, a.method+"_args", func() error {
		for _, f := range a.fields {
			if err := f.write(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *callArgs) Read(context.Context, thrift.TProtocol) error {
	return errors.New(a.method + "_args: client side arguments are write only")
}

func binaryArg(name string, id int16, b []byte) argField {
	return argField{name: name, id: id, write: func(ctx context.Context, p thrift.TProtocol) error {
		return writeBinary(ctx, p, name, id, b)
	}}
}

func structArg(name string, id int16, s thrift.TStruct) argField {
	return argField{name: name, id: id, write: func(ctx context.Context, p thrift.TProtocol) error {
		return writeStructField(ctx, p, name, id, s)
	}}
}

func boolArg(name string, id int16, b bool) argField {
	return argField{name: name, id: id, write: func(ctx context.Context, p thrift.TProtocol) error {
		return writeBool(ctx, p, name, id, b)
	}}
}

func i32Arg(name string, id int16, n int32) argField {
	return argField{name: name, id: id, write: func(ctx context.Context, p thrift.TProtocol) error {
		return writeI32(ctx, p, name, id, n)
	}}
}

// callResult decodes field 0 with success and the declared exceptions into
// io and ia.
type callResult struct {
	method      string
	successType thrift.TType
	success     func(ctx context.Context, p thrift.TProtocol) error
	gotSuccess  bool
	io          *TIOError
	ia          *TIllegalArgument
}

func (r *callResult) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, r.method+"_result", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 0 && r.success != nil && typ == r.successType:
			r.gotSuccess = true
			return true, r.success(ctx, p)
		case id == 1 && typ == thrift.STRUCT:
			r.io = &TIOError{}
			return true, r.io.Read(ctx, p)
		case id == 2 && typ == thrift.STRUCT:
			r.ia = &TIllegalArgument{}
			return true, r.ia.Read(ctx, p)
		}
		return false, nil
	})
}

// Write only carries the exceptions, it exists to satisfy thrift.TStruct and
// to let tests build error replies.
func (r *callResult) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, r.method+"_result", func() error {
		if r.io != nil {
			if err := writeStructField(ctx, p, "io", 1, r.io); err != nil {
				return err
			}
		}
		if r.ia != nil {
			return writeStructField(ctx, p, "ia", 2, r.ia)
		}
		return nil
	})
}

func (p *THBaseServiceClient) call(ctx context.Context, args *callArgs, result *callResult) error {
	result.method = args.method
	meta, err := p.c.Call(ctx, args.method, args, result)
	p.meta = meta
	if err != nil {
		return err
	}
	switch {
	case result.io != nil:
		return result.io
	case result.ia != nil:
		return result.ia
	case result.success != nil && !result.gotSuccess:
		return thrift.NewTApplicationException(thrift.MISSING_RESULT, args.method+" failed: unknown result")
	}
	return nil
}

func (p *THBaseServiceClient) boolCall(ctx context.Context, args *callArgs) (bool, error) {
	var ok bool
	result := &callResult{successType: thrift.BOOL, success: func(ctx context.Context, iprot thrift.TProtocol) (err error) {
		ok, err = iprot.ReadBool(ctx)
		return err
	}}
	if err := p.call(ctx, args, result); err != nil {
		return false, err
	}
	return ok, nil
}

func (p *THBaseServiceClient) Put(ctx context.Context, table []byte, tput *TPut) error {
	return p.call(ctx, &callArgs{method: "put", fields: []argField{
		binaryArg("table", 1, table),
		structArg("tput", 2, tput),
	}}, &callResult{})
}

func (p *THBaseServiceClient) PutMultiple(ctx context.Context, table []byte, tputs []*TPut) error {
	return p.call(ctx, &callArgs{method: "putMultiple", fields: []argField{
		binaryArg("table", 1, table),
		{name: "tputs", id: 2, write: func(ctx context.Context, oprot thrift.TProtocol) error {
			return writeList(ctx, oprot, "tputs", 2, thrift.STRUCT, len(tputs), func(i int) error {
				return tputs[i].Write(ctx, oprot)
			})
		}},
	}}, &callResult{})
}

func (p *THBaseServiceClient) DeleteSingle(ctx context.Context, table []byte, tdelete *TDelete) error {
	return p.call(ctx, &callArgs{method: "deleteSingle", fields: []argField{
		binaryArg("table", 1, table),
		structArg("tdelete", 2, tdelete),
	}}, &callResult{})
}

func (p *THBaseServiceClient) GetScannerResults(ctx context.Context, table []byte, tscan *TScan, numRows int32) ([]*TResult_, error) {
	var results []*TResult_
	result := &callResult{successType: thrift.LIST, success: func(ctx context.Context, iprot thrift.TProtocol) error {
		return readList(ctx, iprot, func() error {
			r := &TResult_{}
			if err := r.Read(ctx, iprot); err != nil {
				return err
			}
			results = append(results, r)
			return nil
		})
	}}
	err := p.call(ctx, &callArgs{method: "getScannerResults", fields: []argField{
		binaryArg("table", 1, table),
		structArg("tscan", 2, tscan),
		i32Arg("numRows", 3, numRows),
	}}, result)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (p *THBaseServiceClient) GetTableDescriptor(ctx context.Context, table *TTableName) (*TTableDescriptor, error) {
	desc := &TTableDescriptor{}
	result := &callResult{successType: thrift.STRUCT, success: func(ctx context.Context, iprot thrift.TProtocol) error {
		return desc.Read(ctx, iprot)
	}}
	err := p.call(ctx, &callArgs{method: "getTableDescriptor", fields: []argField{
		structArg("table", 1, table),
	}}, result)
	if err != nil {
		return nil, err
	}
	return desc, nil
}

func (p *THBaseServiceClient) GetTableNamesByPattern(ctx context.Context, regex *string, includeSysTables bool) ([]*TTableName, error) {
	var names []*TTableName
	result := &callResult{successType: thrift.LIST, success: func(ctx context.Context, iprot thrift.TProtocol) error {
		return readList(ctx, iprot, func() error {
			n := &TTableName{}
			if err := n.Read(ctx, iprot); err != nil {
				return err
			}
			names = append(names, n)
			return nil
		})
	}}
	fields := make([]argField, 0, 2)
	if regex != nil {
		re := *regex
		fields = append(fields, argField{name: "regex", id: 1, write: func(ctx context.Context, oprot thrift.TProtocol) error {
			return writeString(ctx, oprot, "regex", 1, re)
		}})
	}
	fields = append(fields, boolArg("includeSysTables", 2, includeSysTables))
	if err := p.call(ctx, &callArgs{method: "getTableNamesByPattern", fields: fields}, result); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *THBaseServiceClient) CreateTable(ctx context.Context, desc *TTableDescriptor, splitKeys [][]byte) error {
	fields := []argField{structArg("desc", 1, desc)}
	if splitKeys != nil {
		fields = append(fields, argField{name: "splitKeys", id: 2, write: func(ctx context.Context, oprot thrift.TProtocol) error {
			return writeList(ctx, oprot, "splitKeys", 2, thrift.STRING, len(splitKeys), func(i int) error {
				return oprot.WriteBinary(ctx, splitKeys[i])
			})
		}})
	}
	return p.call(ctx, &callArgs{method: "createTable", fields: fields}, &callResult{})
}

func (p *THBaseServiceClient) DeleteTable(ctx context.Context, tableName *TTableName) error {
	return p.call(ctx, &callArgs{method: "deleteTable", fields: []argField{
		structArg("tableName", 1, tableName),
	}}, &callResult{})
}

func (p *THBaseServiceClient) TruncateTable(ctx context.Context, tableName *TTableName, preserveSplits bool) error {
	return p.call(ctx, &callArgs{method: "truncateTable", fields: []argField{
		structArg("tableName", 1, tableName),
		boolArg("preserveSplits", 2, preserveSplits),
	}}, &callResult{})
}

func (p *THBaseServiceClient) EnableTable(ctx context.Context, tableName *TTableName) error {
	return p.call(ctx, &callArgs{method: "enableTable", fields: []argField{
		structArg("tableName", 1, tableName),
	}}, &callResult{})
}

func (p *THBaseServiceClient) DisableTable(ctx context.Context, tableName *TTableName) error {
	return p.call(ctx, &callArgs{method: "disableTable", fields: []argField{
		structArg("tableName", 1, tableName),
	}}, &callResult{})
}

func (p *THBaseServiceClient) IsTableEnabled(ctx context.Context, tableName *TTableName) (bool, error) {
	return p.boolCall(ctx, &callArgs{method: "isTableEnabled", fields: []argField{
		structArg("tableName", 1, tableName),
	}})
}

func (p *THBaseServiceClient) TableExists(ctx context.Context, tableName *TTableName) (bool, error) {
	return p.boolCall(ctx, &callArgs{method: "tableExists", fields: []argField{
		structArg("tableName", 1, tableName),
	}})
}

func (p *THBaseServiceClient) ModifyTable(ctx context.Context, desc *TTableDescriptor) error {
	return p.call(ctx, &callArgs{method: "modifyTable", fields: []argField{
		structArg("desc", 1, desc),
	}}, &callResult{})
}
