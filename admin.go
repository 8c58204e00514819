package hbaseops

import (
	"context"

	"github.com/challenai/hbaseops/thrift/hbase"
	"github.com/pkg/errors"
)

// ListTables returns the user tables of the cluster. The catalog is assumed
// small, there is no paging.
func (h *DB) ListTables(ctx context.Context) ([]TableName, error) {
	const op = "list tables"
	var names []TableName
	err := h.withConn(ctx, op, func(conn Conn) error {
		tns, err := conn.GetTableNamesByPattern(ctx, nil, false)
		if err != nil {
			return h.schemaErr(op, "", "", false, err)
		}
		for _, tn := range tns {
			names = append(names, tableNameFromThrift(tn))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	h.log.Debugf("%s: %d tables", op, len(names))
	return names, nil
}

// TableExists reports whether table is in the catalog.
func (h *DB) TableExists(ctx context.Context, table string) (bool, error) {
	const op = "table exists"
	var exists bool
	err := h.withConn(ctx, op, func(conn Conn) (err error) {
		exists, err = conn.TableExists(ctx, ParseTableName(table).thrift())
		return h.schemaErr(op, table, "", false, err)
	})
	return exists, err
}

// IsTableEnabled reports whether table is online.
func (h *DB) IsTableEnabled(ctx context.Context, table string) (bool, error) {
	const op = "is table enabled"
	var enabled bool
	err := h.withConn(ctx, op, func(conn Conn) error {
		if err := h.mustExist(ctx, conn, op, table); err != nil {
			return err
		}
		var err error
		enabled, err = conn.IsTableEnabled(ctx, ParseTableName(table).thrift())
		return h.schemaErr(op, table, "", false, err)
	})
	return enabled, err
}

// Describe fetches the schema of table.
func (h *DB) Describe(ctx context.Context, table string) (*TableDescriptor, error) {
	const op = "describe"
	var desc TableDescriptor
	err := h.withConn(ctx, op, func(conn Conn) (err error) {
		desc, err = h.describe(ctx, conn, op, table)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &desc, nil
}

// CreateTable creates table with one default descriptor per family name. An
// existing table of the same name is disabled and dropped first.
func (h *DB) CreateTable(ctx context.Context, table string, families ...string) error {
	desc := TableDescriptor{Name: ParseTableName(table)}
	for _, f := range families {
		desc.Families = append(desc.Families, ColumnFamily{Name: f})
	}
	return h.CreateTableDescriptor(ctx, desc)
}

// CreateTableDescriptor is CreateTable with full family descriptors.
func (h *DB) CreateTableDescriptor(ctx context.Context, desc TableDescriptor) error {
	const op = "create table"
	table := desc.Name.String()
	if len(desc.Families) == 0 {
		return &ArgumentError{Op: op, Err: errors.Wrap(ErrNoFamilies, table)}
	}
	for _, cf := range desc.Families {
		if err := cf.validate(); err != nil {
			return &ArgumentError{Op: op, Err: errors.WithMessage(err, table)}
		}
	}
	return h.withConn(ctx, op, func(conn Conn) error {
		tn := desc.Name.thrift()
		exists, err := conn.TableExists(ctx, tn)
		if err != nil {
			return h.schemaErr(op, table, "check", false, err)
		}
		if exists {
			h.log.Infof("%s: %s exists, dropping it first", op, table)
			if err := h.dropTable(ctx, conn, op, table); err != nil {
				return err
			}
		}
		if err := conn.CreateTable(ctx, desc.thrift(), nil); err != nil {
			return h.schemaErr(op, table, "create", false, err)
		}
		h.log.Infof("table %s created with families %v", table, desc.FamilyNames())
		return nil
	})
}

// DeleteTable disables table when it is online and drops it.
func (h *DB) DeleteTable(ctx context.Context, table string) error {
	const op = "delete table"
	return h.withConn(ctx, op, func(conn Conn) error {
		if err := h.mustExist(ctx, conn, op, table); err != nil {
			return err
		}
		if err := h.dropTable(ctx, conn, op, table); err != nil {
			return err
		}
		h.log.Infof("table %s deleted", table)
		return nil
	})
}

// AddColumnFamily adds a family with default properties.
func (h *DB) AddColumnFamily(ctx context.Context, table, family string) error {
	return h.AddColumnFamilyDescriptor(ctx, table, ColumnFamily{Name: family})
}

// AddColumnFamilyDescriptor fetches the schema of table, appends family and
// applies the modified schema. Every other property of the table and its
// families is sent back as read. The table stays online.
func (h *DB) AddColumnFamilyDescriptor(ctx context.Context, table string, family ColumnFamily) error {
	const op = "add column family"
	if err := family.validate(); err != nil {
		return &ArgumentError{Op: op, Err: err}
	}
	return h.withConn(ctx, op, func(conn Conn) error {
		td, err := h.fetch(ctx, conn, op, table)
		if err != nil {
			return err
		}
		if findFamily(td, family.Name) >= 0 {
			return &SchemaError{Op: op, Table: table, Step: "describe", Err: errors.Wrap(ErrFamilyExists, family.Name)}
		}
		td.Columns = append(td.Columns, family.thrift())
		if err := conn.ModifyTable(ctx, td); err != nil {
			return h.schemaErr(op, table, "modify", false, err)
		}
		h.log.Infof("cf %s add success on %s", family.Name, table)
		return nil
	})
}

// RemoveColumnFamily drops family from table. It is not atomic: the table is
// disabled, the schema modified, then the table enabled again. When a step
// after the disable fails nothing is undone, the returned *SchemaError has
// LeftDisabled set and the table stays offline until enabled by hand.
func (h *DB) RemoveColumnFamily(ctx context.Context, table, family string) error {
	const op = "remove column family"
	return h.withConn(ctx, op, func(conn Conn) error {
		td, err := h.fetch(ctx, conn, op, table)
		if err != nil {
			return err
		}
		i := findFamily(td, family)
		if i < 0 {
			return &SchemaError{Op: op, Table: table, Step: "describe", Err: errors.Wrap(ErrFamilyNotFound, family)}
		}
		if len(td.Columns) == 1 {
			return &SchemaError{Op: op, Table: table, Step: "describe", Err: errors.Wrapf(ErrNoFamilies, "cannot remove last family %s", family)}
		}
		kept := make([]*hbase.TColumnFamilyDescriptor, 0, len(td.Columns)-1)
		kept = append(kept, td.Columns[:i]...)
		td.Columns = append(kept, td.Columns[i+1:]...)

		if err := h.disable(ctx, conn, op, table); err != nil {
			return err
		}
		if err := conn.ModifyTable(ctx, td); err != nil {
			h.log.Errorf("%s: modify %s failed, table left disabled: %v", op, table, err)
			return h.schemaErr(op, table, "modify", true, err)
		}
		if err := conn.EnableTable(ctx, td.TableName); err != nil {
			h.log.Errorf("%s: enable %s failed after the family was removed, table left disabled: %v", op, table, err)
			return h.schemaErr(op, table, "enable", true, err)
		}
		h.log.Infof("cf %s delete success on %s", family, table)
		return nil
	})
}

// TruncateTable removes every row of table and keeps its schema and region
// splits. The table is disabled first, the store enables it again as part of
// the truncate.
func (h *DB) TruncateTable(ctx context.Context, table string) error {
	const op = "truncate table"
	return h.withConn(ctx, op, func(conn Conn) error {
		if err := h.mustExist(ctx, conn, op, table); err != nil {
			return err
		}
		if err := h.disable(ctx, conn, op, table); err != nil {
			return err
		}
		if err := conn.TruncateTable(ctx, ParseTableName(table).thrift(), true); err != nil {
			h.log.Errorf("%s: truncate %s failed, table left disabled: %v", op, table, err)
			return h.schemaErr(op, table, "truncate", true, err)
		}
		h.log.Infof("table %s is cleared", table)
		return nil
	})
}

func (h *DB) mustExist(ctx context.Context, conn Conn, op, table string) error {
	exists, err := conn.TableExists(ctx, ParseTableName(table).thrift())
	if err != nil {
		return h.schemaErr(op, table, "check", false, err)
	}
	if !exists {
		return &SchemaError{Op: op, Table: table, Step: "check", Err: ErrTableNotFound}
	}
	return nil
}

// fetch returns the schema of table as the gateway sent it.
func (h *DB) fetch(ctx context.Context, conn Conn, op, table string) (*hbase.TTableDescriptor, error) {
	if err := h.mustExist(ctx, conn, op, table); err != nil {
		return nil, err
	}
	td, err := conn.GetTableDescriptor(ctx, ParseTableName(table).thrift())
	if err != nil {
		return nil, h.schemaErr(op, table, "describe", false, err)
	}
	if td.TableName == nil {
		td.TableName = ParseTableName(table).thrift()
	}
	return td, nil
}

func findFamily(td *hbase.TTableDescriptor, name string) int {
	for i, cf := range td.Columns {
		if string(cf.Name) == name {
			return i
		}
	}
	return -1
}

func (h *DB) describe(ctx context.Context, conn Conn, op, table string) (TableDescriptor, error) {
	td, err := h.fetch(ctx, conn, op, table)
	if err != nil {
		return TableDescriptor{}, err
	}
	desc := tableDescriptorFromThrift(td)
	desc.Name = ParseTableName(table)
	return desc, nil
}

// disable takes table offline unless it already is.
func (h *DB) disable(ctx context.Context, conn Conn, op, table string) error {
	tn := ParseTableName(table).thrift()
	enabled, err := conn.IsTableEnabled(ctx, tn)
	if err != nil {
		return h.schemaErr(op, table, "disable", false, err)
	}
	if !enabled {
		return nil
	}
	if err := conn.DisableTable(ctx, tn); err != nil {
		return h.schemaErr(op, table, "disable", false, err)
	}
	return nil
}

func (h *DB) dropTable(ctx context.Context, conn Conn, op, table string) error {
	if err := h.disable(ctx, conn, op, table); err != nil {
		return err
	}
	if err := conn.DeleteTable(ctx, ParseTableName(table).thrift()); err != nil {
		return h.schemaErr(op, table, "delete", true, err)
	}
	return nil
}
