// Package ddl generates CREATE TABLE, CREATE INDEX, and DROP TABLE
// scripts from a schema catalog for a target dialect.
package ddl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/apexql/pkg/dialect"
	"github.com/leapstack-labs/apexql/pkg/schema"
)

// Generator renders DDL for one dialect.
type Generator struct {
	dialect dialect.Dialect
}

// New returns a generator targeting the given dialect.
func New(d dialect.Dialect) *Generator {
	return &Generator{dialect: d}
}

// Table renders the CREATE TABLE statement for one object. Columns come
// out Id first, Name second, then alphabetically. Polymorphic lookups get
// a companion <column>_type discriminator column.
func (g *Generator) Table(obj *schema.Object) string {
	fields := obj.Fields()
	sort.SliceStable(fields, func(i, j int) bool {
		ri, rj := columnRank(fields[i].Name), columnRank(fields[j].Name)
		if ri != rj {
			return ri < rj
		}
		return fields[i].Name < fields[j].Name
	})

	var columns []string
	var constraints []string
	for _, f := range fields {
		columns = append(columns, "    "+g.column(f))

		if f.IsPolymorphic {
			columns = append(columns,
				"    "+dialect.QuoteIdentifier(f.ColumnName+"_type")+" TEXT")
			continue
		}
		if target, ok := f.SingleReference(); ok && !strings.EqualFold(target, obj.Name) {
			constraints = append(constraints, fmt.Sprintf(
				"    FOREIGN KEY (%s) REFERENCES %s(id)",
				dialect.QuoteIdentifier(f.ColumnName),
				dialect.QuoteIdentifier(schema.ToSnakeCase(target))))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", dialect.QuoteIdentifier(obj.TableName))
	b.WriteString(strings.Join(columns, ",\n"))
	// SQLite table rebuilds make foreign keys more trouble than help.
	if len(constraints) > 0 && g.dialect.Name() == "postgres" {
		b.WriteString(",\n")
		b.WriteString(strings.Join(constraints, ",\n"))
	}
	b.WriteString("\n)")
	return b.String()
}

func columnRank(name string) int {
	switch name {
	case "Id":
		return 0
	case "Name":
		return 1
	default:
		return 2
	}
}

func (g *Generator) column(f *schema.Field) string {
	col := dialect.QuoteIdentifier(f.ColumnName) + " " + g.columnType(f)
	if f.Name == "Id" {
		col += " PRIMARY KEY"
	} else if !f.Nillable {
		col += " NOT NULL"
	}
	return col
}

func (g *Generator) columnType(f *schema.Field) string {
	sqlite := g.dialect.Name() == "sqlite"
	switch f.Type {
	case schema.TypeBoolean:
		if sqlite {
			return "INTEGER"
		}
		return "BOOLEAN"
	case schema.TypeInteger:
		return "INTEGER"
	case schema.TypeDouble, schema.TypeCurrency, schema.TypePercent:
		if sqlite {
			return "REAL"
		}
		return "NUMERIC"
	case schema.TypeDate:
		return "DATE"
	case schema.TypeDateTime:
		if sqlite {
			return "TEXT"
		}
		return "TIMESTAMP"
	case schema.TypeTime:
		if sqlite {
			return "TEXT"
		}
		return "TIME"
	default:
		return "TEXT"
	}
}

// Indexes renders CREATE INDEX statements for an object: one per
// relationship field, the Name field, the system timestamp fields, and
// the soft-delete flag.
func (g *Generator) Indexes(obj *schema.Object) []string {
	var indexes []string
	add := func(suffix, column string) {
		indexes = append(indexes, fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
			dialect.QuoteIdentifier("idx_"+obj.TableName+"_"+suffix),
			dialect.QuoteIdentifier(obj.TableName),
			dialect.QuoteIdentifier(column)))
	}

	for _, f := range obj.Fields() {
		switch {
		case f.IsRelationship():
			add(f.ColumnName, f.ColumnName)
		case f.Name == "Name":
			add("name", f.ColumnName)
		case f.Name == "CreatedDate" || f.Name == "LastModifiedDate" || f.Name == "SystemModstamp":
			add(f.ColumnName, f.ColumnName)
		}
	}
	if obj.HasField("IsDeleted") {
		add("is_deleted", "is_deleted")
	}
	return indexes
}

// Schema renders the full creation script: all tables in name order, then
// all indexes.
func (g *Generator) Schema(s *schema.Schema) string {
	objects := s.Objects()

	var b strings.Builder
	for _, obj := range objects {
		b.WriteString(g.Table(obj))
		b.WriteString(";\n\n")
	}
	for _, obj := range objects {
		for _, index := range g.Indexes(obj) {
			b.WriteString(index)
			b.WriteString(";\n")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// DropTable renders the DROP TABLE statement for one object.
func (g *Generator) DropTable(obj *schema.Object) string {
	return "DROP TABLE IF EXISTS " + dialect.QuoteIdentifier(obj.TableName)
}

// DropSchema renders DROP TABLE statements for every object, in reverse
// name order so dependents drop before their targets.
func (g *Generator) DropSchema(s *schema.Schema) string {
	objects := s.Objects()

	var b strings.Builder
	for i := len(objects) - 1; i >= 0; i-- {
		b.WriteString(g.DropTable(objects[i]))
		b.WriteString(";\n")
	}
	return b.String()
}
