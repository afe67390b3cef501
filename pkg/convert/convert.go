// Package convert translates parsed SOQL query trees into SQL for a target
// dialect. Field paths resolve against an optional schema catalog; parent
// traversals become LEFT JOINs, child subqueries become correlated JSON
// aggregations, and bind variables become ordered parameters.
package convert

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/dialect"
	"github.com/leapstack-labs/apexql/pkg/schema"
)

// BindMode controls how bind variables are rendered.
type BindMode int

const (
	// BindParameterized replaces each bind variable with a dialect
	// placeholder and reports it in Result.Parameters.
	BindParameterized BindMode = iota
	// BindPlaceholder emits a named ::name marker for each bind variable,
	// leaving substitution to the caller.
	BindPlaceholder
)

// SecurityMode is the security tag derived from a WITH clause. The clause
// itself has no SQL equivalent and is dropped with a warning.
type SecurityMode int

const (
	SecurityDefault SecurityMode = iota
	SecurityEnforced
	SecurityUserMode
	SecuritySystemMode
)

func (m SecurityMode) String() string {
	switch m {
	case SecurityEnforced:
		return "SECURITY_ENFORCED"
	case SecurityUserMode:
		return "USER_MODE"
	case SecuritySystemMode:
		return "SYSTEM_MODE"
	default:
		return "DEFAULT"
	}
}

// Config controls a conversion.
type Config struct {
	Dialect              dialect.Dialect
	BindMode             BindMode
	FilterDeleted        bool
	MaxRelationshipDepth int
}

// DefaultConfig targets PostgreSQL with parameterized binds and a maximum
// relationship depth of 5.
func DefaultConfig() Config {
	return Config{Dialect: dialect.Postgres{}, MaxRelationshipDepth: 5}
}

// Parameter is one generated bind parameter, in placeholder order.
type Parameter struct {
	Name         string // generated name, p1, p2, ...
	Placeholder  string // dialect placeholder as it appears in the SQL
	OriginalName string // bind variable name from the query
}

// Result is the output of a conversion.
type Result struct {
	SQL        string
	Parameters []Parameter
	ColumnMap  map[string]string // requested field path -> output column
	Warnings   []Warning
	Security   SecurityMode
}

type joinClause struct {
	table     string
	alias     string
	condition string
}

// Converter translates queries. A Converter is not safe for concurrent
// use; create one per goroutine.
type Converter struct {
	schema  *schema.Schema // nil when no catalog is available
	dialect dialect.Dialect
	config  Config

	currentObject string
	aliasCounter  int
	parameters    []Parameter
	warnings      []Warning
	joins         []joinClause
	joinAliases   map[string]string // (alias, fk column) key -> join alias
	columnMap     map[string]string
	tableAliases  map[string]string // lowercased object name -> alias
}

// New returns a converter over an optional schema. Zero config fields fall
// back to the defaults.
func New(s *schema.Schema, cfg Config) *Converter {
	if cfg.Dialect == nil {
		cfg.Dialect = dialect.Postgres{}
	}
	if cfg.MaxRelationshipDepth <= 0 {
		cfg.MaxRelationshipDepth = 5
	}
	return &Converter{schema: s, dialect: cfg.Dialect, config: cfg}
}

// Convert translates a query with a one-shot converter.
func Convert(q *ast.SoqlQuery, s *schema.Schema, cfg Config) (*Result, error) {
	return New(s, cfg).Convert(q)
}

// Convert translates one query tree into SQL.
func (c *Converter) Convert(q *ast.SoqlQuery) (*Result, error) {
	c.aliasCounter = 0
	c.parameters = nil
	c.warnings = nil
	c.joins = nil
	c.joinAliases = make(map[string]string)
	c.columnMap = make(map[string]string)
	c.tableAliases = make(map[string]string)

	mainAlias := c.nextAlias()
	table, err := c.objectTable(q.From)
	if err != nil {
		return nil, err
	}
	c.currentObject = q.From
	c.tableAliases[strings.ToLower(q.From)] = mainAlias

	columns, err := c.convertSelect(q.Select)
	if err != nil {
		return nil, err
	}

	security := c.securityMode(q.With)

	var whereSQL string
	if q.Where != nil {
		whereSQL, err = c.convertExpr(q.Where)
		if err != nil {
			return nil, err
		}
	}
	if c.config.FilterDeleted {
		filter := fmt.Sprintf("%s.%s = %s",
			mainAlias, dialect.QuoteIdentifier("is_deleted"), c.dialect.BooleanLiteral(false))
		if whereSQL != "" {
			whereSQL = "(" + whereSQL + ") AND " + filter
		} else {
			whereSQL = filter
		}
	}

	groupBy := make([]string, 0, len(q.GroupBy))
	for _, field := range q.GroupBy {
		expr, err := c.fieldExpr(field)
		if err != nil {
			return nil, err
		}
		groupBy = append(groupBy, expr)
	}

	var havingSQL string
	if q.Having != nil {
		havingSQL, err = c.convertExpr(q.Having)
		if err != nil {
			return nil, err
		}
	}

	orderBy, err := c.convertOrderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}

	var limitSQL, offsetSQL string
	if q.Limit != nil {
		limitSQL, err = c.convertExpr(q.Limit)
		if err != nil {
			return nil, err
		}
	}
	if q.Offset != nil {
		offsetSQL, err = c.convertExpr(q.Offset)
		if err != nil {
			return nil, err
		}
	}

	forSQL := c.convertFor(q.For)

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString("\nFROM ")
	b.WriteString(dialect.QuoteIdentifier(table))
	b.WriteByte(' ')
	b.WriteString(mainAlias)
	for _, j := range c.joins {
		fmt.Fprintf(&b, "\nLEFT JOIN %s %s ON %s", dialect.QuoteIdentifier(j.table), j.alias, j.condition)
	}
	if whereSQL != "" {
		b.WriteString("\nWHERE ")
		b.WriteString(whereSQL)
	}
	if len(groupBy) > 0 {
		b.WriteString("\nGROUP BY ")
		b.WriteString(strings.Join(groupBy, ", "))
	}
	if havingSQL != "" {
		b.WriteString("\nHAVING ")
		b.WriteString(havingSQL)
	}
	if len(orderBy) > 0 {
		b.WriteString("\nORDER BY ")
		b.WriteString(strings.Join(orderBy, ", "))
	}
	if tail := c.dialect.LimitOffset(limitSQL, offsetSQL); tail != "" {
		b.WriteByte('\n')
		b.WriteString(tail)
	}
	if forSQL != "" {
		b.WriteByte('\n')
		b.WriteString(forSQL)
	}

	return &Result{
		SQL:        b.String(),
		Parameters: c.parameters,
		ColumnMap:  c.columnMap,
		Warnings:   c.warnings,
		Security:   security,
	}, nil
}

func (c *Converter) nextAlias() string {
	alias := fmt.Sprintf("t%d", c.aliasCounter)
	c.aliasCounter++
	return alias
}

func (c *Converter) warn(kind WarningKind, format string, args ...any) {
	c.warnings = append(c.warnings, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (c *Converter) currentAlias() string {
	return c.tableAliases[strings.ToLower(c.currentObject)]
}

// objectTable resolves an object's SQL table name. Without a schema the
// snake-case form of the name is used.
func (c *Converter) objectTable(name string) (string, error) {
	if c.schema != nil {
		obj, ok := c.schema.Object(name)
		if !ok {
			return "", errUnknownObject(name)
		}
		return obj.TableName, nil
	}
	return schema.ToSnakeCase(name), nil
}

// columnFor resolves a field's SQL column name on an object. A schema that
// knows the object validates the field; otherwise the snake-case form is
// used. Polymorphic fields referenced as plain columns draw a warning.
func (c *Converter) columnFor(objectName, fieldName string) (string, error) {
	if c.schema != nil {
		if obj, ok := c.schema.Object(objectName); ok {
			f, ok := obj.Field(fieldName)
			if !ok {
				return "", errUnknownField(fieldName, obj.Name)
			}
			if f.IsPolymorphic {
				c.warn(WarnPolymorphicWithoutTypeof,
					"Polymorphic field '%s' on object '%s' used without TYPEOF", f.Name, obj.Name)
			}
			return f.ColumnName, nil
		}
	}
	return schema.ToSnakeCase(fieldName), nil
}

func (c *Converter) securityMode(with ast.SoqlWith) SecurityMode {
	if with == ast.WithNone {
		return SecurityDefault
	}
	c.warn(WarnSecurityClauseRemoved, "WITH %s clause removed; no SQL equivalent", with)
	switch with {
	case ast.WithSecurityEnforced:
		return SecurityEnforced
	case ast.WithUserMode:
		return SecurityUserMode
	case ast.WithSystemMode:
		return SecuritySystemMode
	default:
		return SecurityDefault
	}
}

func (c *Converter) convertOrderBy(fields []ast.OrderByField) ([]string, error) {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		expr, err := c.fieldExpr(f.Field)
		if err != nil {
			return nil, err
		}
		if !f.Ascending {
			expr += " DESC"
		}
		switch f.Nulls {
		case ast.NullsFirst:
			expr += " " + c.dialect.NullsFirst()
		case ast.NullsLast:
			expr += " " + c.dialect.NullsLast()
		}
		out = append(out, expr)
	}
	return out, nil
}

func (c *Converter) convertFor(clause ast.ForClause) string {
	switch clause {
	case ast.ForUpdate:
		sql := c.dialect.ForUpdate()
		if sql == "" {
			c.warn(WarnForUpdateNotSupported, "FOR UPDATE is not supported by %s", c.dialect.Name())
		}
		return sql
	case ast.ForView, ast.ForReference:
		c.warn(WarnSalesforceOnlyClause, "%s has no SQL equivalent and was removed", clause)
		return ""
	default:
		return ""
	}
}

// convertSelect renders the SELECT list, recording column aliases.
func (c *Converter) convertSelect(items []ast.SelectItem) ([]string, error) {
	if len(items) == 0 {
		return nil, errUnsupportedSoqlFeature("empty SELECT list")
	}
	columns := make([]string, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case ast.FieldItem:
			expr, err := c.fieldExpr(it.Field)
			if err != nil {
				return nil, err
			}
			if strings.Contains(it.Field, ".") {
				columns = append(columns, expr+" AS "+dialect.QuoteIdentifier(it.Field))
				c.columnMap[it.Field] = it.Field
			} else {
				columns = append(columns, expr)
				c.columnMap[it.Field] = it.Field
			}
		case ast.AggregateItem:
			sql, err := c.convertAggregate(it)
			if err != nil {
				return nil, err
			}
			columns = append(columns, sql)
		case ast.SubqueryItem:
			sql, err := c.convertChildSubquery(it.Query)
			if err != nil {
				return nil, err
			}
			columns = append(columns, sql)
		case ast.TypeOfItem:
			cols, err := c.convertTypeOf(it)
			if err != nil {
				return nil, err
			}
			columns = append(columns, cols...)
		default:
			return nil, errUnsupportedSoqlFeature(fmt.Sprintf("select item %T", item))
		}
	}
	return columns, nil
}

func (c *Converter) convertAggregate(it ast.AggregateItem) (string, error) {
	name := strings.ToUpper(it.Function)
	var sql string
	if name == "COUNT" && (it.Field == "" || it.Field == "*") {
		sql = "COUNT(*)"
	} else {
		expr, err := c.fieldExpr(it.Field)
		if err != nil {
			return "", err
		}
		sql = fmt.Sprintf("%s(%s)", name, expr)
	}
	if it.Alias != "" {
		sql += " AS " + dialect.QuoteIdentifier(it.Alias)
		c.columnMap[it.Alias] = it.Alias
	}
	return sql, nil
}

// fieldExpr resolves a dotted field path into a column expression relative
// to the current object, adding LEFT JOINs for parent traversals. Joins
// are reused per (alias, FK column) pair so paths sharing a prefix share
// joins.
func (c *Converter) fieldExpr(path string) (string, error) {
	parts := strings.Split(path, ".")
	alias := c.currentAlias()

	if len(parts) == 1 {
		column, err := c.columnFor(c.currentObject, parts[0])
		if err != nil {
			return "", err
		}
		return alias + "." + dialect.QuoteIdentifier(column), nil
	}

	if c.schema == nil {
		return "", errSchemaRequired(fmt.Sprintf("relationship path '%s'", path))
	}
	depth := len(parts) - 1
	if depth > c.config.MaxRelationshipDepth {
		return "", errRelationshipDepthExceeded(c.config.MaxRelationshipDepth, depth)
	}

	objectName := c.currentObject
	for _, part := range parts[:len(parts)-1] {
		obj, ok := c.schema.Object(objectName)
		if !ok {
			return "", errUnknownObject(objectName)
		}
		rel, ok := obj.RelationshipField(part)
		if !ok {
			if obj.HasField(part) {
				return "", errNotARelationship(part, obj.Name)
			}
			return "", errUnknownField(part, obj.Name)
		}
		if len(rel.ReferenceTo) == 0 {
			return "", errNotARelationship(part, obj.Name)
		}
		target := rel.ReferenceTo[0]
		targetObj, ok := c.schema.Object(target)
		if !ok {
			return "", errUnknownObject(target)
		}

		key := alias + "." + rel.ColumnName
		joinAlias, ok := c.joinAliases[key]
		if !ok {
			joinAlias = c.nextAlias()
			c.joinAliases[key] = joinAlias
			c.joins = append(c.joins, joinClause{
				table: targetObj.TableName,
				alias: joinAlias,
				condition: fmt.Sprintf("%s.%s = %s.%s",
					alias, dialect.QuoteIdentifier(rel.ColumnName),
					joinAlias, dialect.QuoteIdentifier("id")),
			})
		}
		alias = joinAlias
		objectName = target
	}

	obj, _ := c.schema.Object(objectName)
	last := parts[len(parts)-1]
	f, ok := obj.Field(last)
	if !ok {
		return "", errUnknownField(last, obj.Name)
	}
	return alias + "." + dialect.QuoteIdentifier(f.ColumnName), nil
}

// convertChildSubquery renders a child-relationship subquery as a
// correlated JSON array aggregation aliased to the relationship name.
func (c *Converter) convertChildSubquery(sub *ast.SoqlQuery) (string, error) {
	if c.schema == nil {
		return "", errSchemaRequired("child relationship subqueries")
	}
	parent, ok := c.schema.Object(c.currentObject)
	if !ok {
		return "", errUnknownObject(c.currentObject)
	}
	rel, ok := parent.ChildRelationship(sub.From)
	if !ok {
		return "", errUnknownChildRelationship(sub.From, parent.Name)
	}
	child, ok := c.schema.Object(rel.ChildObject)
	if !ok {
		return "", errUnknownObject(rel.ChildObject)
	}

	parentAlias := c.currentAlias()
	childAlias := c.nextAlias()

	fkColumn := schema.ToSnakeCase(rel.Field)
	if f, ok := child.Field(rel.Field); ok {
		fkColumn = f.ColumnName
	}

	var pairs []dialect.JSONPair
	for _, item := range sub.Select {
		fi, ok := item.(ast.FieldItem)
		if !ok {
			return "", errUnsupportedSoqlFeature("non-field selection in child subquery")
		}
		f, ok := child.Field(fi.Field)
		if !ok {
			return "", errUnknownField(fi.Field, child.Name)
		}
		pairs = append(pairs, dialect.JSONPair{
			Key:   fi.Field,
			Value: childAlias + "." + dialect.QuoteIdentifier(f.ColumnName),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "(SELECT %s FROM %s %s WHERE %s.%s = %s.%s",
		c.dialect.JSONArrayAgg(c.dialect.JSONObject(pairs)),
		dialect.QuoteIdentifier(child.TableName), childAlias,
		childAlias, dialect.QuoteIdentifier(fkColumn),
		parentAlias, dialect.QuoteIdentifier("id"))

	// Inner clauses resolve against the child object.
	savedObject, savedAliases := c.currentObject, c.tableAliases
	c.currentObject = rel.ChildObject
	c.tableAliases = map[string]string{strings.ToLower(rel.ChildObject): childAlias}
	defer func() {
		c.currentObject, c.tableAliases = savedObject, savedAliases
	}()

	if sub.Where != nil {
		inner, err := c.convertExpr(sub.Where)
		if err != nil {
			return "", err
		}
		b.WriteString(" AND (")
		b.WriteString(inner)
		b.WriteByte(')')
	}
	if len(sub.OrderBy) > 0 {
		orderBy, err := c.convertOrderBy(sub.OrderBy)
		if err != nil {
			return "", err
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(orderBy, ", "))
	}
	if sub.Limit != nil {
		limit, err := c.convertExpr(sub.Limit)
		if err != nil {
			return "", err
		}
		b.WriteString(" LIMIT ")
		b.WriteString(limit)
	}

	b.WriteString(") AS ")
	b.WriteString(dialect.QuoteIdentifier(rel.RelationshipName))
	c.columnMap[rel.RelationshipName] = rel.RelationshipName
	return b.String(), nil
}

// convertTypeOf renders a TYPEOF selection: one LEFT JOIN per WHEN branch
// discriminated by the <field>_type column, and one CASE expression per
// requested field.
func (c *Converter) convertTypeOf(it ast.TypeOfItem) ([]string, error) {
	if c.schema == nil {
		return nil, errSchemaRequired("TYPEOF")
	}
	obj, ok := c.schema.Object(c.currentObject)
	if !ok {
		return nil, errUnknownObject(c.currentObject)
	}
	// TYPEOF names either the field or its relationship: WhatId or What.
	f, ok := obj.Field(it.Field)
	if !ok {
		f, ok = obj.RelationshipField(it.Field)
	}
	if !ok {
		return nil, errUnknownField(it.Field, obj.Name)
	}
	if !f.IsPolymorphic {
		return nil, errNotPolymorphic(it.Field, obj.Name)
	}

	parentAlias := c.currentAlias()
	typeColumn := parentAlias + "." + dialect.QuoteIdentifier(f.ColumnName+"_type")
	idColumn := parentAlias + "." + dialect.QuoteIdentifier(f.ColumnName)

	type branch struct {
		typeName string
		alias    string
		object   *schema.Object
	}
	branches := make([]branch, 0, len(it.Whens))
	var fieldOrder []string
	fieldWhens := make(map[string][]int) // field -> branch indexes that request it

	for _, when := range it.Whens {
		target, ok := c.schema.Object(when.TypeName)
		if !ok {
			return nil, errUnknownObject(when.TypeName)
		}
		alias := c.nextAlias()
		c.joins = append(c.joins, joinClause{
			table: target.TableName,
			alias: alias,
			condition: fmt.Sprintf("%s = %s.%s AND %s = '%s'",
				idColumn, alias, dialect.QuoteIdentifier("id"),
				typeColumn, when.TypeName),
		})
		idx := len(branches)
		branches = append(branches, branch{when.TypeName, alias, target})
		for _, field := range when.Fields {
			if _, seen := fieldWhens[field]; !seen {
				fieldOrder = append(fieldOrder, field)
			}
			fieldWhens[field] = append(fieldWhens[field], idx)
		}
	}

	elseFields := make(map[string]bool, len(it.ElseFields))
	for _, field := range it.ElseFields {
		elseFields[field] = true
	}

	columns := make([]string, 0, len(fieldOrder))
	for _, field := range fieldOrder {
		var b strings.Builder
		b.WriteString("CASE ")
		b.WriteString(typeColumn)
		var branchColumns []string
		for _, idx := range fieldWhens[field] {
			br := branches[idx]
			bf, ok := br.object.Field(field)
			if !ok {
				return nil, errUnknownField(field, br.object.Name)
			}
			column := br.alias + "." + dialect.QuoteIdentifier(bf.ColumnName)
			branchColumns = append(branchColumns, column)
			fmt.Fprintf(&b, " WHEN '%s' THEN %s", br.typeName, column)
		}
		if elseFields[field] {
			fmt.Fprintf(&b, " ELSE COALESCE(%s)", strings.Join(branchColumns, ", "))
		}
		outName := it.Field + "." + field
		fmt.Fprintf(&b, " END AS %s", dialect.QuoteIdentifier(outName))
		c.columnMap[outName] = outName
		columns = append(columns, b.String())
	}
	return columns, nil
}
