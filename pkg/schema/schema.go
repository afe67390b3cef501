// Package schema models the object catalog used for query translation and
// DDL generation: objects with typed fields, parent relationships, and
// child relationships. Lookups are case-insensitive by API name.
package schema

import (
	"sort"
	"strings"
)

// Schema is a catalog of objects keyed by API name.
type Schema struct {
	objects map[string]*Object
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{objects: make(map[string]*Object)}
}

// AddObject adds an object to the schema, replacing any object with the
// same API name.
func (s *Schema) AddObject(obj *Object) {
	s.objects[strings.ToLower(obj.Name)] = obj
}

// Object returns an object by API name.
func (s *Schema) Object(name string) (*Object, bool) {
	obj, ok := s.objects[strings.ToLower(name)]
	return obj, ok
}

// HasObject reports whether an object exists.
func (s *Schema) HasObject(name string) bool {
	_, ok := s.objects[strings.ToLower(name)]
	return ok
}

// Objects returns all objects sorted by API name.
func (s *Schema) Objects() []*Object {
	out := make([]*Object, 0, len(s.objects))
	for _, obj := range s.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Object describes one object: its SQL table name, display label, fields,
// and child relationships.
type Object struct {
	Name               string
	TableName          string
	Label              string
	ChildRelationships []ChildRelationship

	fields map[string]*Field
}

// NewObject returns an object whose table name is the snake-case form of
// the API name and whose label is derived from it.
func NewObject(name string) *Object {
	return &Object{
		Name:      name,
		TableName: ToSnakeCase(name),
		Label:     DeriveLabel(name),
		fields:    make(map[string]*Field),
	}
}

// WithTableName overrides the SQL table name.
func (o *Object) WithTableName(table string) *Object {
	o.TableName = table
	return o
}

// WithLabel overrides the display label.
func (o *Object) WithLabel(label string) *Object {
	o.Label = label
	return o
}

// AddField adds a field, replacing any field with the same API name.
func (o *Object) AddField(f *Field) {
	o.fields[strings.ToLower(f.Name)] = f
}

// Field returns a field by API name.
func (o *Object) Field(name string) (*Field, bool) {
	f, ok := o.fields[strings.ToLower(name)]
	return f, ok
}

// HasField reports whether a field exists.
func (o *Object) HasField(name string) bool {
	_, ok := o.fields[strings.ToLower(name)]
	return ok
}

// Fields returns all fields sorted by API name.
func (o *Object) Fields() []*Field {
	out := make([]*Field, 0, len(o.fields))
	for _, f := range o.fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RelationshipField returns the field whose relationship name matches,
// case-insensitively. Used to resolve parent traversals in field paths.
func (o *Object) RelationshipField(relationship string) (*Field, bool) {
	lower := strings.ToLower(relationship)
	for _, f := range o.fields {
		if f.RelationshipName != "" && strings.ToLower(f.RelationshipName) == lower {
			return f, true
		}
	}
	return nil, false
}

// AddChildRelationship appends a child relationship.
func (o *Object) AddChildRelationship(rel ChildRelationship) {
	o.ChildRelationships = append(o.ChildRelationships, rel)
}

// ChildRelationship returns a child relationship by name,
// case-insensitively.
func (o *Object) ChildRelationship(name string) (ChildRelationship, bool) {
	lower := strings.ToLower(name)
	for _, rel := range o.ChildRelationships {
		if strings.ToLower(rel.RelationshipName) == lower {
			return rel, true
		}
	}
	return ChildRelationship{}, false
}

// Field describes one field of an object.
type Field struct {
	Name             string
	ColumnName       string
	Type             FieldType
	ReferenceTo      []string // lookup targets; more than one means polymorphic
	RelationshipName string   // parent traversal name, e.g. "Account" for AccountId
	IsPolymorphic    bool
	Length           int // string length, 0 when unset
	Precision        int
	Scale            int
	Nillable         bool
	PicklistValues   []string
}

// NewField returns a field whose column name is the snake-case form of the
// API name. Fields are nillable unless stated otherwise.
func NewField(name string, t FieldType) *Field {
	return &Field{
		Name:       name,
		ColumnName: ToSnakeCase(name),
		Type:       t,
		Nillable:   true,
	}
}

// WithColumnName overrides the SQL column name.
func (f *Field) WithColumnName(column string) *Field {
	f.ColumnName = column
	return f
}

// WithReference marks the field as a single-target lookup.
func (f *Field) WithReference(target string) *Field {
	f.ReferenceTo = []string{target}
	return f
}

// WithPolymorphicReference marks the field as a polymorphic lookup.
func (f *Field) WithPolymorphicReference(targets ...string) *Field {
	f.ReferenceTo = targets
	f.IsPolymorphic = true
	return f
}

// WithRelationshipName sets the parent traversal name.
func (f *Field) WithRelationshipName(name string) *Field {
	f.RelationshipName = name
	return f
}

// WithLength sets the string length.
func (f *Field) WithLength(length int) *Field {
	f.Length = length
	return f
}

// WithPrecision sets numeric precision and scale.
func (f *Field) WithPrecision(precision, scale int) *Field {
	f.Precision = precision
	f.Scale = scale
	return f
}

// WithNillable sets whether the field accepts null.
func (f *Field) WithNillable(nillable bool) *Field {
	f.Nillable = nillable
	return f
}

// WithPicklistValues sets the valid picklist values.
func (f *Field) WithPicklistValues(values ...string) *Field {
	f.PicklistValues = values
	return f
}

// IsRelationship reports whether the field references another object.
func (f *Field) IsRelationship() bool {
	return len(f.ReferenceTo) > 0
}

// SingleReference returns the lone lookup target of a non-polymorphic
// relationship field.
func (f *Field) SingleReference() (string, bool) {
	if len(f.ReferenceTo) == 1 {
		return f.ReferenceTo[0], true
	}
	return "", false
}

// ChildRelationship is a named inverse relationship used by subqueries:
// SELECT (SELECT ... FROM Contacts) resolves through the parent's
// relationship named "Contacts".
type ChildRelationship struct {
	RelationshipName string
	ChildObject      string
	Field            string // foreign-key field on the child object
}

// NewChildRelationship returns a child relationship.
func NewChildRelationship(relationship, childObject, field string) ChildRelationship {
	return ChildRelationship{
		RelationshipName: relationship,
		ChildObject:      childObject,
		Field:            field,
	}
}
