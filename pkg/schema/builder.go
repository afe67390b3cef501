package schema

// Builder assembles a schema from objects.
type Builder struct {
	schema *Schema
}

// NewBuilder returns an empty schema builder.
func NewBuilder() *Builder {
	return &Builder{schema: New()}
}

// WithObject adds an object.
func (b *Builder) WithObject(obj *Object) *Builder {
	b.schema.AddObject(obj)
	return b
}

// WithStandardObject adds an object carrying only the standard system
// fields: Id, Name, the audit fields, IsDeleted, and the polymorphic
// OwnerId.
func (b *Builder) WithStandardObject(name string) *Builder {
	obj := NewObject(name)
	AddSystemFields(obj)
	obj.AddField(NewField("Name", TypeString))
	obj.AddField(NewField("OwnerId", TypeReference).
		WithPolymorphicReference("User", "Group").
		WithRelationshipName("Owner"))
	b.schema.AddObject(obj)
	return b
}

// Build returns the assembled schema.
func (b *Builder) Build() *Schema {
	return b.schema
}

// AddSystemFields adds the system fields every object carries: the Id
// primary key, created/modified audit lookups and timestamps, and the
// IsDeleted soft-delete flag.
func AddSystemFields(obj *Object) {
	obj.AddField(NewField("Id", TypeID).WithNillable(false))
	obj.AddField(NewField("CreatedById", TypeLookup).
		WithReference("User").
		WithRelationshipName("CreatedBy"))
	obj.AddField(NewField("CreatedDate", TypeDateTime))
	obj.AddField(NewField("LastModifiedById", TypeLookup).
		WithReference("User").
		WithRelationshipName("LastModifiedBy"))
	obj.AddField(NewField("LastModifiedDate", TypeDateTime))
	obj.AddField(NewField("SystemModstamp", TypeDateTime))
	obj.AddField(NewField("IsDeleted", TypeBoolean))
}
