package ddl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/apexql/pkg/ddl"
	"github.com/leapstack-labs/apexql/pkg/dialect"
	"github.com/leapstack-labs/apexql/pkg/schema"
)

func testSchema() *schema.Schema {
	account := schema.NewObject("Account")
	account.AddField(schema.NewField("Id", schema.TypeID).WithNillable(false))
	account.AddField(schema.NewField("Name", schema.TypeString).WithNillable(false))
	account.AddField(schema.NewField("Industry", schema.TypePicklist))
	account.AddField(schema.NewField("AnnualRevenue", schema.TypeCurrency))
	account.AddField(schema.NewField("IsDeleted", schema.TypeBoolean))
	account.AddField(schema.NewField("CreatedDate", schema.TypeDateTime))
	account.AddChildRelationship(schema.NewChildRelationship("Contacts", "Contact", "AccountId"))

	contact := schema.NewObject("Contact")
	contact.AddField(schema.NewField("Id", schema.TypeID).WithNillable(false))
	contact.AddField(schema.NewField("FirstName", schema.TypeString))
	contact.AddField(schema.NewField("LastName", schema.TypeString))
	contact.AddField(schema.NewField("Email", schema.TypeEmail))
	contact.AddField(schema.NewField("AccountId", schema.TypeLookup).
		WithReference("Account").
		WithRelationshipName("Account"))
	contact.AddField(schema.NewField("IsDeleted", schema.TypeBoolean))

	s := schema.New()
	s.AddObject(account)
	s.AddObject(contact)
	return s
}

// ---------- Table Generation Tests ----------

func TestTablePostgres(t *testing.T) {
	s := testSchema()
	gen := ddl.New(dialect.Postgres{})

	account, ok := s.Object("Account")
	require.True(t, ok)
	sql := gen.Table(account)

	assert.Contains(t, sql, `CREATE TABLE "account"`)
	assert.Contains(t, sql, `"id" TEXT PRIMARY KEY`)
	assert.Contains(t, sql, `"name" TEXT NOT NULL`)
	assert.Contains(t, sql, `"industry" TEXT`)
	assert.Contains(t, sql, `"annual_revenue" NUMERIC`)
	assert.Contains(t, sql, `"is_deleted" BOOLEAN`)
	assert.Contains(t, sql, `"created_date" TIMESTAMP`)
}

func TestTableSQLite(t *testing.T) {
	s := testSchema()
	gen := ddl.New(dialect.SQLite{})

	account, ok := s.Object("Account")
	require.True(t, ok)
	sql := gen.Table(account)

	assert.Contains(t, sql, `"is_deleted" INTEGER`)
	assert.Contains(t, sql, `"created_date" TEXT`)
	assert.NotContains(t, sql, "FOREIGN KEY")
}

func TestColumnOrdering(t *testing.T) {
	s := testSchema()
	gen := ddl.New(dialect.Postgres{})

	account, _ := s.Object("Account")
	sql := gen.Table(account)

	id := strings.Index(sql, `"id"`)
	name := strings.Index(sql, `"name"`)
	revenue := strings.Index(sql, `"annual_revenue"`)
	created := strings.Index(sql, `"created_date"`)
	assert.Less(t, id, name)
	assert.Less(t, name, revenue)
	assert.Less(t, revenue, created)
}

func TestForeignKeyPostgres(t *testing.T) {
	s := testSchema()
	gen := ddl.New(dialect.Postgres{})

	contact, _ := s.Object("Contact")
	sql := gen.Table(contact)

	assert.Contains(t, sql, `FOREIGN KEY ("account_id") REFERENCES "account"(id)`)
}

func TestSelfReferenceSkipsForeignKey(t *testing.T) {
	obj := schema.NewObject("Account")
	obj.AddField(schema.NewField("Id", schema.TypeID).WithNillable(false))
	obj.AddField(schema.NewField("ParentId", schema.TypeLookup).
		WithReference("Account").
		WithRelationshipName("Parent"))

	sql := ddl.New(dialect.Postgres{}).Table(obj)
	assert.NotContains(t, sql, "FOREIGN KEY")
}

func TestPolymorphicDiscriminatorColumn(t *testing.T) {
	task := schema.NewObject("Task")
	task.AddField(schema.NewField("Id", schema.TypeID).WithNillable(false))
	task.AddField(schema.NewField("WhatId", schema.TypeReference).
		WithPolymorphicReference("Account", "Opportunity").
		WithRelationshipName("What"))

	sql := ddl.New(dialect.Postgres{}).Table(task)

	assert.Contains(t, sql, `"what_id" TEXT`)
	assert.Contains(t, sql, `"what_id_type" TEXT`)
	assert.NotContains(t, sql, "FOREIGN KEY")
}

// ---------- Index Tests ----------

func TestIndexes(t *testing.T) {
	s := testSchema()
	gen := ddl.New(dialect.Postgres{})

	contact, _ := s.Object("Contact")
	indexes := gen.Indexes(contact)

	joined := strings.Join(indexes, "\n")
	assert.Contains(t, joined, `CREATE INDEX "idx_contact_account_id" ON "contact" ("account_id")`)
	assert.Contains(t, joined, `"idx_contact_is_deleted"`)

	account, _ := s.Object("Account")
	joined = strings.Join(gen.Indexes(account), "\n")
	assert.Contains(t, joined, `"idx_account_name"`)
	assert.Contains(t, joined, `"idx_account_created_date"`)
}

// ---------- Script Tests ----------

func TestSchemaScript(t *testing.T) {
	s := testSchema()
	sql := ddl.New(dialect.Postgres{}).Schema(s)

	account := strings.Index(sql, `CREATE TABLE "account"`)
	contact := strings.Index(sql, `CREATE TABLE "contact"`)
	index := strings.Index(sql, "CREATE INDEX")
	require.GreaterOrEqual(t, account, 0)
	assert.Less(t, account, contact)
	assert.Less(t, contact, index)
}

func TestDropSchemaScript(t *testing.T) {
	s := testSchema()
	sql := ddl.New(dialect.Postgres{}).DropSchema(s)

	contact := strings.Index(sql, `DROP TABLE IF EXISTS "contact"`)
	account := strings.Index(sql, `DROP TABLE IF EXISTS "account"`)
	require.GreaterOrEqual(t, contact, 0)
	assert.Less(t, contact, account)
}
