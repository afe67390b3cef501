package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/parser"
)

func parseQuery(t *testing.T, src string) *ast.SoqlQuery {
	t.Helper()
	query, err := parser.ParseQuery(src)
	require.NoError(t, err)
	return query
}

// ---------- SELECT Clause Tests ----------

func TestSelectFields(t *testing.T) {
	query := parseQuery(t, "SELECT Id, Name, Owner.Name FROM Account")

	assert.Equal(t, "Account", query.From)
	require.Len(t, query.Select, 3)
	assert.Equal(t, ast.FieldItem{Field: "Id"}, query.Select[0])
	assert.Equal(t, ast.FieldItem{Field: "Name"}, query.Select[1])
	assert.Equal(t, ast.FieldItem{Field: "Owner.Name"}, query.Select[2])
}

func TestSelectAggregates(t *testing.T) {
	query := parseQuery(t, "SELECT COUNT(), COUNT(Id) total, SUM(Amount), MAX(CloseDate) latest FROM Opportunity")

	require.Len(t, query.Select, 4)
	assert.Equal(t, ast.AggregateItem{Function: "COUNT"}, query.Select[0])
	assert.Equal(t, ast.AggregateItem{Function: "COUNT", Field: "Id", Alias: "total"}, query.Select[1])
	assert.Equal(t, ast.AggregateItem{Function: "SUM", Field: "Amount"}, query.Select[2])
	assert.Equal(t, ast.AggregateItem{Function: "MAX", Field: "CloseDate", Alias: "latest"}, query.Select[3])
}

func TestSelectSubquery(t *testing.T) {
	query := parseQuery(t, "SELECT Id, (SELECT Id, Email FROM Contacts WHERE IsActive = true) FROM Account")

	require.Len(t, query.Select, 2)
	sub, ok := query.Select[1].(ast.SubqueryItem)
	require.True(t, ok)
	assert.Equal(t, "Contacts", sub.Query.From)
	require.Len(t, sub.Query.Select, 2)
	assert.NotNil(t, sub.Query.Where)
}

func TestSelectTypeOf(t *testing.T) {
	query := parseQuery(t, `SELECT TYPEOF What
		WHEN Account THEN Phone, NumberOfEmployees
		WHEN Opportunity THEN Amount
		ELSE Name
		END FROM Event`)

	require.Len(t, query.Select, 1)
	item, ok := query.Select[0].(ast.TypeOfItem)
	require.True(t, ok)
	assert.Equal(t, "What", item.Field)
	require.Len(t, item.Whens, 2)
	assert.Equal(t, "Account", item.Whens[0].TypeName)
	assert.Equal(t, []string{"Phone", "NumberOfEmployees"}, item.Whens[0].Fields)
	assert.Equal(t, []string{"Amount"}, item.Whens[1].Fields)
	assert.Equal(t, []string{"Name"}, item.ElseFields)
}

// ---------- WHERE Clause Tests ----------

func TestWhereComparisons(t *testing.T) {
	tests := []struct {
		name string
		src  string
		op   ast.BinaryOp
	}{
		{"single equals", "SELECT Id FROM Account WHERE Name = 'x'", ast.OpEqual},
		{"double equals", "SELECT Id FROM Account WHERE Name == 'x'", ast.OpEqual},
		{"not equal", "SELECT Id FROM Account WHERE Name != 'x'", ast.OpNotEqual},
		{"angle not equal", "SELECT Id FROM Account WHERE Name <> 'x'", ast.OpNotEqual},
		{"less than", "SELECT Id FROM Account WHERE Amount < 5", ast.OpLess},
		{"greater or equal", "SELECT Id FROM Account WHERE Amount >= 5", ast.OpGreaterEqual},
		{"like", "SELECT Id FROM Account WHERE Name LIKE 'Acme%'", ast.OpLike},
		{"includes", "SELECT Id FROM Account WHERE Tags INCLUDES ('a;b')", ast.OpIncludes},
		{"excludes", "SELECT Id FROM Account WHERE Tags EXCLUDES ('c')", ast.OpExcludes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := parseQuery(t, tt.src)
			cmp, ok := query.Where.(*ast.BinaryExpr)
			require.True(t, ok)
			assert.Equal(t, tt.op, cmp.Op)
		})
	}
}

func TestWhereBooleanLogic(t *testing.T) {
	query := parseQuery(t, "SELECT Id FROM Account WHERE (A = 1 OR B = 2) AND NOT C = 3")

	and, ok := query.Where.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, and.Op)

	or, ok := and.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, or.Op)

	not, ok := and.Right.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryNot, not.Op)
}

func TestWhereInList(t *testing.T) {
	query := parseQuery(t, "SELECT Id FROM Account WHERE StageName IN ('Won', 'Lost') AND Type NOT IN :types")

	and := query.Where.(*ast.BinaryExpr)

	in, ok := and.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpIn, in.Op)
	values, ok := in.Right.(*ast.NewArray)
	require.True(t, ok)
	assert.Len(t, values.Initializer, 2)

	notIn, ok := and.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpNotIn, notIn.Op)
	bind, ok := notIn.Right.(*ast.BindVar)
	require.True(t, ok)
	assert.Equal(t, "types", bind.Name)
}

func TestWhereBindVariable(t *testing.T) {
	query := parseQuery(t, "SELECT Id FROM Contact WHERE AccountId = :acc.Id")

	cmp := query.Where.(*ast.BinaryExpr)
	bind, ok := cmp.Right.(*ast.BindVar)
	require.True(t, ok)
	assert.Equal(t, "acc.Id", bind.Name)
}

func TestWhereDateLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "SELECT Id FROM Case WHERE CreatedDate = YESTERDAY", "YESTERDAY"},
		{"case preserved", "SELECT Id FROM Case WHERE CreatedDate = Last_Week", "Last_Week"},
		{"parameterized", "SELECT Id FROM Case WHERE CreatedDate = LAST_N_DAYS:30", "LAST_N_DAYS:30"},
		{"fiscal", "SELECT Id FROM Case WHERE CreatedDate = NEXT_N_FISCAL_QUARTERS:2", "NEXT_N_FISCAL_QUARTERS:2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := parseQuery(t, tt.src)
			cmp := query.Where.(*ast.BinaryExpr)
			ident, ok := cmp.Right.(*ast.Identifier)
			require.True(t, ok)
			assert.Equal(t, tt.want, ident.Name)
		})
	}
}

// ---------- Trailing Clause Tests ----------

func TestWithSecurityClause(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.SoqlWith
	}{
		{"security enforced", "SELECT Id FROM Account WITH SECURITY_ENFORCED", ast.WithSecurityEnforced},
		{"user mode", "SELECT Id FROM Account WITH USER_MODE", ast.WithUserMode},
		{"system mode", "SELECT Id FROM Account WITH SYSTEM_MODE", ast.WithSystemMode},
		{"absent", "SELECT Id FROM Account", ast.WithNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuery(t, tt.src).With)
		})
	}
}

func TestGroupByHaving(t *testing.T) {
	query := parseQuery(t, "SELECT StageName, COUNT(Id) FROM Opportunity GROUP BY StageName HAVING COUNT(Id) > 5")

	assert.Equal(t, []string{"StageName"}, query.GroupBy)
	require.NotNil(t, query.Having)
	cmp, ok := query.Having.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpGreater, cmp.Op)
}

func TestOrderByNulls(t *testing.T) {
	query := parseQuery(t, "SELECT Id FROM Account ORDER BY Name DESC NULLS LAST, CreatedDate, Amount ASC NULLS FIRST")

	require.Len(t, query.OrderBy, 3)
	assert.Equal(t, ast.OrderByField{Field: "Name", Ascending: false, Nulls: ast.NullsLast}, query.OrderBy[0])
	assert.Equal(t, ast.OrderByField{Field: "CreatedDate", Ascending: true, Nulls: ast.NullsDefault}, query.OrderBy[1])
	assert.Equal(t, ast.OrderByField{Field: "Amount", Ascending: true, Nulls: ast.NullsFirst}, query.OrderBy[2])
}

func TestLimitOffset(t *testing.T) {
	query := parseQuery(t, "SELECT Id FROM Account LIMIT 10 OFFSET :skip")

	limit, ok := query.Limit.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(10), limit.Value)

	offset, ok := query.Offset.(*ast.BindVar)
	require.True(t, ok)
	assert.Equal(t, "skip", offset.Name)
}

func TestForClause(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.ForClause
	}{
		{"update", "SELECT Id FROM Account FOR UPDATE", ast.ForUpdate},
		{"view", "SELECT Id FROM Account FOR VIEW", ast.ForView},
		{"reference", "SELECT Id FROM Account FOR REFERENCE", ast.ForReference},
		{"absent", "SELECT Id FROM Account", ast.ForNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuery(t, tt.src).For)
		})
	}
}

func TestSoftKeywordFields(t *testing.T) {
	// Clause keywords double as field names in a SELECT list.
	query := parseQuery(t, "SELECT Id, Order, Group, First FROM Thing ORDER BY Order")

	require.Len(t, query.Select, 4)
	assert.Equal(t, ast.FieldItem{Field: "Order"}, query.Select[1])
	assert.Equal(t, ast.FieldItem{Field: "Group"}, query.Select[2])
	require.Len(t, query.OrderBy, 1)
	assert.Equal(t, "Order", query.OrderBy[0].Field)
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing from", "SELECT Id"},
		{"trailing tokens", "SELECT Id FROM Account garbage ="},
		{"bare not without in", "SELECT Id FROM Account WHERE Type NOT 'x'"},
		{"typeof when without then", "SELECT TYPEOF What WHEN Account Phone END FROM Event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseQuery(tt.src)
			require.Error(t, err)
		})
	}
}

// ---------- Embedded Query Tests ----------

func TestEmbeddedSoqlExpression(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		List<Account> accounts = [SELECT Id FROM Account WHERE OwnerId = :UserInfo.getUserId() LIMIT 200];
	} }`)

	decl := stmts[0].(*ast.LocalVarDecl)
	query, ok := decl.Declarators[0].Initializer.(*ast.SoqlQuery)
	require.True(t, ok)
	assert.Equal(t, "Account", query.From)
	require.NotNil(t, query.Where)
	require.NotNil(t, query.Limit)
}

func TestEmbeddedSoqlInForEach(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		for (Contact c : [SELECT Id FROM Contact]) { }
	} }`)

	forEach := stmts[0].(*ast.ForEachStmt)
	query, ok := forEach.Iterable.(*ast.SoqlQuery)
	require.True(t, ok)
	assert.Equal(t, "Contact", query.From)
}

func TestBracketedListStillParses(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		x = items[0];
	} }`)

	stmt := stmts[0].(*ast.ExprStmt)
	assign := stmt.Expression.(*ast.AssignExpr)
	_, ok := assign.Value.(*ast.ArrayAccess)
	assert.True(t, ok)
}

// ---------- SOSL Tests ----------

func soslFromExpr(t *testing.T, src string) *ast.SoslQuery {
	t.Helper()
	stmts := methodStatements(t, "public class T { void m() { Search.SearchResults r = "+src+"; } }")
	decl := stmts[0].(*ast.LocalVarDecl)
	query, ok := decl.Declarators[0].Initializer.(*ast.SoslQuery)
	require.True(t, ok)
	return query
}

func TestSoslBasicSearch(t *testing.T) {
	query := soslFromExpr(t, "[FIND 'Acme*' IN ALL FIELDS RETURNING Account(Id, Name), Contact]")

	assert.Equal(t, "Acme*", query.SearchTerm)
	assert.Equal(t, ast.AllFields, query.SearchGroup)
	require.Len(t, query.Returning, 2)
	assert.Equal(t, "Account", query.Returning[0].Object)
	assert.Equal(t, []string{"Id", "Name"}, query.Returning[0].Fields)
	assert.Equal(t, "Contact", query.Returning[1].Object)
	assert.Empty(t, query.Returning[1].Fields)
}

func TestSoslReturningFilters(t *testing.T) {
	query := soslFromExpr(t, "[FIND 'smith' RETURNING Contact(Id WHERE IsActive = true ORDER BY LastName LIMIT 25)]")

	require.Len(t, query.Returning, 1)
	entry := query.Returning[0]
	require.NotNil(t, entry.Where)
	require.Len(t, entry.OrderBy, 1)
	assert.Equal(t, "LastName", entry.OrderBy[0].Field)
	assert.True(t, entry.HasLimit)
	assert.Equal(t, int64(25), entry.Limit)
}

func TestSoslWithClauses(t *testing.T) {
	query := soslFromExpr(t, "[FIND 'x' RETURNING Account WITH SNIPPET WITH NETWORK = net1 WITH DATA CATEGORY Geography AT Europe]")

	require.Len(t, query.With, 3)
	assert.Equal(t, ast.WithSnippet, query.With[0].Kind)
	assert.Equal(t, ast.WithNetwork, query.With[1].Kind)
	assert.Equal(t, "net1", query.With[1].Network)
	assert.Equal(t, ast.WithDataCategory, query.With[2].Kind)
	assert.Equal(t, "Geography", query.With[2].Group)
	assert.Equal(t, "Europe", query.With[2].Category)
}

func TestSoslLimit(t *testing.T) {
	query := soslFromExpr(t, "[FIND 'x' RETURNING Account LIMIT 50]")
	limit, ok := query.Limit.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(50), limit.Value)
}
