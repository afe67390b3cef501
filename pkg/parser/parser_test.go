package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/parser"
)

func parseClass(t *testing.T, src string) *ast.ClassDecl {
	t.Helper()
	unit, err := parser.Parse(src)
	require.NoError(t, err)
	require.Len(t, unit.Declarations, 1)
	class, ok := unit.Declarations[0].(*ast.ClassDecl)
	require.True(t, ok, "expected a class declaration")
	return class
}

// methodStatements parses a class with a single method and returns its body.
func methodStatements(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	class := parseClass(t, src)
	require.NotEmpty(t, class.Members)
	method, ok := class.Members[0].(*ast.MethodDecl)
	require.True(t, ok, "expected a method declaration")
	require.NotNil(t, method.Body)
	return method.Body.Statements
}

// ---------- Declaration Tests ----------

func TestClassWithStringField(t *testing.T) {
	class := parseClass(t, `PUBLIC CLASS T { String s = 'he\nllo'; }`)

	assert.Equal(t, "T", class.Name)
	assert.Equal(t, ast.AccessPublic, class.Modifiers.Access)

	require.Len(t, class.Members, 1)
	field, ok := class.Members[0].(*ast.FieldDecl)
	require.True(t, ok)
	assert.Equal(t, "String", field.Type.Name)
	require.Len(t, field.Declarators, 1)
	assert.Equal(t, "s", field.Declarators[0].Name)

	lit, ok := field.Declarators[0].Initializer.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, "he\nllo", lit.Value)
}

func TestClassModifiers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.ClassModifiers
	}{
		{
			"public with sharing",
			"public with sharing class T {}",
			ast.ClassModifiers{Access: ast.AccessPublic, Sharing: ast.WithSharing},
		},
		{
			"global abstract",
			"global abstract class T {}",
			ast.ClassModifiers{Access: ast.AccessGlobal, IsAbstract: true},
		},
		{
			"virtual without sharing",
			"virtual without sharing class T {}",
			ast.ClassModifiers{IsVirtual: true, Sharing: ast.WithoutSharing},
		},
		{
			"inherited sharing",
			"public inherited sharing class T {}",
			ast.ClassModifiers{Access: ast.AccessPublic, Sharing: ast.InheritedSharing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := parseClass(t, tt.src)
			assert.Equal(t, tt.want, class.Modifiers)
		})
	}
}

func TestClassExtendsImplements(t *testing.T) {
	class := parseClass(t, "public class T extends Base implements A, B {}")
	require.NotNil(t, class.Extends)
	assert.Equal(t, "Base", class.Extends.Name)
	require.Len(t, class.Implements, 2)
	assert.Equal(t, "A", class.Implements[0].Name)
	assert.Equal(t, "B", class.Implements[1].Name)
}

func TestInterfaceDeclaration(t *testing.T) {
	unit, err := parser.Parse("public interface Shape { Double area(); void scale(Double factor); }")
	require.NoError(t, err)
	require.Len(t, unit.Declarations, 1)

	iface, ok := unit.Declarations[0].(*ast.InterfaceDecl)
	require.True(t, ok)
	assert.Equal(t, "Shape", iface.Name)
	require.Len(t, iface.Members, 2)

	area, ok := iface.Members[0].(*ast.MethodSignature)
	require.True(t, ok)
	assert.Equal(t, "area", area.Name)
	assert.Equal(t, "Double", area.ReturnType.Name)
	assert.Empty(t, area.Parameters)

	scale, ok := iface.Members[1].(*ast.MethodSignature)
	require.True(t, ok)
	require.Len(t, scale.Parameters, 1)
	assert.Equal(t, "factor", scale.Parameters[0].Name)
}

func TestEnumDeclaration(t *testing.T) {
	unit, err := parser.Parse("public enum Season { SPRING, SUMMER, FALL, WINTER }")
	require.NoError(t, err)

	enum, ok := unit.Declarations[0].(*ast.EnumDecl)
	require.True(t, ok)
	assert.Equal(t, "Season", enum.Name)
	assert.Equal(t, []string{"SPRING", "SUMMER", "FALL", "WINTER"}, enum.Values)
}

func TestTriggerDeclaration(t *testing.T) {
	unit, err := parser.Parse("trigger AccountTrigger on Account (before insert, after update, after undelete) {}")
	require.NoError(t, err)

	trigger, ok := unit.Declarations[0].(*ast.TriggerDecl)
	require.True(t, ok)
	assert.Equal(t, "AccountTrigger", trigger.Name)
	assert.Equal(t, "Account", trigger.Object)
	assert.Equal(t, []ast.TriggerEvent{ast.BeforeInsert, ast.AfterUpdate, ast.AfterUndelete}, trigger.Events)
}

func TestBeforeUndeleteRejected(t *testing.T) {
	_, err := parser.Parse("trigger T on Account (before undelete) {}")
	require.Error(t, err)
}

func TestAnnotations(t *testing.T) {
	class := parseClass(t, `@isTest
		public class T {
			@AuraEnabled(cacheable=true)
			public static Integer n;
			@InvocableMethod(label='Do it' description='Runs the thing')
			public static void run() {}
		}`)

	require.Len(t, class.Annotations, 1)
	assert.Equal(t, "isTest", class.Annotations[0].Name)

	field := class.Members[0].(*ast.FieldDecl)
	require.Len(t, field.Annotations, 1)
	aura := field.Annotations[0]
	assert.Equal(t, "AuraEnabled", aura.Name)
	require.Len(t, aura.Parameters, 1)
	assert.Equal(t, "cacheable", aura.Parameters[0].Name)

	method := class.Members[1].(*ast.MethodDecl)
	require.Len(t, method.Annotations, 1)
	// Space-separated parameters, no commas.
	assert.Len(t, method.Annotations[0].Parameters, 2)
}

// ---------- Member Tests ----------

func TestConstructorChaining(t *testing.T) {
	class := parseClass(t, `public class T {
		public T() { this(1); }
		public T(Integer n) { super(); }
	}`)

	first, ok := class.Members[0].(*ast.ConstructorDecl)
	require.True(t, ok)
	require.NotNil(t, first.Chain)
	assert.Equal(t, ast.ChainThis, first.Chain.Kind)
	require.Len(t, first.Chain.Arguments, 1)

	second := class.Members[1].(*ast.ConstructorDecl)
	require.NotNil(t, second.Chain)
	assert.Equal(t, ast.ChainSuper, second.Chain.Kind)
	assert.Empty(t, second.Chain.Arguments)
}

func TestConstructorWithThisFieldAssignment(t *testing.T) {
	// this.name is an ordinary statement, not a chain call.
	class := parseClass(t, `public class T {
		public T(String name) { this.name = name; }
	}`)

	ctor, ok := class.Members[0].(*ast.ConstructorDecl)
	require.True(t, ok)
	assert.Nil(t, ctor.Chain)
	require.Len(t, ctor.Body.Statements, 1)

	stmt, ok := ctor.Body.Statements[0].(*ast.ExprStmt)
	require.True(t, ok)
	assign, ok := stmt.Expression.(*ast.AssignExpr)
	require.True(t, ok)
	access, ok := assign.Target.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "name", access.Field)
	_, ok = access.Object.(*ast.ThisExpr)
	assert.True(t, ok)
}

func TestPropertyAccessors(t *testing.T) {
	class := parseClass(t, `public class T {
		public Integer Count { get; private set; }
		public String Name {
			get { return name; }
			set { name = value; }
		}
	}`)

	auto, ok := class.Members[0].(*ast.PropertyDecl)
	require.True(t, ok)
	assert.Equal(t, "Count", auto.Name)
	require.NotNil(t, auto.Getter)
	require.NotNil(t, auto.Setter)
	assert.Nil(t, auto.Getter.Body)
	assert.Equal(t, ast.AccessPrivate, auto.Setter.Modifiers.Access)

	full := class.Members[1].(*ast.PropertyDecl)
	require.NotNil(t, full.Getter.Body)
	require.NotNil(t, full.Setter.Body)
}

func TestStaticBlock(t *testing.T) {
	class := parseClass(t, "public class T { static { counter = 0; } static Integer counter; }")

	block, ok := class.Members[0].(*ast.StaticBlock)
	require.True(t, ok)
	require.Len(t, block.Body.Statements, 1)

	field, ok := class.Members[1].(*ast.FieldDecl)
	require.True(t, ok)
	assert.True(t, field.Modifiers.IsStatic)
}

func TestInnerTypes(t *testing.T) {
	class := parseClass(t, `public class Outer {
		public class Inner {}
		private interface Hook {}
		public enum Mode { ON, OFF }
	}`)

	require.Len(t, class.Members, 3)
	_, isClass := class.Members[0].(*ast.ClassDecl)
	_, isInterface := class.Members[1].(*ast.InterfaceDecl)
	_, isEnum := class.Members[2].(*ast.EnumDecl)
	assert.True(t, isClass)
	assert.True(t, isInterface)
	assert.True(t, isEnum)
}

func TestFieldDeclaratorList(t *testing.T) {
	class := parseClass(t, "public class T { Integer a = 1, b, c = 3; }")
	field := class.Members[0].(*ast.FieldDecl)
	require.Len(t, field.Declarators, 3)
	assert.NotNil(t, field.Declarators[0].Initializer)
	assert.Nil(t, field.Declarators[1].Initializer)
	assert.NotNil(t, field.Declarators[2].Initializer)
}

func TestGenericReturnType(t *testing.T) {
	class := parseClass(t, "public class T { Map<Id, List<Account>> index() { return null; } }")
	method := class.Members[0].(*ast.MethodDecl)

	ret := method.ReturnType
	assert.Equal(t, "Map", ret.Name)
	require.Len(t, ret.TypeArguments, 2)
	assert.Equal(t, "Id", ret.TypeArguments[0].Name)

	inner := ret.TypeArguments[1]
	assert.Equal(t, "List", inner.Name)
	require.Len(t, inner.TypeArguments, 1)
	assert.Equal(t, "Account", inner.TypeArguments[0].Name)
}

// ---------- Statement Tests ----------

func TestCastVersusGrouping(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		Object o = null;
		Account a = (Account)o;
		Integer y = (1 + 2) * 3;
	} }`)
	require.Len(t, stmts, 3)

	second := stmts[1].(*ast.LocalVarDecl)
	cast, ok := second.Declarators[0].Initializer.(*ast.CastExpr)
	require.True(t, ok, "expected a cast")
	assert.Equal(t, "Account", cast.Type.Name)
	operand, ok := cast.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "o", operand.Name)

	third := stmts[2].(*ast.LocalVarDecl)
	mul, ok := third.Declarators[0].Initializer.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMultiply, mul.Op)
	paren, ok := mul.Left.(*ast.ParenExpr)
	require.True(t, ok, "expected grouping, not a cast")
	add, ok := paren.Expression.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
}

func TestQualifiedNameVersusMethodCall(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		System.debug('x');
		System.MyType t;
	} }`)
	require.Len(t, stmts, 2)

	first, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	call, ok := first.Expression.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "debug", call.Name)
	receiver, ok := call.Object.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "System", receiver.Name)

	second, ok := stmts[1].(*ast.LocalVarDecl)
	require.True(t, ok)
	assert.Equal(t, "System.MyType", second.Type.Name)
	assert.Equal(t, "t", second.Declarators[0].Name)
}

func TestForLoops(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		for (Integer i = 0; i < 10; i++) { }
		for (Account a : accounts) { }
		for (;;) { break; }
	} }`)
	require.Len(t, stmts, 3)

	traditional, ok := stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, traditional.Init)
	require.NotNil(t, traditional.Init.Variables)
	assert.Equal(t, "Integer", traditional.Init.Variables.Type.Name)
	assert.NotNil(t, traditional.Condition)
	require.Len(t, traditional.Update, 1)

	forEach, ok := stmts[1].(*ast.ForEachStmt)
	require.True(t, ok)
	assert.Equal(t, "Account", forEach.Type.Name)
	assert.Equal(t, "a", forEach.Variable)

	bare, ok := stmts[2].(*ast.ForStmt)
	require.True(t, ok)
	assert.Nil(t, bare.Init)
	assert.Nil(t, bare.Condition)
	assert.Empty(t, bare.Update)
}

func TestSwitchWhenForms(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		switch on obj {
			when Account a { }
			when 1, 2, 3 { }
			when SPRING { }
			when else { }
		}
	} }`)

	sw, ok := stmts[0].(*ast.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Whens, 4)

	binding := sw.Whens[0].Value
	require.NotNil(t, binding.Type)
	assert.Equal(t, "Account", binding.Type.Name)
	assert.Equal(t, "a", binding.Variable)

	literals := sw.Whens[1].Value
	assert.Len(t, literals.Literals, 3)

	enumValue := sw.Whens[2].Value
	require.Len(t, enumValue.Literals, 1)
	ident, ok := enumValue.Literals[0].(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "SPRING", ident.Name)

	assert.True(t, sw.Whens[3].Value.IsElse)
}

func TestDmlStatements(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		insert acc;
		update as user contacts;
		delete as system old;
		upsert records;
	} }`)
	require.Len(t, stmts, 4)

	first := stmts[0].(*ast.DmlStmt)
	assert.Equal(t, ast.DmlInsert, first.Operation)
	assert.Equal(t, ast.DmlAccessDefault, first.AccessLevel)

	second := stmts[1].(*ast.DmlStmt)
	assert.Equal(t, ast.DmlUpdate, second.Operation)
	assert.Equal(t, ast.DmlAccessUser, second.AccessLevel)

	third := stmts[2].(*ast.DmlStmt)
	assert.Equal(t, ast.DmlDelete, third.Operation)
	assert.Equal(t, ast.DmlAccessSystem, third.AccessLevel)

	fourth := stmts[3].(*ast.DmlStmt)
	assert.Equal(t, ast.DmlUpsert, fourth.Operation)
}

func TestDmlAccessLevelBadQualifier(t *testing.T) {
	_, err := parser.Parse(`public class T { void m() {
		insert as admin acc;
	} }`)
	require.Error(t, err)
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestTryCatchFinally(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		try { work(); }
		catch (DmlException e) { }
		catch (Exception e) { }
		finally { cleanup(); }
	} }`)

	try, ok := stmts[0].(*ast.TryStmt)
	require.True(t, ok)
	require.Len(t, try.Catches, 2)
	assert.Equal(t, "DmlException", try.Catches[0].Type.Name)
	assert.Equal(t, "e", try.Catches[0].Variable)
	require.NotNil(t, try.Finally)
}

func TestWhileAndDoWhile(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		while (x > 0) { x--; }
		do { x++; } while (x < 10);
	} }`)

	_, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	_, ok = stmts[1].(*ast.DoWhileStmt)
	require.True(t, ok)
}

// ---------- Expression Tests ----------

func TestOperatorPrecedence(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		Integer x = 1 + 2 * 3;
	} }`)

	decl := stmts[0].(*ast.LocalVarDecl)
	add, ok := decl.Declarators[0].Initializer.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMultiply, mul.Op)
}

func TestTernaryAndNullCoalesce(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		String s = a ?? b;
		Integer n = flag ? 1 : 2;
	} }`)

	coalesce, ok := stmts[0].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.NullCoalesce)
	require.True(t, ok)
	assert.NotNil(t, coalesce.Left)
	assert.NotNil(t, coalesce.Right)

	ternary, ok := stmts[1].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.TernaryExpr)
	require.True(t, ok)
	assert.NotNil(t, ternary.Condition)
}

func TestSafeNavigation(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		String s = acc?.Owner?.getName();
	} }`)

	call, ok := stmts[0].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "getName", call.Name)
	_, ok = call.Object.(*ast.SafeNavigation)
	assert.True(t, ok)
}

func TestInstanceOf(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		Boolean b = obj instanceof Account;
	} }`)

	inst, ok := stmts[0].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.InstanceOf)
	require.True(t, ok)
	assert.Equal(t, "Account", inst.Type.Name)
}

func TestCollectionLiterals(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		List<Integer> xs = new List<Integer>{1, 2, 3};
		Set<String> names = new Set<String>{'a', 'b'};
		Map<String, Integer> m = new Map<String, Integer>{'one' => 1, 'two' => 2};
		Integer[] arr = new Integer[5];
		String[] init = new String[]{'x'};
	} }`)
	require.Len(t, stmts, 5)

	list, ok := stmts[0].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.ListLiteral)
	require.True(t, ok)
	assert.Len(t, list.Elements, 3)

	set, ok := stmts[1].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.SetLiteral)
	require.True(t, ok)
	assert.Len(t, set.Elements, 2)

	mapLit, ok := stmts[2].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.NewMap)
	require.True(t, ok)
	require.Len(t, mapLit.Initializer, 2)

	sized, ok := stmts[3].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.NewArray)
	require.True(t, ok)
	assert.NotNil(t, sized.Size)

	braced, ok := stmts[4].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.NewArray)
	require.True(t, ok)
	assert.True(t, braced.HasInit)
	assert.Len(t, braced.Initializer, 1)
}

func TestNewObject(t *testing.T) {
	stmts := methodStatements(t, `public class T { void m() {
		Account a = new Account(Name = 'Acme');
		Outer.Inner i = new Outer.Inner();
	} }`)

	obj, ok := stmts[0].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.NewObject)
	require.True(t, ok)
	assert.Equal(t, "Account", obj.Type.Name)
	require.Len(t, obj.Arguments, 1)

	inner, ok := stmts[1].(*ast.LocalVarDecl).Declarators[0].Initializer.(*ast.NewObject)
	require.True(t, ok)
	assert.Equal(t, "Outer.Inner", inner.Type.Name)
}

func TestNodeSpansCoverChildren(t *testing.T) {
	src := "public class T { Integer n = 1 + 2; }"
	unit, err := parser.Parse(src)
	require.NoError(t, err)

	class := unit.Declarations[0].(*ast.ClassDecl)
	field := class.Members[0].(*ast.FieldDecl)
	init := field.Declarators[0].Initializer

	assert.LessOrEqual(t, unit.Pos(), class.Pos())
	assert.GreaterOrEqual(t, unit.End(), class.End())
	assert.LessOrEqual(t, class.Pos(), field.Pos())
	assert.GreaterOrEqual(t, class.End(), field.End())
	assert.LessOrEqual(t, field.Pos(), init.Pos())
	assert.GreaterOrEqual(t, field.End(), init.End())
}

// ---------- Error Tests ----------

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not a type declaration", "42"},
		{"missing class name", "public class { }"},
		{"unterminated class", "public class T {"},
		{"bad member", "public class T { public Integer n ! }"},
		{"statement outside method", "public class T { void m() { return }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.src)
			require.Error(t, err)
			var parseErr *parser.ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestUnexpectedTokenMessage(t *testing.T) {
	_, err := parser.Parse("public widget T {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected class, interface, or enum")
}
