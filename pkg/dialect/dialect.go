// Package dialect abstracts the SQL differences between the supported
// target databases. The converter and DDL generator call through the
// Dialect interface; concrete implementations register themselves by name.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect is the set of SQL generation operations that differ between
// target databases.
type Dialect interface {
	// Name is the registry key, e.g. "postgres".
	Name() string

	// Placeholder returns the bind-parameter placeholder for a 1-based
	// index.
	Placeholder(index int) string

	// CurrentTimestamp is the current-timestamp expression.
	CurrentTimestamp() string

	// CurrentDate is the current-date expression.
	CurrentDate() string

	// DateAdd adds amount units to a date expression.
	DateAdd(expr string, amount int, unit DateUnit) string

	// DateSub subtracts amount units from a date expression.
	DateSub(expr string, amount int, unit DateUnit) string

	// DateTrunc truncates a date expression to the start of the unit.
	DateTrunc(unit DateUnit, expr string) string

	// BooleanLiteral renders a boolean constant.
	BooleanLiteral(value bool) string

	// NullsFirst is the NULLS FIRST ordering text.
	NullsFirst() string

	// NullsLast is the NULLS LAST ordering text.
	NullsLast() string

	// ForUpdate returns the FOR UPDATE clause, or "" when row locking is
	// not supported.
	ForUpdate() string

	// JSONArrayAgg aggregates rows into a JSON array.
	JSONArrayAgg(inner string) string

	// JSONObject builds a JSON object from key/value pairs.
	JSONObject(pairs []JSONPair) string

	// Concat joins string expressions with the concatenation operator.
	Concat(exprs ...string) string

	// LimitOffset renders the LIMIT/OFFSET tail. Either part may be empty.
	LimitOffset(limit, offset string) string
}

// JSONPair is one key/value entry of a JSON object construction.
type JSONPair struct {
	Key   string
	Value string
}

// DateUnit is a calendar or clock unit for date arithmetic.
type DateUnit int

const (
	UnitDay DateUnit = iota
	UnitWeek
	UnitMonth
	UnitQuarter
	UnitYear
	UnitHour
	UnitMinute
	UnitSecond
)

func (u DateUnit) String() string {
	switch u {
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	case UnitQuarter:
		return "quarter"
	case UnitYear:
		return "year"
	case UnitHour:
		return "hour"
	case UnitMinute:
		return "minute"
	case UnitSecond:
		return "second"
	default:
		return "unknown"
	}
}

// QuoteIdentifier double-quotes an identifier, doubling embedded quotes.
// Both supported databases accept this form.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// limitOffset is the LIMIT/OFFSET tail shared by all dialects.
func limitOffset(limit, offset string) string {
	var b strings.Builder
	if limit != "" {
		fmt.Fprintf(&b, "LIMIT %s", limit)
	}
	if offset != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "OFFSET %s", offset)
	}
	return b.String()
}

// jsonObjectArgs flattens pairs into the 'key', value argument list shared
// by json_build_object and json_object.
func jsonObjectArgs(pairs []JSONPair) string {
	args := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		args = append(args, "'"+p.Key+"'", p.Value)
	}
	return strings.Join(args, ", ")
}
