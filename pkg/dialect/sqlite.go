package dialect

import (
	"fmt"
	"strings"
)

func init() {
	Register(SQLite{})
}

// SQLite is the SQLite dialect.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Placeholder(index int) string {
	return fmt.Sprintf("?%d", index)
}

func (SQLite) CurrentTimestamp() string { return "datetime('now')" }

func (SQLite) CurrentDate() string { return "date('now')" }

// sqliteInterval normalizes a unit to a modifier SQLite understands,
// pre-multiplying weeks into days and quarters into months.
func sqliteInterval(amount int, unit DateUnit) (int, string) {
	switch unit {
	case UnitWeek:
		return amount * 7, "days"
	case UnitQuarter:
		return amount * 3, "months"
	case UnitDay:
		return amount, "days"
	case UnitMonth:
		return amount, "months"
	case UnitYear:
		return amount, "years"
	case UnitHour:
		return amount, "hours"
	case UnitMinute:
		return amount, "minutes"
	default:
		return amount, "seconds"
	}
}

func (SQLite) DateAdd(expr string, amount int, unit DateUnit) string {
	n, modifier := sqliteInterval(amount, unit)
	return fmt.Sprintf("date(%s, '+%d %s')", expr, n, modifier)
}

func (SQLite) DateSub(expr string, amount int, unit DateUnit) string {
	n, modifier := sqliteInterval(amount, unit)
	return fmt.Sprintf("date(%s, '-%d %s')", expr, n, modifier)
}

func (SQLite) DateTrunc(unit DateUnit, expr string) string {
	switch unit {
	case UnitDay:
		return fmt.Sprintf("date(%s)", expr)
	case UnitWeek:
		// Start of week, counting from Sunday.
		return fmt.Sprintf("date(%s, '-' || strftime('%%w', %s) || ' days')", expr, expr)
	case UnitMonth:
		return fmt.Sprintf("date(%s, 'start of month')", expr)
	case UnitQuarter:
		// Quarter start: roll back to the month boundary, then to the
		// nearest of Jan/Apr/Jul/Oct.
		return fmt.Sprintf(
			"date(%s, 'start of month', '-' || ((cast(strftime('%%m', %s) as integer) - 1) %% 3) || ' months')",
			expr, expr)
	case UnitYear:
		return fmt.Sprintf("date(%s, 'start of year')", expr)
	default:
		return fmt.Sprintf("datetime(%s, 'start of day')", expr)
	}
}

func (SQLite) BooleanLiteral(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

func (SQLite) NullsFirst() string { return "NULLS FIRST" }

func (SQLite) NullsLast() string { return "NULLS LAST" }

// ForUpdate returns "" since SQLite locks at the database level.
func (SQLite) ForUpdate() string { return "" }

func (SQLite) JSONArrayAgg(inner string) string {
	return fmt.Sprintf("json_group_array(%s)", inner)
}

func (SQLite) JSONObject(pairs []JSONPair) string {
	return fmt.Sprintf("json_object(%s)", jsonObjectArgs(pairs))
}

func (SQLite) Concat(exprs ...string) string {
	return strings.Join(exprs, " || ")
}

func (SQLite) LimitOffset(limit, offset string) string {
	return limitOffset(limit, offset)
}
