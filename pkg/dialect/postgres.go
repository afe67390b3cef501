package dialect

import (
	"fmt"
	"strings"
)

func init() {
	Register(Postgres{})
}

// Postgres is the PostgreSQL dialect.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

func (Postgres) CurrentTimestamp() string { return "CURRENT_TIMESTAMP" }

func (Postgres) CurrentDate() string { return "CURRENT_DATE" }

func (Postgres) DateAdd(expr string, amount int, unit DateUnit) string {
	return fmt.Sprintf("(%s + INTERVAL '%d %s')", expr, amount, unit)
}

func (Postgres) DateSub(expr string, amount int, unit DateUnit) string {
	return fmt.Sprintf("(%s - INTERVAL '%d %s')", expr, amount, unit)
}

func (Postgres) DateTrunc(unit DateUnit, expr string) string {
	return fmt.Sprintf("date_trunc('%s', %s)", unit, expr)
}

func (Postgres) BooleanLiteral(value bool) string {
	if value {
		return "TRUE"
	}
	return "FALSE"
}

func (Postgres) NullsFirst() string { return "NULLS FIRST" }

func (Postgres) NullsLast() string { return "NULLS LAST" }

func (Postgres) ForUpdate() string { return "FOR UPDATE" }

func (Postgres) JSONArrayAgg(inner string) string {
	return fmt.Sprintf("json_agg(%s)", inner)
}

func (Postgres) JSONObject(pairs []JSONPair) string {
	return fmt.Sprintf("json_build_object(%s)", jsonObjectArgs(pairs))
}

func (Postgres) Concat(exprs ...string) string {
	return strings.Join(exprs, " || ")
}

func (Postgres) LimitOffset(limit, offset string) string {
	return limitOffset(limit, offset)
}
