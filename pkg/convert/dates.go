package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/apexql/pkg/dialect"
)

// simpleDateLiterals are the symbolic date tokens that take no argument.
var simpleDateLiterals = map[string]bool{
	"today":               true,
	"yesterday":           true,
	"tomorrow":            true,
	"this_week":           true,
	"last_week":           true,
	"next_week":           true,
	"this_month":          true,
	"last_month":          true,
	"next_month":          true,
	"this_quarter":        true,
	"last_quarter":        true,
	"next_quarter":        true,
	"this_year":           true,
	"last_year":           true,
	"next_year":           true,
	"this_fiscal_quarter": true,
	"last_fiscal_quarter": true,
	"next_fiscal_quarter": true,
	"this_fiscal_year":    true,
	"last_fiscal_year":    true,
	"next_fiscal_year":    true,
	"last_90_days":        true,
	"next_90_days":        true,
}

// parameterizedDatePrefixes are the prefixes of NAME:n date tokens.
var parameterizedDatePrefixes = map[string]bool{
	"last_n_days":            true,
	"next_n_days":            true,
	"last_n_weeks":           true,
	"next_n_weeks":           true,
	"last_n_months":          true,
	"next_n_months":          true,
	"last_n_quarters":        true,
	"next_n_quarters":        true,
	"last_n_years":           true,
	"next_n_years":           true,
	"last_n_fiscal_quarters": true,
	"next_n_fiscal_quarters": true,
	"last_n_fiscal_years":    true,
	"next_n_fiscal_years":    true,
	"n_days_ago":             true,
}

// isDateLiteral reports whether name is a recognized symbolic date literal,
// case-insensitively.
func isDateLiteral(name string) bool {
	lower := strings.ToLower(name)
	if simpleDateLiterals[lower] {
		return true
	}
	if prefix, _, ok := strings.Cut(lower, ":"); ok {
		return parameterizedDatePrefixes[prefix]
	}
	return false
}

var dateUnits = map[string]dialect.DateUnit{
	"week":    dialect.UnitWeek,
	"month":   dialect.UnitMonth,
	"quarter": dialect.UnitQuarter,
	"year":    dialect.UnitYear,
}

var dateUnitPlurals = map[string]dialect.DateUnit{
	"days":     dialect.UnitDay,
	"weeks":    dialect.UnitWeek,
	"months":   dialect.UnitMonth,
	"quarters": dialect.UnitQuarter,
	"years":    dialect.UnitYear,
}

// expandDateLiteral rewrites "field <op> LITERAL" into a concrete predicate
// on field. Simple day tokens become a single-day equality; ranged tokens
// become a half-open [start, end) comparison pair. Fiscal tokens fall back
// to their calendar equivalents and set approximate.
func expandDateLiteral(literal, field string, d dialect.Dialect) (sql string, approximate bool, err error) {
	lower := strings.ToLower(literal)
	switch lower {
	case "last_90_days":
		lower = "last_n_days:90"
	case "next_90_days":
		lower = "next_n_days:90"
	}

	name, arg, hasArg := strings.Cut(lower, ":")

	// Fiscal periods approximate to calendar periods.
	if strings.Contains(name, "fiscal_") {
		calendar := strings.Replace(name, "fiscal_", "", 1)
		if hasArg {
			calendar += ":" + arg
		}
		sql, _, err = expandDateLiteral(calendar, field, d)
		if err != nil {
			return "", false, errUnknownDateLiteral(literal)
		}
		return sql, true, nil
	}

	cur := d.CurrentDate()
	dayEquals := func(expr string) string {
		return fmt.Sprintf("DATE(%s) = %s", field, expr)
	}
	halfOpen := func(lo, hi string) string {
		return fmt.Sprintf("%s >= %s AND %s < %s", field, lo, field, hi)
	}

	if !hasArg {
		switch name {
		case "today":
			return dayEquals(cur), false, nil
		case "yesterday":
			return dayEquals(d.DateSub(cur, 1, dialect.UnitDay)), false, nil
		case "tomorrow":
			return dayEquals(d.DateAdd(cur, 1, dialect.UnitDay)), false, nil
		}
		prefix, unitName, found := strings.Cut(name, "_")
		unit, knownUnit := dateUnits[unitName]
		if !found || !knownUnit {
			return "", false, errUnknownDateLiteral(literal)
		}
		start := d.DateTrunc(unit, cur)
		switch prefix {
		case "this":
			return halfOpen(start, d.DateAdd(start, 1, unit)), false, nil
		case "last":
			return halfOpen(d.DateSub(start, 1, unit), start), false, nil
		case "next":
			return halfOpen(d.DateAdd(start, 1, unit), d.DateAdd(start, 2, unit)), false, nil
		}
		return "", false, errUnknownDateLiteral(literal)
	}

	n, convErr := strconv.Atoi(arg)
	if convErr != nil || n < 0 {
		return "", false, errUnknownDateLiteral(literal)
	}

	if name == "n_days_ago" {
		return dayEquals(d.DateSub(cur, n, dialect.UnitDay)), false, nil
	}
	if rest, ok := strings.CutPrefix(name, "last_n_"); ok {
		if unit, known := dateUnitPlurals[rest]; known {
			return halfOpen(d.DateSub(cur, n, unit), cur), false, nil
		}
	}
	if rest, ok := strings.CutPrefix(name, "next_n_"); ok {
		if unit, known := dateUnitPlurals[rest]; known {
			return halfOpen(cur, d.DateAdd(cur, n, unit)), false, nil
		}
	}
	return "", false, errUnknownDateLiteral(literal)
}
