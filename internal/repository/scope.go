package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/consulted/consulted-api/internal/policy"
)

// scopeFilter translates a program scope into a predicate over column:
// nothing for an empty scope, everything for a full one, IN (...) otherwise.
func scopeFilter(column string, s policy.Scope) sq.Sqlizer {
	switch {
	case s.Empty():
		return sq.Expr("1=0")
	case s.Full():
		return sq.Expr("1=1")
	default:
		return sq.Eq{column: s.Codes()}
	}
}

// containsAny builds a case-insensitive "contains" match over columns.
func containsAny(term string, columns ...string) sq.Sqlizer {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"
	or := sq.Or{}
	for _, c := range columns {
		or = append(or, sq.Expr("LOWER("+c+") LIKE ?", pattern))
	}
	return or
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
