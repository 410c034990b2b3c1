package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps q for a substring ILIKE match, escaping the LIKE wildcards it contains.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
