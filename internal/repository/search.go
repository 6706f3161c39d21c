package repository

import "strings"

// likeEscape is the LIKE escape character; '!' needs no quoting in MySQL,
// PostgreSQL, or SQLite string literals.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern builds a case-folded LIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// SplitQuery splits a search query into whitespace separated terms.
func SplitQuery(q string) []string {
	return strings.Fields(q)
}
