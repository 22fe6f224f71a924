package helpers

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a raw search term into an ILIKE pattern matching it as a substring.
// LIKE wildcards in the term are escaped so they match literally (use with ESCAPE '\').
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
