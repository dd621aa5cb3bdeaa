package dao

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ColumnName converts a camelCase identifier to a column name by inserting an
// underscore before every upper-case letter and lower-casing it.
//
//	numRequired -> num_required
//	projectId   -> project_id
//	ID          -> _i_d
//
// The rule is purely textual. Acronyms and leading capitals produce leading or
// doubled underscores; fields like that should carry a `db` tag.
func ColumnName(identifier string) string {
	var b strings.Builder
	b.Grow(len(identifier) + 4)
	for _, r := range identifier {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fieldIdentifier lower-cases the first rune of an exported Go field name so
// "NumRequired" maps like the identifier "numRequired".
func fieldIdentifier(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}

// normalizeColumn strips one layer of identifier quoting and lower-cases the
// result, so `"Project_ID"`, `project_id` and [project_id] all match.
func normalizeColumn(s string) string {
	if l := len(s); l >= 2 {
		switch s[0] {
		case '"':
			if s[l-1] == '"' {
				s = s[1 : l-1]
			}
		case '`':
			if s[l-1] == '`' {
				s = s[1 : l-1]
			}
		case '[':
			if s[l-1] == ']' {
				s = s[1 : l-1]
			}
		}
	}
	return strings.ToLower(s)
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validIdentifier reports whether s can be spliced into SQL as a bare
// table or column name.
func validIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}
