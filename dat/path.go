package dat

import "strings"

// NormalizePath converts a user-provided path to the archive's native
// key form: uppercase with backslash separators.
//
//	"text/english/dialog/Foo.msg" → `TEXT\ENGLISH\DIALOG\FOO.MSG`
//
// Lookups succeed only on normalized keys, so every public method
// normalizes its path argument before touching the index.
func NormalizePath(p string) string {
	return strings.ToUpper(strings.ReplaceAll(p, "/", `\`))
}
