package script

import "strings"

// ListEntry is one line of a script index file (scripts.lst).
type ListEntry struct {
	// Index is the zero-based line number. Other game files refer to
	// scripts by this index, so blank and comment lines still count.
	Index int

	// Name is the script name, lowercased, with the extension dropped.
	Name string
}

// ParseList parses a script index file. Each non-empty line names one
// script; text after '#' is a comment. Line numbers are preserved as
// indices because that is how scripts are referenced elsewhere.
func ParseList(data []byte) []ListEntry {
	var out []ListEntry
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if n := strings.IndexByte(line, '#'); n >= 0 {
			line = line[:n]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if n := strings.IndexByte(line, '.'); n >= 0 {
			line = line[:n]
		}
		out = append(out, ListEntry{Index: i, Name: strings.ToLower(line)})
	}
	return out
}

// ListIndex parses a script index file into a name to index lookup.
// Later duplicates win, matching a plain map build.
func ListIndex(data []byte) map[string]int {
	entries := ParseList(data)
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.Name] = e.Index
	}
	return m
}
