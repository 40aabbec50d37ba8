// Package msg parses Fallout 1 localized message files (.MSG).
//
// A message file is a sequence of {id}{audio}{text} triples in
// Windows-1252. Anything between triples is commentary and ignored, and
// line breaks inside a field are presentation only, so they are
// stripped. Triples whose id is not a number are skipped; a triple cut
// off mid-field ends the parse.
package msg

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Message is one entry of a message file. Audio names the speech file
// for voiced lines and is usually empty.
type Message struct {
	ID    int
	Audio string
	Text  string
}

// Parse decodes a message file.
func Parse(data []byte) ([]Message, error) {
	text, err := charmap.Windows1252.NewDecoder().String(string(data))
	if err != nil {
		return nil, fmt.Errorf("msg: decode: %w", err)
	}

	var out []Message
	pos := 0
	for pos < len(text) {
		start := strings.IndexByte(text[pos:], '{')
		if start < 0 {
			break
		}
		id, next, ok := readField(text, pos+start)
		if !ok {
			break
		}
		audio, next, ok := readField(text, next)
		if !ok {
			break
		}
		body, next, ok := readField(text, next)
		if !ok {
			break
		}
		pos = next

		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		out = append(out, Message{
			ID:    n,
			Audio: strings.TrimSpace(audio),
			Text:  strings.TrimSpace(body),
		})
	}
	return out, nil
}

// Index keys messages by ID. Duplicate IDs keep the last entry.
func Index(entries []Message) map[int]Message {
	m := make(map[int]Message, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}

// readField reads one brace-delimited field starting at or after pos,
// stripping line breaks. A stray '}' or an unterminated field fails.
func readField(text string, pos int) (string, int, bool) {
	for pos < len(text) && text[pos] != '{' {
		if text[pos] == '}' {
			return "", pos, false
		}
		pos++
	}
	if pos >= len(text) {
		return "", pos, false
	}
	pos++

	var b strings.Builder
	for ; pos < len(text); pos++ {
		switch c := text[pos]; c {
		case '}':
			return b.String(), pos + 1, true
		case '\n', '\r':
		default:
			b.WriteByte(c)
		}
	}
	return "", pos, false
}
