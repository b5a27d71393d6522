package textacq

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Destination groups whose content is document metadata, never body
// text.
var rtfSkipGroups = map[string]bool{
	"fonttbl":           true,
	"colortbl":          true,
	"stylesheet":        true,
	"info":              true,
	"pict":              true,
	"themedata":         true,
	"header":            true,
	"footer":            true,
	"listtable":         true,
	"listoverridetable": true,
	"generator":         true,
}

// Control words that map to literal output characters.
var rtfSymbols = map[string]rune{
	"emdash":    '—',
	"endash":    '–',
	"lquote":    '‘',
	"rquote":    '’',
	"ldblquote": '“',
	"rdblquote": '”',
	"bullet":    '•',
}

// ExtractRTF strips RTF control structure down to the body text.
// Paragraph and line breaks become newlines and tab stops become tabs:
// the Hong Kong ordinance parser keys on both. Hex escapes decode
// through the Windows-1252 table RTF defaults to.
func ExtractRTF(data []byte) (string, error) {
	if !strings.HasPrefix(string(data[:min(len(data), 5)]), `{\rtf`) {
		return "", errors.New("not an rtf document")
	}

	var b strings.Builder
	depth := 0
	skipDepth := 0 // depth of the skipped destination group, 0 when none

	emit := func(r rune) {
		if skipDepth == 0 {
			b.WriteRune(r)
		}
	}

	i := 0
	for i < len(data) {
		c := data[i]
		switch c {
		case '{':
			depth++
			i++
		case '}':
			if skipDepth != 0 && depth == skipDepth {
				skipDepth = 0
			}
			depth--
			i++
		case '\r', '\n':
			i++
		case '\\':
			i++
			if i >= len(data) {
				break
			}
			switch n := data[i]; {
			case n == '\'':
				if i+2 < len(data) {
					if v, err := strconv.ParseUint(string(data[i+1:i+3]), 16, 8); err == nil {
						emit(charmap.Windows1252.DecodeByte(byte(v)))
					}
					i += 3
				} else {
					i = len(data)
				}
			case n == '*':
				// \* opens an optional destination the reader may not
				// understand; drop the whole group.
				if skipDepth == 0 {
					skipDepth = depth
				}
				i++
			case n == '\\' || n == '{' || n == '}':
				emit(rune(n))
				i++
			case n == '~':
				emit(' ')
				i++
			case n == '-' || n == '_':
				// optional hyphen markers
				i++
			case isRTFLetter(n):
				word, param, hasParam, next := rtfControlWord(data, i)
				i = next
				if skipDepth != 0 {
					continue
				}
				switch {
				case word == "par" || word == "line" || word == "sect" || word == "page":
					b.WriteByte('\n')
				case word == "tab" || word == "cell":
					b.WriteByte('\t')
				case word == "u" && hasParam:
					r := rune(param)
					if param < 0 {
						r = rune(65536 + param)
					}
					b.WriteRune(r)
					i = skipRTFFallback(data, i)
				default:
					if r, ok := rtfSymbols[word]; ok {
						b.WriteRune(r)
					} else if rtfSkipGroups[word] {
						skipDepth = depth
					}
				}
			default:
				i++
			}
		default:
			emit(rune(c))
			i++
		}
	}
	return b.String(), nil
}

func isRTFLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// rtfControlWord reads the control word starting at i (past the
// backslash): its name, optional numeric parameter and the index after
// the word's delimiter.
func rtfControlWord(data []byte, i int) (word string, param int, hasParam bool, next int) {
	start := i
	for i < len(data) && isRTFLetter(data[i]) {
		i++
	}
	word = string(data[start:i])

	numStart := i
	if i < len(data) && data[i] == '-' {
		i++
	}
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i > numStart {
		if v, err := strconv.Atoi(string(data[numStart:i])); err == nil {
			param = v
			hasParam = true
		}
	}
	// A single space after the control word is part of it.
	if i < len(data) && data[i] == ' ' {
		i++
	}
	return word, param, hasParam, i
}

// skipRTFFallback drops the ANSI substitute that follows a \uN escape.
func skipRTFFallback(data []byte, i int) int {
	if i < len(data) && data[i] == '\\' && i+1 < len(data) && data[i+1] == '\'' {
		if i+4 <= len(data) {
			return i + 4
		}
		return len(data)
	}
	if i < len(data) && data[i] != '\\' && data[i] != '{' && data[i] != '}' {
		return i + 1
	}
	return i
}
