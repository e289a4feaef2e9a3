package codec

import "strings"

// keyStripChars are removed from pair keys. Removal is lossy and intentional: keys in
// stored lines have always been written in this stripped form.
const keyStripChars = "\r\n\t =!@#$:;,+-()[]~`"

var keyStripper = strings.NewReplacer(stripPairs(keyStripChars)...)

var lineBreakEscaper = strings.NewReplacer("\r", `\r`, "\n", `\n`)

func stripPairs(chars string) []string {
	pairs := make([]string, 0, 2*len(chars))
	for i := 0; i < len(chars); i++ {
		pairs = append(pairs, chars[i:i+1], "")
	}

	return pairs
}

// SanitizeKey removes the characters ``\r \n \t space = ! @ # $ : ; , + - ( ) [ ] ~ ` ``
// from a pair key. The result never contains '=' and never starts with '$'.
func SanitizeKey(key string) string {
	if !strings.ContainsAny(key, keyStripChars) {
		return key
	}

	return keyStripper.Replace(key)
}

// EscapeLineBreaks rewrites CR and LF as the two-character sequences `\r` and `\n` so
// the result fits on a single transport line.
func EscapeLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}

	return lineBreakEscaper.Replace(s)
}
