// Package markup implements the inline style mini-markup carried by narration
// lines, e.g. "<red>-14 (86) Health</red>", and renders it for terminals.
package markup

import "strings"

// ANSI escape code constants for terminal styling.
const (
	Reset = "\033[0m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"

	BrightBlack  = "\033[90m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
	BrightCyan   = "\033[96m"
)

// Styles maps every style tag used by the content catalog to its ANSI code.
var Styles = map[string]string{
	"red":        BrightRed,
	"darkred":    Red,
	"green":      BrightGreen,
	"darkgreen":  Green,
	"blue":       BrightBlue,
	"paleblue":   BrightCyan,
	"palegreen":  Green + Dim,
	"yellow":     BrightYellow,
	"paleyellow": Yellow,
	"gold":       Yellow,
	"gray":       BrightBlack,
	"purple":     Magenta,
	"cyan":       Cyan,
}

// Span is a run of text sharing one style. Style is the innermost open tag, or
// empty for unstyled text.
type Span struct {
	Style string
	Text  string
}

// Wrap encloses text in the given style tag.
//
// Postcondition: Returns text unchanged when style is empty.
func Wrap(style, text string) string {
	if style == "" {
		return text
	}
	return "<" + style + ">" + text + "</" + style + ">"
}

// Parse splits s into styled spans. A tag is "<name>" or "</name>" where name is
// one or more lowercase ASCII letters; anything else beginning with '<' is literal
// text. A closing tag that does not match the innermost open tag is literal.
//
// Postcondition: concatenating the Text of every span yields Strip(s).
func Parse(s string) []Span {
	var (
		spans []Span
		stack []string
		buf   strings.Builder
	)
	current := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		spans = append(spans, Span{Style: current(), Text: buf.String()})
		buf.Reset()
	}

	for i := 0; i < len(s); {
		if s[i] != '<' {
			buf.WriteByte(s[i])
			i++
			continue
		}
		name, closing, n := scanTag(s[i:])
		switch {
		case n == 0:
			buf.WriteByte(s[i])
			i++
			continue
		case closing && name != current():
			buf.WriteString(s[i : i+n])
		case closing:
			flush()
			stack = stack[:len(stack)-1]
		default:
			flush()
			stack = append(stack, name)
		}
		i += n
	}
	flush()
	return spans
}

// scanTag reports the tag at the start of s. n is zero when s does not start
// with a well-formed tag.
func scanTag(s string) (name string, closing bool, n int) {
	i := 1
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}
	start := i
	for i < len(s) && s[i] >= 'a' && s[i] <= 'z' {
		i++
	}
	if i == start || i >= len(s) || s[i] != '>' {
		return "", false, 0
	}
	return s[start:i], closing, i + 1
}

// Strip removes all markup tags from s.
func Strip(s string) string {
	var b strings.Builder
	for _, sp := range Parse(s) {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// RenderANSI converts markup into ANSI-coloured text. Unknown styles render
// as plain text.
func RenderANSI(s string) string {
	var b strings.Builder
	for _, sp := range Parse(s) {
		code, ok := Styles[sp.Style]
		if !ok {
			b.WriteString(sp.Text)
			continue
		}
		b.WriteString(code + sp.Text + Reset)
	}
	return b.String()
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}
