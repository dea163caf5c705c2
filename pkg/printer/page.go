package printer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultWidth is the character width of 80mm paper.
const DefaultWidth = 48

// Style controls how a line is printed. Plain-text rendering honours only
// alignment; ESC/POS rendering honours all of it.
type Style struct {
	Align  Align
	Bold   bool
	Double bool
}

type pageLine struct {
	text  string
	style Style
}

// Page is a fixed-width text document built line by line. It renders to
// plain text for previews and to ESC/POS for the printer.
type Page struct {
	width int
	lines []pageLine
}

// NewPage creates an empty page. Widths <= 0 fall back to DefaultWidth.
func NewPage(width int) *Page {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Page{width: width}
}

// Width returns the page width in characters.
func (p *Page) Width() int {
	return p.width
}

// Line appends text with the given style. Text containing line breaks
// becomes one line per segment, each truncated to the page width.
func (p *Page) Line(text string, style Style) *Page {
	for _, segment := range lineBreaks.Split(text, -1) {
		p.lines = append(p.lines, pageLine{text: Truncate(segment, p.width), style: style})
	}
	return p
}

var lineBreaks = regexp.MustCompile(`\r\n|\r|\n`)

// Text appends a plain left-aligned line.
func (p *Page) Text(text string) *Page {
	return p.Line(text, Style{})
}

// Bold appends a bold left-aligned line.
func (p *Page) Bold(text string) *Page {
	return p.Line(text, Style{Bold: true})
}

// Title appends a centered, bold, double-size line.
func (p *Page) Title(text string) *Page {
	return p.Line(text, Style{Align: AlignCenter, Bold: true, Double: true})
}

// Center appends a centered line.
func (p *Page) Center(text string, bold bool) *Page {
	return p.Line(text, Style{Align: AlignCenter, Bold: bold})
}

// Rule appends a full-width separator made of ch.
func (p *Page) Rule(ch rune) *Page {
	return p.Text(strings.Repeat(string(ch), p.width))
}

// Lines returns the rendered plain-text lines.
func (p *Page) Lines() []string {
	out := make([]string, len(p.lines))
	for i, l := range p.lines {
		out[i] = p.render(l)
	}
	return out
}

// String renders the page as newline-terminated plain text.
func (p *Page) String() string {
	var b strings.Builder
	for _, l := range p.Lines() {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *Page) render(l pageLine) string {
	pad := p.width - utf8.RuneCountInString(l.text)
	if pad <= 0 {
		return l.text
	}
	switch l.style.Align {
	case AlignCenter:
		return strings.Repeat(" ", pad/2) + l.text
	case AlignRight:
		return strings.Repeat(" ", pad) + l.text
	}
	return l.text
}

// ESCPOS encodes the page for a thermal printer, ending with a feed and a
// partial cut.
func (p *Page) ESCPOS() []byte {
	doc := NewDocument()
	for _, l := range p.lines {
		doc.Apply(l.style).Text(l.text)
	}
	return doc.Finish(3).Bytes()
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// PadRight left-aligns s in a field of n characters, truncating if needed.
func PadRight(s string, n int) string {
	s = Truncate(s, n)
	if pad := n - utf8.RuneCountInString(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft right-aligns s in a field of n characters. Values wider than the
// field are returned unchanged, so the caller must size the row.
func PadLeft(s string, n int) string {
	if pad := n - utf8.RuneCountInString(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
