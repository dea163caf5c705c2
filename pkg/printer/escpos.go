package printer

import (
	"bytes"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Align is an ESC a justification value.
type Align byte

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

const (
	sizeNormal = 0x00
	sizeDouble = 0x11 // double width and height
)

// Document encodes styled lines as an ESC/POS byte stream. It tracks the
// printer's current style and only emits commands when a line changes it.
type Document struct {
	buf   bytes.Buffer
	style Style
}

// NewDocument starts a stream with ESC @, which resets the printer to its
// default style.
func NewDocument() *Document {
	d := &Document{}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Apply switches the printer to s.
func (d *Document) Apply(s Style) *Document {
	if s.Align != d.style.Align {
		d.buf.Write([]byte{ESC, 'a', byte(s.Align)})
	}
	if s.Bold != d.style.Bold {
		d.buf.Write([]byte{ESC, 'E', boolByte(s.Bold)})
	}
	if s.Double != d.style.Double {
		size := byte(sizeNormal)
		if s.Double {
			size = sizeDouble
		}
		d.buf.Write([]byte{GS, '!', size})
	}
	d.style = s
	return d
}

// Text writes s and a line feed. Control bytes are dropped so user-entered
// text cannot inject printer commands.
func (d *Document) Text(s string) *Document {
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			continue
		}
		d.buf.WriteRune(r)
	}
	d.buf.WriteByte(LF)
	return d
}

// Finish restores the default style, feeds n lines and sends a partial cut.
func (d *Document) Finish(feed int) *Document {
	d.Apply(Style{})
	for i := 0; i < feed; i++ {
		d.buf.WriteByte(LF)
	}
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the encoded stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
