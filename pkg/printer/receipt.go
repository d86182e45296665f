package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes
const (
	escInit = 0x1B
	gsCmd   = 0x1D
	lf      = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width + double height
	FontWide   = 0x10
	FontTall   = 0x01
)

// Receipt builds an ESC/POS byte stream for a sales ticket.
// Width is in characters: 32 for 58mm paper, 48 for 80mm.
type Receipt struct {
	buf   bytes.Buffer
	width int
}

// NewReceipt creates a receipt builder with the given character width.
func NewReceipt(charWidth int) *Receipt {
	if charWidth <= 0 {
		charWidth = 32
	}
	r := &Receipt{width: charWidth}
	r.buf.Write([]byte{escInit, '@'})
	return r
}

// Align sets text alignment for subsequent lines.
func (r *Receipt) Align(align int) *Receipt {
	r.buf.Write([]byte{escInit, 'a', byte(align)})
	return r
}

// Bold enables or disables bold text.
func (r *Receipt) Bold(on bool) *Receipt {
	b := byte(0)
	if on {
		b = 1
	}
	r.buf.Write([]byte{escInit, 'E', b})
	return r
}

// Size sets the character size (FontNormal, FontDouble, FontWide, FontTall).
func (r *Receipt) Size(size byte) *Receipt {
	r.buf.Write([]byte{gsCmd, '!', size})
	return r
}

// Line writes a line of text followed by a line feed.
func (r *Receipt) Line(s string) *Receipt {
	r.buf.WriteString(s)
	r.buf.WriteByte(lf)
	return r
}

// Linef writes a formatted line of text.
func (r *Receipt) Linef(format string, args ...interface{}) *Receipt {
	return r.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width separator line.
func (r *Receipt) Rule() *Receipt {
	return r.Line(strings.Repeat("-", r.width))
}

// KeyValue prints a left-aligned key with a right-aligned value,
// e.g. "TOTAL                     2 124".
func (r *Receipt) KeyValue(key, value string) *Receipt {
	spaces := r.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	r.buf.WriteString(key)
	r.buf.WriteString(strings.Repeat(" ", spaces))
	r.buf.WriteString(value)
	r.buf.WriteByte(lf)
	return r
}

// Item prints a line-item row: quantity x name, right-aligned line total.
func (r *Receipt) Item(qty int, name, total string) *Receipt {
	prefix := fmt.Sprintf("%dx %s", qty, name)
	if len(prefix)+len(total)+1 > r.width {
		limit := r.width - len(total) - 2
		if limit > 3 {
			prefix = prefix[:limit] + "."
		}
	}
	return r.KeyValue(prefix, total)
}

// Feed advances the paper n lines.
func (r *Receipt) Feed(n int) *Receipt {
	for i := 0; i < n; i++ {
		r.buf.WriteByte(lf)
	}
	return r
}

// Cut sends the paper cut command.
func (r *Receipt) Cut() *Receipt {
	r.buf.Write([]byte{gsCmd, 'V', 0x00})
	return r
}

// Bytes returns the accumulated ESC/POS byte stream.
func (r *Receipt) Bytes() []byte {
	return r.buf.Bytes()
}
