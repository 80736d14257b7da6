package render

import "unicode/utf8"

// labelCap is the capacity of every text line. It fits the longest generated
// line, "PRFILE " followed by a 20 character int64.
const labelCap = 32

const ellipsis = "..."

// label is a fixed capacity text buffer. Writes that do not fit are
// truncated on a rune boundary.
type label struct {
	b [labelCap]byte
	n int
}

func (l *label) reset() {
	l.n = 0
}

func (l *label) bytes() []byte {
	return l.b[:l.n]
}

func (l *label) String() string {
	return string(l.bytes())
}

func (l *label) appendString(s string) {
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		if l.n+size > labelCap {
			return
		}
		l.n += copy(l.b[l.n:], s[:size])
		s = s[size:]
	}
}

func (l *label) appendInt(v int) {
	var digits [21]byte
	i := len(digits)
	u := uint64(v)
	if v < 0 {
		u = uint64(-v)
	}
	for {
		i--
		digits[i] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	if v < 0 {
		i--
		digits[i] = '-'
	}
	if l.n+len(digits)-i > labelCap {
		return
	}
	l.n += copy(l.b[l.n:], digits[i:])
}

func (l *label) trimRune() {
	if l.n == 0 {
		return
	}
	_, size := utf8.DecodeLastRune(l.b[:l.n])
	l.n -= size
}

// fit shortens the label until it is at most maxWidth pixels wide in tf,
// marking the cut with an ellipsis.
func (l *label) fit(tf Typeface, maxWidth int) {
	if tf.Width(l.bytes()) <= maxWidth {
		return
	}
	for l.n > 0 {
		l.trimRune()
		kept := l.n
		l.appendString(ellipsis)
		if tf.Width(l.bytes()) <= maxWidth {
			return
		}
		l.n = kept
	}
	l.appendString(ellipsis)
}
