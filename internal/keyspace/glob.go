package keyspace

import (
	"errors"
	"strings"

	"github.com/gobwas/glob"
)

// maxClassSpan bounds how many runes a range inside a multi-item class may
// expand to. gobwas/glob only takes a single range or a plain list per class.
const maxClassSpan = 1024

var errClassTooWide = errors.New("keyspace: character class range too wide")

// Matcher reports whether a backing key matches a compiled pattern.
type Matcher interface {
	Match(key string) bool
}

type never struct{}

func (never) Match(string) bool { return false }

// Compile compiles a pattern in the Redis KEYS/SCAN dialect:
// '*', '?', '[abc]', '[^abc]', '[a-z0-9]' and '\' escapes. Braces and commas
// are literal, unlike gobwas/glob's native syntax, so they are quoted here.
// A '-' next to ']' is literal and an unclosed '[' runs to the end of the
// pattern, as in Redis.
func Compile(pattern string) (Matcher, error) {
	g, ok, err := translate(pattern)
	if err != nil {
		return nil, err
	}
	if !ok {
		return never{}, nil
	}
	return glob.Compile(g)
}

// translate rewrites p for gobwas/glob. ok is false when p can match nothing
// (an empty, non-negated class).
func translate(p string) (string, bool, error) {
	rs := []rune(p)
	var b strings.Builder
	b.Grow(len(p) + 4)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch r {
		case '\\':
			// trailing backslash matches itself
			if i+1 < len(rs) {
				i++
				r = rs[i]
			}
			writeLiteral(&b, r)
		case '[':
			c, end := parseClass(rs, i+1)
			i = end
			ok, err := c.write(&b)
			if err != nil || !ok {
				return "", ok, err
			}
		case '{', '}', ',':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), true, nil
}

func writeLiteral(b *strings.Builder, r rune) {
	if strings.ContainsRune(`*?[]{},\`, r) {
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}

type span struct{ lo, hi rune }

type class struct {
	negated bool
	spans   []span
}

// parseClass reads a class body starting right after '['. end is the index of
// the closing ']', or the last index of rs when the class is unterminated.
func parseClass(rs []rune, i int) (c class, end int) {
	if i < len(rs) && rs[i] == '^' {
		c.negated = true
		i++
	}
	for ; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\\' && i+1 < len(rs):
			i++
			c.spans = append(c.spans, span{rs[i], rs[i]})
		case r == ']':
			return c, i
		case i+2 < len(rs) && rs[i+1] == '-' && rs[i+2] != ']':
			lo, hi := r, rs[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			c.spans = append(c.spans, span{lo, hi})
			i += 2
		default:
			c.spans = append(c.spans, span{r, r})
		}
	}
	return c, len(rs) - 1
}

func (c class) write(b *strings.Builder) (bool, error) {
	if len(c.spans) == 0 {
		if c.negated {
			b.WriteByte('?')
			return true, nil
		}
		return false, nil
	}

	b.WriteByte('[')
	if c.negated {
		b.WriteByte('!')
	}

	// a lone wide range goes through as a native range
	if s := c.spans[0]; len(c.spans) == 1 && s.hi-s.lo >= maxClassSpan {
		if strings.ContainsRune(`]!\-`, s.lo) || strings.ContainsRune(`]\-`, s.hi) {
			return false, errClassTooWide
		}
		b.WriteRune(s.lo)
		b.WriteByte('-')
		b.WriteRune(s.hi)
		b.WriteByte(']')
		return true, nil
	}

	first := true
	for _, s := range c.spans {
		if s.hi-s.lo >= maxClassSpan {
			return false, errClassTooWide
		}
		for r := s.lo; r <= s.hi; r++ {
			// an escaped leading '-' would read as the low end of a range
			if !(first && r == '-') {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
			first = false
		}
	}
	b.WriteByte(']')
	return true, nil
}
