// Package keyspace maps logical cache keys to backing keys under a prefix and
// builds the glob patterns used to enumerate a namespace.
package keyspace

import "strings"

// metachars are the characters with meaning in the Redis glob dialect.
const metachars = `*?[]\`

// Namespace is an immutable key prefix.
type Namespace struct {
	prefix  string
	escaped string
}

func New(prefix string) Namespace {
	return Namespace{prefix: prefix, escaped: Escape(prefix)}
}

func (n Namespace) Prefix() string { return n.prefix }

// Key returns prefix+key. The logical key is never escaped.
func (n Namespace) Key(key string) string { return n.prefix + key }

// Pattern returns a match pattern for key under this namespace. The prefix is
// escaped so it always matches literally; metacharacters in key stay active.
func (n Namespace) Pattern(key string) string { return n.escaped + key }

// All matches every backing key owned by the namespace.
func (n Namespace) All() string { return n.escaped + "*" }

// Logical strips the prefix from a backing key. ok is false when the key
// does not belong to the namespace.
func (n Namespace) Logical(backing string) (key string, ok bool) {
	if !strings.HasPrefix(backing, n.prefix) {
		return backing, false
	}
	return backing[len(n.prefix):], true
}

// Escape quotes glob metacharacters in s with a backslash.
func Escape(s string) string {
	if !strings.ContainsAny(s, metachars) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(metachars, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
