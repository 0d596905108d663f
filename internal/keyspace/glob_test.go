package keyspace

import "testing"

func TestCompileRedisDialect(t *testing.T) {
	cases := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"*", "", true},
		{"*", "anything:at:all", true},
		{"foo*", "foo", true},
		{"foo*", "foo_1", true},
		{"foo*", "bar_1", false},
		{"h?llo", "hello", true},
		{"h?llo", "hllo", false},
		{"h[ae]llo", "hallo", true},
		{"h[ae]llo", "hillo", false},
		{"h[^e]llo", "hallo", true},
		{"h[^e]llo", "hello", false},
		{"h[a-b]llo", "hbllo", true},
		{"h[a-b]llo", "hcllo", false},
		{`h\*llo`, "h*llo", true},
		{`h\*llo`, "hello", false},
		{"p:{a,b}", "p:{a,b}", true},
		{"p:{a,b}", "p:a", false},
		{"cacheman:*", "cacheman:user:1", true},
		{"cacheman:*", "other:user:1", false},
		{"a[a-]", "a-", true},
		{"a[a-]", "aa", true},
		{"a[a-]", "ab", false},
		{"[-a]", "-", true},
		{"[-]", "-", true},
		{"[^a-]", "-", false},
		{"[^a-]", "b", true},
		{"a[bc", "ab", true},
		{"a[bc", "ac", true},
		{"a[bc", "abc", false},
		{"a[", "a", false},
		{"h[a-cx-z]llo", "hyllo", true},
		{"h[a-cx-z]llo", "hdllo", false},
		{"h[c-a]llo", "hbllo", true},
		{"[!a]", "!", true},
		{"[!a]", "b", false},
		{`[\]]`, "]", true},
		{"x[^]", "xy", true},
		{"[0-9]*", "7:k", true},
	}
	for _, tc := range cases {
		m, err := Compile(tc.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tc.pattern, err)
		}
		if got := m.Match(tc.key); got != tc.want {
			t.Errorf("Compile(%q).Match(%q) = %v, want %v", tc.pattern, tc.key, got, tc.want)
		}
	}
}

func TestCompileEscapedNamespace(t *testing.T) {
	ns := New("a*b:")
	m, err := Compile(ns.All())
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("a*b:k") {
		t.Fatalf("escaped prefix should match its own keys")
	}
	if m.Match("axxb:k") {
		t.Fatalf("escaped prefix must not behave as a wildcard")
	}
}

func TestCompileEmptyClassMatchesNothing(t *testing.T) {
	m, err := Compile("x[]")
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"x", "x]", "xa"} {
		if m.Match(k) {
			t.Fatalf("x[] matched %q", k)
		}
	}
}

func TestCompileWideRange(t *testing.T) {
	m, err := Compile("[a-\u4e00]")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("\u4000") || m.Match("A") {
		t.Fatal("lone wide range should compile to a native range")
	}
	if _, err := Compile("[0-9a-\u4e00]"); err == nil {
		t.Fatal("wide range in a mixed class should be rejected")
	}
}
