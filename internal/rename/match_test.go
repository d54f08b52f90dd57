package rename_test

import (
	"errors"
	"reflect"
	"regexp"
	"regexp/syntax"
	"strings"
	"testing"

	"bulkrename/internal/rename"
)

func TestCompilePattern(t *testing.T) {
	t.Run("valid pattern", func(t *testing.T) {
		t.Parallel()
		re, err := rename.CompilePattern(`^f(\d)`)
		if err != nil {
			t.Fatalf("CompilePattern() error = %v", err)
		}
		if !re.MatchString("f1") {
			t.Error("compiled pattern should match f1")
		}
	})

	t.Run("invalid pattern names the pattern", func(t *testing.T) {
		t.Parallel()
		_, err := rename.CompilePattern("a(")
		if err == nil {
			t.Fatal("CompilePattern() expected error")
		}
		if !strings.Contains(err.Error(), "`a(`") {
			t.Errorf("error %q should quote the pattern", err)
		}
		var syntaxErr *syntax.Error
		if !errors.As(err, &syntaxErr) {
			t.Error("error should wrap the regexp syntax error")
		}
	})
}

func TestFilterMatches(t *testing.T) {
	names := []string{"a.txt", "b.txt", "cat/", "dog.md"}

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"unanchored substring", "a", []string{"a.txt", "cat/"}},
		{"anchored", "^a", []string{"a.txt"}},
		{"extension", `\.txt$`, []string{"a.txt", "b.txt"}},
		{"directory slash is part of the name", "/$", []string{"cat/"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rename.FilterMatches(names, regexp.MustCompile(tt.pattern), 2)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterMatches(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}

	t.Run("nil pattern keeps everything", func(t *testing.T) {
		t.Parallel()
		got := rename.FilterMatches(names, nil, 2)
		if !reflect.DeepEqual(got, names) {
			t.Errorf("FilterMatches(nil) = %v, want %v", got, names)
		}
	})

	t.Run("preserves order across many workers", func(t *testing.T) {
		t.Parallel()
		var many []string
		for i := 0; i < 500; i++ {
			many = append(many, strings.Repeat("x", i%7)+"-"+string(rune('a'+i%26)))
		}
		got := rename.FilterMatches(many, regexp.MustCompile("x"), 16)
		var want []string
		for _, n := range many {
			if strings.Contains(n, "x") {
				want = append(want, n)
			}
		}
		if !reflect.DeepEqual(got, want) {
			t.Error("FilterMatches() changed the relative order of names")
		}
	})
}
