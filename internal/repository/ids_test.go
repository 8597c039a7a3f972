package repository

import (
	"regexp"
	"testing"
)

func TestNewPublicIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^DR-[0-9A-F]{12}$`)
	for i := 0; i < 100; i++ {
		id := newPublicID("DR")
		if !pattern.MatchString(id) {
			t.Fatalf("newPublicID(\"DR\") = %q, want match for %s", id, pattern)
		}
	}
}

func TestNewPublicIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newPublicID("AP")
		if seen[id] {
			t.Fatalf("newPublicID produced duplicate %q", id)
		}
		seen[id] = true
	}
}
