// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ident

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	id := New()
	if len(id) != DefaultLength {
		t.Fatalf("len(New()) = %d, want %d", len(id), DefaultLength)
	}
	for _, r := range id {
		if !strings.ContainsRune(alphabet, r) {
			t.Errorf("character %q outside alphabet", r)
		}
	}
}

func TestNewN(t *testing.T) {
	for _, n := range []int{1, 6, 12} {
		if got := NewN(n); len(got) != n {
			t.Errorf("len(NewN(%d)) = %d", n, len(got))
		}
	}
}

func TestNewVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[New()] = true
	}
	if len(seen) < 2 {
		t.Fatal("100 generated identifiers were all identical")
	}
}
