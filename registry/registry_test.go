/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package registry_test

import (
	"sync"
	"testing"

	"github.com/bibhas2/velar/registry"
)

func TestLoadStoreDelete(t *testing.T) {
	m := registry.New[int, string]()

	if _, ok := m.Load(1); ok {
		t.Fatal("Load on empty map returned ok=true")
	}

	m.Store(1, "one")
	if v, ok := m.Load(1); !ok || v != "one" {
		t.Fatalf("Load(1) = (%q, %v), want (\"one\", true)", v, ok)
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}

	m.Delete(1)
	if _, ok := m.Load(1); ok {
		t.Fatal("Load after Delete returned ok=true")
	}
	if m.Len() != 0 {
		t.Fatalf("Len() after Delete = %d, want 0", m.Len())
	}

	// Deleting an absent key is a no-op, not an error.
	m.Delete(99)
}

func TestLoadAndDelete(t *testing.T) {
	m := registry.New[string, int]()
	m.Store("a", 1)

	v, loaded := m.LoadAndDelete("a")
	if !loaded || v != 1 {
		t.Fatalf("LoadAndDelete(\"a\") = (%d, %v), want (1, true)", v, loaded)
	}
	if _, ok := m.Load("a"); ok {
		t.Fatal("key still present after LoadAndDelete")
	}

	if _, loaded := m.LoadAndDelete("missing"); loaded {
		t.Fatal("LoadAndDelete on an absent key returned loaded=true")
	}
}

func TestContains(t *testing.T) {
	m := registry.New[int, struct{}]()
	if m.Contains(1) {
		t.Fatal("Contains on empty map returned true")
	}
	m.Store(1, struct{}{})
	if !m.Contains(1) {
		t.Fatal("Contains returned false for a stored key")
	}
}

func TestClean(t *testing.T) {
	m := registry.New[int, int]()
	for i := 0; i < 5; i++ {
		m.Store(i, i*i)
	}
	if m.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", m.Len())
	}
	m.Clean()
	if m.Len() != 0 {
		t.Fatalf("Len() after Clean = %d, want 0", m.Len())
	}
}

func TestKeys(t *testing.T) {
	m := registry.New[int, string]()
	want := map[int]bool{1: true, 2: true, 3: true}
	for k := range want {
		m.Store(k, "v")
	}

	got := map[int]bool{}
	for _, k := range m.Keys() {
		got[k] = true
	}
	if len(got) != len(want) {
		t.Fatalf("Keys() returned %d entries, want %d", len(got), len(want))
	}
	for k := range want {
		if !got[k] {
			t.Errorf("Keys() missing %d", k)
		}
	}
}

func TestWalkVisitsEveryEntry(t *testing.T) {
	m := registry.New[int, int]()
	for i := 0; i < 10; i++ {
		m.Store(i, i)
	}

	seen := map[int]bool{}
	m.Walk(func(k, v int) bool {
		seen[k] = true
		return true
	})
	if len(seen) != 10 {
		t.Fatalf("Walk visited %d entries, want 10", len(seen))
	}
}

func TestWalkStopsOnFalse(t *testing.T) {
	m := registry.New[int, int]()
	for i := 0; i < 10; i++ {
		m.Store(i, i)
	}

	count := 0
	m.Walk(func(k, v int) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Fatalf("Walk ran %d times, want 3", count)
	}
}

func TestWalkAllowsDeleteDuringIteration(t *testing.T) {
	m := registry.New[int, int]()
	for i := 0; i < 5; i++ {
		m.Store(i, i)
	}

	// Walk snapshots keys up front, so deleting entries as they are
	// visited must not panic or deadlock.
	m.Walk(func(k, v int) bool {
		m.Delete(k)
		return true
	})
	if m.Len() != 0 {
		t.Fatalf("Len() after self-deleting Walk = %d, want 0", m.Len())
	}
}

func TestConcurrentStoreAndLoad(t *testing.T) {
	m := registry.New[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.Store(n, n)
			m.Load(n)
		}(i)
	}
	wg.Wait()

	if m.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", m.Len())
	}
}
