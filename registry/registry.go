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

// Package registry provides a small generic, thread-safe key-value map.
//
// It is the storage primitive behind the selector's socket registry
// (both the active set and the deferred-cancellation set): a single map
// type, keyed by any comparable type, safe for concurrent Load, Store,
// Delete and Walk.
package registry

import "sync"

// FuncWalk is called once per key-value pair during Walk. Returning
// false stops the iteration early.
type FuncWalk[T comparable, V any] func(key T, val V) bool

// Map is a generic thread-safe key-value store.
//
// Storing a nil-ish zero value for V does not delete the key; use
// Delete explicitly. All methods are safe for concurrent use.
type Map[T comparable, V any] struct {
	mu sync.RWMutex
	m  map[T]V
}

// New returns an empty, ready-to-use Map.
func New[T comparable, V any]() *Map[T, V] {
	return &Map[T, V]{m: make(map[T]V)}
}

// Load returns the value stored for key, and whether it was present.
func (r *Map[T, V]) Load(key T) (val V, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	val, ok = r.m[key]
	return val, ok
}

// Store sets the value for key, overwriting any existing value.
func (r *Map[T, V]) Store(key T, val V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key] = val
}

// Delete removes key from the map. It is a no-op if key is absent.
func (r *Map[T, V]) Delete(key T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, key)
}

// LoadAndDelete atomically loads and removes the value for key.
func (r *Map[T, V]) LoadAndDelete(key T) (val V, loaded bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	val, loaded = r.m[key]
	if loaded {
		delete(r.m, key)
	}
	return val, loaded
}

// Contains reports whether key is present in the map.
func (r *Map[T, V]) Contains(key T) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.m[key]
	return ok
}

// Len returns the number of entries currently stored.
func (r *Map[T, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// Clean removes every entry from the map.
func (r *Map[T, V]) Clean() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = make(map[T]V)
}

// Walk calls fct once for every key-value pair currently stored.
// Walk takes a snapshot of the keys before iterating, so fct is free
// to call Delete or Store on the same Map without deadlocking.
func (r *Map[T, V]) Walk(fct FuncWalk[T, V]) {
	r.mu.RLock()
	keys := make([]T, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	for _, k := range keys {
		r.mu.RLock()
		v, ok := r.m[k]
		r.mu.RUnlock()
		if !ok {
			continue
		}
		if !fct(k, v) {
			return
		}
	}
}

// Keys returns a snapshot slice of all keys currently stored.
func (r *Map[T, V]) Keys() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]T, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	return keys
}
