package hashmap

import "sync"

// NormalMap implements the Map interface by guarding a builtin map with a mutex
type NormalMap[K comparable, V any] struct {
	mtx        sync.Mutex
	underlying map[K]V
}

var _ Map[int, any] = (*NormalMap[int, any])(nil)

// NewNormal creates a new thread safe map
func NewNormal[K comparable, V any]() *NormalMap[K, V] {
	return &NormalMap[K, V]{
		underlying: make(map[K]V),
	}
}

// Size returns the amount of stored key-value pairs
func (obj *NormalMap[K, V]) Size() int {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	return len(obj.underlying)
}

// Lookup returns the value assigned to the given key and whether one is assigned
func (obj *NormalMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	val, ok := obj.underlying[key]
	return val, ok
}

// Take returns the value assigned to the given key and removes it in the same step
func (obj *NormalMap[K, V]) Take(key K) (V, bool) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	val, ok := obj.underlying[key]
	delete(obj.underlying, key)
	return val, ok
}

// Set assigns a value to the given key
func (obj *NormalMap[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying[key] = value
}

// Unset deletes the value assigned to the given key
func (obj *NormalMap[K, V]) Unset(key K) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	delete(obj.underlying, key)
}

// Clear removes every key-value pair
func (obj *NormalMap[K, V]) Clear() {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying = make(map[K]V)
}

// removeIf removes every pair the predicate reports true for and returns the amount of removed pairs
func (obj *NormalMap[K, V]) removeIf(predicate func(key K, value V) bool) int {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	removed := 0
	for key, val := range obj.underlying {
		if predicate(key, val) {
			delete(obj.underlying, key)
			removed++
		}
	}
	return removed
}
