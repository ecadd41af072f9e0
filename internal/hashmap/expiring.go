package hashmap

import (
	"time"

	"github.com/agrosuite/dashboard/internal/task"
)

type expiringEntry[T any] struct {
	raw     T
	expires time.Time
}

// ExpiringMap implements the Map interface for values that only live for a fixed lifetime.
// Expired values are never returned; they are removed from memory by the cleanup task.
type ExpiringMap[K comparable, V any] struct {
	normal      *NormalMap[K, expiringEntry[V]]
	lifetime    time.Duration
	now         func() time.Time
	cleanupTask *task.RepeatingTask
}

var _ Map[int, any] = (*ExpiringMap[int, any])(nil)

// NewExpiring creates a new expiring map whose values exist for the given lifetime
func NewExpiring[K comparable, V any](lifetime time.Duration) *ExpiringMap[K, V] {
	return &ExpiringMap[K, V]{
		normal:   NewNormal[K, expiringEntry[V]](),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// ScheduleCleanupTask starts the task removing expired values in the given interval.
// StopCleanupTask has to be called once the map is no longer needed.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(func() {
		obj.Cleanup()
	}, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the cleanup task, running it one last time
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	if obj.cleanupTask == nil {
		return
	}
	obj.cleanupTask.Stop(true)
	obj.cleanupTask = nil
}

// Cleanup removes every expired value and returns the amount of removed values
func (obj *ExpiringMap[K, V]) Cleanup() int {
	now := obj.now()
	return obj.normal.removeIf(func(_ K, val expiringEntry[V]) bool {
		return !now.Before(val.expires)
	})
}

// Size returns the amount of stored key-value pairs, including expired ones not yet cleaned up
func (obj *ExpiringMap[K, V]) Size() int {
	return obj.normal.Size()
}

// Lookup returns the value assigned to the given key and whether an unexpired one is assigned
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := obj.normal.Lookup(key)
	return obj.unwrap(val, ok)
}

// Take returns the value assigned to the given key and removes it in the same step
func (obj *ExpiringMap[K, V]) Take(key K) (V, bool) {
	val, ok := obj.normal.Take(key)
	return obj.unwrap(val, ok)
}

func (obj *ExpiringMap[K, V]) unwrap(val expiringEntry[V], ok bool) (V, bool) {
	if !ok || !obj.now().Before(val.expires) {
		var zero V
		return zero, false
	}
	return val.raw, true
}

// Set assigns a value to the given key, restarting its lifetime
func (obj *ExpiringMap[K, V]) Set(key K, value V) {
	obj.normal.Set(key, expiringEntry[V]{
		raw:     value,
		expires: obj.now().Add(obj.lifetime),
	})
}

// Unset deletes the value assigned to the given key
func (obj *ExpiringMap[K, V]) Unset(key K) {
	obj.normal.Unset(key)
}

// Clear removes every key-value pair
func (obj *ExpiringMap[K, V]) Clear() {
	obj.normal.Clear()
}
