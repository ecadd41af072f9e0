package hashmap

// Map represents the interface every map provided by this package implements
type Map[K comparable, V any] interface {
	// Size returns the amount of stored key-value pairs
	Size() int

	// Lookup returns the value assigned to the given key and whether one is assigned
	Lookup(key K) (V, bool)

	// Take returns the value assigned to the given key and removes it in the same step
	Take(key K) (V, bool)

	// Set assigns a value to the given key
	Set(key K, value V)

	// Unset deletes the value assigned to the given key
	Unset(key K)

	// Clear removes every key-value pair
	Clear()
}
