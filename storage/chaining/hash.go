package chaining

import "github.com/pkg/errors"

var (
	ErrInvalidKeyType  = errors.New("key must be a string")
	ErrIndexOutOfRange = errors.New("bucket index out of range")
)

const hashMultiplier = 31

// Hash computes the bucket index for key in a table of the given capacity.
//
// The digest accumulates in a uint64 and wraps on overflow. Capacities are
// always powers of two, so reducing the wrapped digest gives the same bucket
// as reducing the exact one.
func Hash(key string, capacity int) int {
	var val uint64
	for _, char := range key {
		val = val*hashMultiplier + uint64(char)
	}

	return int(val % uint64(capacity))
}

// KeyFromValue accepts keys that arrive untyped, such as decoded YAML or
// JSON, and rejects anything that is not a string.
func KeyFromValue(v interface{}) (string, error) {
	key, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrInvalidKeyType, "got %T", v)
	}

	return key, nil
}
