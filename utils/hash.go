package utils

import (
	"github.com/benbjohnson/immutable"
)

// HashString hashes a string with the default immutable hasher.
func HashString(s string) uint32 {
	return immutable.NewHasher(s).Hash(s)
}

// HashInt hashes an int with the default immutable hasher.
func HashInt(i int) uint32 {
	return immutable.NewHasher(i).Hash(i)
}

// HashCombine uses the C++ boost algorithm for combining multiple hash values.
func HashCombine(hs ...uint32) (seed uint32) {
	for _, v := range hs {
		seed = v + 0x9e3779b9 + (seed << 6) + (seed >> 2)
	}

	return
}
