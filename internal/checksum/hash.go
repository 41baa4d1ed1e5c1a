package checksum

import (
	"github.com/cespare/xxhash/v2"
	"github.com/gernest/dense/internal/magic"
	"github.com/minio/highwayhash"
	"github.com/zeebo/xxh3"
)

// U128 is a 128 bit digest.
type U128 = xxh3.Uint128

// Hash returns uint64 xxhash checksum of data.
func Hash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Words hashes the in-memory bytes of w. Results are only comparable within a process,
// they are never persisted.
func Words(w []uint64) uint64 {
	return Hash(magic.Bytes(w))
}

// KeyedWords is like Words but uses HighwayHash with key so that an attacker who does
// not know key cannot construct colliding sets.
func KeyedWords(key [32]byte, w []uint64) uint64 {
	return highwayhash.Sum64(magic.Bytes(w), key[:])
}

// Words128 returns a 128 bit xxh3 digest of w, for callers keying large numbers of sets
// where 64 bits collide too often.
func Words128(w []uint64) U128 {
	return xxh3.Hash128(magic.Bytes(w))
}
