// Copyright (c) Geofrey Ernest
// SPDX-License-Identifier: AGPL-3.0-only

// Package bitset implements dense bitsets.
//
// [Fixed] is a single 64 bit word used as a value. [Extended] is a growable sequence of
// 64 bit words, least significant word first, that extends itself when a bit past its
// capacity is written. Both implement [Set] so callers can be generic over the width.
//
// Bit 0 is always the least significant bit. String forms put the most significant digit
// first.
//
// Neither type synchronizes access. Concurrent readers are safe, writers need exclusive
// access.
package bitset
