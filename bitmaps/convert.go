// Copyright (c) Geofrey Ernest
// SPDX-License-Identifier: AGPL-3.0-only

package bitmaps

import (
	"github.com/gernest/dense/bitset"
	"github.com/gernest/roaring"
	"github.com/gernest/roaring/shardwidth"
	"github.com/pkg/errors"
)

// ErrColumn is returned when a row does not fit into a shard.
var ErrColumn = errors.New("bitmaps: column exceeds shard width")

// ToRoaring returns a roaring bitmap holding the set bits of b.
func ToRoaring(b bitset.BitSet) *roaring.Bitmap {
	ra := roaring.NewBitmap()
	for i := range b.Ones() {
		ra.DirectAdd(uint64(i))
	}
	return ra
}

// FromRoaring copies ra into a dense set sized to its largest value.
func FromRoaring(ra *roaring.Bitmap) (*bitset.Extended, error) {
	if ra == nil || !ra.Any() {
		return bitset.NewExtended(0), nil
	}
	mx := ra.Max()
	if mx >= bitset.MaxBits {
		return nil, errors.Wrapf(bitset.ErrTooLarge, "roaring max %d", mx)
	}
	b := bitset.NewExtended(uint(mx) + 1)
	for _, v := range ra.Slice() {
		b.SetBit(uint(v), true)
	}
	return b, nil
}

// Row reads rowID from ra into a dense set of exactly ShardWidth bits. Column c of
// the row becomes bit c.
func Row(ra OffsetRanger, rowID uint64) (*bitset.Extended, error) {
	r, err := ra.OffsetRange(0,
		shardwidth.ShardWidth*rowID,
		shardwidth.ShardWidth*(rowID+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading row %d", rowID)
	}
	b, err := FromRoaring(r)
	if err != nil {
		return nil, err
	}
	if err := b.Resize(uint(shardwidth.ShardWidth)); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteRow adds the set bits of b to ra as columns of rowID. Nothing is written when
// b has a set bit at or past ShardWidth.
func WriteRow(ra *roaring.Bitmap, rowID uint64, b bitset.BitSet) error {
	if last := b.LastSet(); last != bitset.NotFound && uint64(last) >= shardwidth.ShardWidth {
		return errors.Wrapf(ErrColumn, "row %d column %d", rowID, last)
	}
	base := rowID * shardwidth.ShardWidth
	for i := range b.Ones() {
		ra.DirectAdd(base + uint64(i))
	}
	return nil
}
