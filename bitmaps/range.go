// Copyright (c) Geofrey Ernest
// SPDX-License-Identifier: AGPL-3.0-only

package bitmaps

import (
	"github.com/gernest/roaring"
	"github.com/gernest/roaring/shardwidth"
)

// OffsetRanger reads a window of a roaring bitmap.
type OffsetRanger interface {
	// OffsetRange returns the values in [start, end) shifted so that start maps to
	// offset. All three arguments must be container aligned, i.e. multiples of 65536.
	//
	// Given the bitmap [1, 2, 3, 65536, 65539]:
	//
	//	(0, 0, 131072)          => [1, 2, 3, 65536, 65539]
	//	(0, 65536, 131072)      => [0, 3]
	//	(262144, 65536, 131072) => [262144, 262147]
	OffsetRange(offset, start, end uint64) (*roaring.Bitmap, error)
}

// RoaringRange adapts an in memory [roaring.Bitmap] to [OffsetRanger].
type RoaringRange struct {
	ra *roaring.Bitmap
}

var _ OffsetRanger = (*RoaringRange)(nil)

// NewRoaringRange wraps ra. A nil ra is treated as an empty bitmap.
func NewRoaringRange(ra *roaring.Bitmap) *RoaringRange {
	if ra == nil {
		ra = roaring.NewBitmap()
	}
	return &RoaringRange{ra: ra}
}

// OffsetRange implements [OffsetRanger].
func (r *RoaringRange) OffsetRange(offset, start, end uint64) (*roaring.Bitmap, error) {
	return r.ra.OffsetRange(offset, start, end), nil
}

// Bitmap returns the wrapped bitmap.
func (r *RoaringRange) Bitmap() *roaring.Bitmap { return r.ra }

// Rows returns the number of rows holding at least one column.
func (r *RoaringRange) Rows() uint64 {
	if !r.ra.Any() {
		return 0
	}
	return r.ra.Max()/shardwidth.ShardWidth + 1
}
