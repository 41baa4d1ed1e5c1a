// Package bitmaps moves bits between dense sets and [roaring.Bitmap].
//
// Roaring bitmaps here follow the Pilosa fragment layout: row r occupies the values
// [r*ShardWidth, (r+1)*ShardWidth) and a column is the offset inside that window.
// [Row] and [WriteRow] translate a single row to and from a [bitset.Extended] of
// ShardWidth bits.
package bitmaps
