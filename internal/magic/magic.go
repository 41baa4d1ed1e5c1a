// Package magic holds unsafe views over memory that avoid copies on hot paths.
package magic

import "unsafe"

// Bytes returns the in-memory bytes of w. The result aliases w and its byte order is
// the host's.
func Bytes(w []uint64) []byte {
	if len(w) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(w))), len(w)*8)
}
