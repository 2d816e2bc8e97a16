package ort

import "unsafe"

// cStringToString copies a NUL-terminated C string into a Go string.
func cStringToString(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	var n int
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// cString returns a NUL-terminated byte slice for s, suitable for passing to
// the C API. The slice must be kept alive for the duration of the call.
func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func pointer(p *byte) unsafe.Pointer { return unsafe.Pointer(p) }

// pointerSlice views a C array of n char pointers as a Go slice.
func pointerSlice(p **byte, n int) []*byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}
