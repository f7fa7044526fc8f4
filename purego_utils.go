// Shared helpers for passing data across the native boundary.

package vlc

import (
	"os"
	"path/filepath"
	"runtime"
	"unsafe"
)

// cStringToGo copies the NUL-terminated string at ptr. A zero ptr yields "".
func cStringToGo(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), cStrlen(ptr)))
}

// cStrlen is strlen(3) over native memory.
func cStrlen(ptr uintptr) int {
	p := unsafe.Pointer(ptr)
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return n
}

// cStringArray is a NUL-terminated copy of a string slice laid out as a C
// argv array. The memory stays pinned until Free.
type cStringArray struct {
	bufs   [][]byte
	ptrs   []*byte
	pinner runtime.Pinner
}

func newCStringArray(strs []string) *cStringArray {
	a := &cStringArray{
		bufs: make([][]byte, len(strs)),
		ptrs: make([]*byte, len(strs)),
	}
	for i, s := range strs {
		buf := make([]byte, len(s)+1)
		copy(buf, s)
		a.bufs[i] = buf
		a.ptrs[i] = &buf[0]
		a.pinner.Pin(&buf[0])
	}
	if len(a.ptrs) > 0 {
		a.pinner.Pin(&a.ptrs[0])
	}
	return a
}

// Len returns argc.
func (a *cStringArray) Len() int32 {
	return int32(len(a.ptrs))
}

// Pointer returns argv, or nil for an empty array.
func (a *cStringArray) Pointer() unsafe.Pointer {
	if len(a.ptrs) == 0 {
		return nil
	}
	return unsafe.Pointer(&a.ptrs[0])
}

// Free unpins the array. It must not be used by native code afterwards.
func (a *cStringArray) Free() {
	a.pinner.Unpin()
}

// moduleBuildDir returns the build/ directory of the nearest enclosing Go
// module, or "" outside a module.
func moduleBuildDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for ; ; dir = filepath.Dir(dir) {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return filepath.Join(dir, "build")
		}
		if filepath.Dir(dir) == dir {
			return ""
		}
	}
}
