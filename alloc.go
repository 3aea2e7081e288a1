package memres

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// wordSize is the alignment every built-in policy guarantees.
const wordSize = unsafe.Sizeof(uintptr(0))

// maxAllocSize bounds single requests. It stays below the runtime's largest
// heap allocation (2^48 bytes on 64-bit platforms), so oversized requests
// fail with ErrOutOfMemory instead of panicking in make.
const maxAllocSize = min(1<<47, math.MaxInt>>1)

// sizeOf returns the size of T in bytes.
func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// bytesFor returns the byte size of n elements of T.
func bytesFor[T any](n int) (int, error) {
	size := sizeOf[T]()
	if n < 0 || (size > 0 && n > maxAllocSize/size) {
		return 0, errors.Wrapf(ErrOutOfMemory, "%d elements of %d bytes", n, size)
	}
	return n * size, nil
}

// elemsIn returns how many whole elements of T fit in n bytes. Trailing bytes
// below one element are not counted. Zero-size types count one per byte.
func elemsIn[T any](n int) int {
	size := sizeOf[T]()
	if size == 0 {
		return n
	}
	return n / size
}

// alignUp rounds n up to the word size.
func alignUp(n uintptr) uintptr {
	mask := wordSize - 1
	return (n + mask) &^ mask
}

// makeWords returns a zeroed, word-aligned byte slice of at least n bytes.
func makeWords(n int) []byte {
	words := (n + int(wordSize) - 1) / int(wordSize)
	buf := make([]uintptr, words)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(buf))), words*int(wordSize))
}

// view returns n elements of T starting at p.
func view[T any](p *T, n int) []T {
	if p == nil {
		return nil
	}
	return unsafe.Slice(p, n)
}

// mustBePointerFree panics when T holds Go pointers. Policies hand out memory
// the garbage collector does not scan, so such values would be collected
// while still referenced.
func mustBePointerFree[T any]() {
	t := reflect.TypeFor[T]()
	if !pointerFree(t) {
		panic(fmt.Sprintf("memres: element type %s contains Go pointers", t))
	}
}

func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
