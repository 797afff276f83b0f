// Package ndarray provides the dense N-dimensional numeric arrays the
// polynomial engine computes on.
//
// An [Array] stores its elements contiguously in row-major order:
//
//   - [New], [Zeros], [Full], [FromSlice], [FromRows], [Scalar]: construction
//   - [Array.Reshape], [Array.Transpose], [Array.MoveAxis]: layout changes
//   - [BroadcastShapes], [Array.BroadcastTo], [Zip]: broadcasting
//   - [Array.Index], [Array.Block], [Array.SetIndex]: access along axis 0
//
// Element types are restricted by [Number] to the real and complex floating
// point kinds. Helpers such as [ToComplex], [FromComplex] and [Abs] convert
// between an element type and complex128 without runtime type inference at
// the call site.
//
// # Ownership
//
// Every operation that returns an Array allocates a new one. The only
// exceptions are [Array.Raw] and [Array.Block], which expose the backing
// storage and must be treated as read-only by callers that do not own the
// array.
package ndarray
