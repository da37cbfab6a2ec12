package extsort

// Codec converts items to and from their spill encoding.
type Codec[T any] interface {
	// Append appends the encoding of v to dst.
	Append(dst []byte, v T) []byte

	// Decode decodes the item at the start of src and returns it with the
	// number of bytes consumed. The item must not alias src.
	Decode(src []byte) (T, int, error)
}
