package io

// FixedInput serves a pre-loaded sequence of values, front to back.
type FixedInput struct {
	Data []int32

	ReadIndex int
}

var _ Input = (*FixedInput)(nil)

// NewFixedInput creates an input serving the given values.
func NewFixedInput(values ...int32) *FixedInput {
	return &FixedInput{Data: values}
}

// Rewind restarts the sequence from the first value.
func (fi *FixedInput) Rewind() {
	fi.ReadIndex = 0
}

// Remaining returns the count of values not yet served.
func (fi *FixedInput) Remaining() int {
	return len(fi.Data) - fi.ReadIndex
}

// Receive returns the next value, or ErrInputExhausted once all
// values have been served.
func (fi *FixedInput) Receive() (value int32, err error) {
	if fi.ReadIndex >= len(fi.Data) {
		err = ErrInputExhausted
		return
	}

	value = fi.Data[fi.ReadIndex]
	fi.ReadIndex++

	return
}

// ExtendedInput serves its own Prefix values first, then delegates
// every following request to Base.
type ExtendedInput struct {
	Prefix []int32
	Base   Input

	readIndex int
}

var _ Input = (*ExtendedInput)(nil)

// NewExtendedInput seeds base with the given prefix values.
func NewExtendedInput(base Input, prefix ...int32) *ExtendedInput {
	return &ExtendedInput{Prefix: prefix, Base: base}
}

// Receive returns the next prefix value, or the next value of Base once
// the prefix is exhausted.
func (ei *ExtendedInput) Receive() (value int32, err error) {
	if ei.readIndex < len(ei.Prefix) {
		value = ei.Prefix[ei.readIndex]
		ei.readIndex++
		return
	}

	if ei.Base == nil {
		err = ErrInputExhausted
		return
	}

	return ei.Base.Receive()
}
