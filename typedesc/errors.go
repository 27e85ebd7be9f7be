// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedesc

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrUnderflow is returned when fewer bytes remain in the input than a
// record (or a fixed-size field within one) requires.
var ErrUnderflow = fmt.Errorf("typedesc: buffer underflow")

// ErrInvalidArrayShape is returned when an array dimension is neither -1
// (unbounded) nor a strictly positive size.
var ErrInvalidArrayShape = fmt.Errorf("typedesc: invalid array shape")

// InvalidTypeDescriptorError is returned when a tag byte does not match
// any known descriptor variant.
type InvalidTypeDescriptorError struct {
	Tag byte
}

func (e *InvalidTypeDescriptorError) Error() string {
	return fmt.Sprintf("typedesc: invalid type descriptor tag 0x%02x", e.Tag)
}

// UUIDNotFoundError is returned when the root UUID supplied to Decode does
// not match any descriptor in the stream.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

func (e *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("typedesc: root uuid %s not found in descriptor stream", e.UUID)
}

// TooManyDescriptorsError is returned when the root descriptor's position
// does not fit in a u16.
type TooManyDescriptorsError struct {
	Index int
}

func (e *TooManyDescriptorsError) Error() string {
	return fmt.Sprintf("typedesc: descriptor count %d exceeds u16 positions", e.Index)
}
