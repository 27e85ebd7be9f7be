// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedesc

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cursor is a bounds-checked, forward-only reader over a descriptor blob.
// Every read method follows the same shape as saferwall/pe's
// File.ReadUint16/ReadBytesAtOffset: check remaining length first, return
// ErrUnderflow rather than slice out of range, then advance the position.
type cursor struct {
	buf   []byte
	pos   int
	proto ProtocolVersion
}

func newCursor(buf []byte, proto ProtocolVersion) *cursor {
	return &cursor{buf: buf, pos: 0, proto: proto}
}

// remaining returns the number of unconsumed bytes.
func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

// peekByte returns the next byte without consuming it.
func (c *cursor) peekByte() (byte, error) {
	if c.remaining() < 1 {
		return 0, ErrUnderflow
	}
	return c.buf[c.pos], nil
}

// require fails fast when fewer than n bytes remain, mirroring the
// teacher's "Asserts minimum remaining bytes" step at the top of every
// variant decoder.
func (c *cursor) require(n int) error {
	if c.remaining() < n {
		return ErrUnderflow
	}
	return nil
}

func (c *cursor) readUint8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readUint16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) readUint32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) readInt32() (int32, error) {
	v, err := c.readUint32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// readUUID reads a 16-byte big-endian UUID, the wire representation spec.md
// §6 describes: "A UUID is 16 raw bytes."
func (c *cursor) readUUID() (uuid.UUID, error) {
	if err := c.require(16); err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	copy(id[:], c.buf[c.pos:c.pos+16])
	c.pos += 16
	return id, nil
}

// readString reads a u32 byte-length prefix followed by that many UTF-8
// bytes. Ill-formed UTF-8 fails the read, per spec.md §6.
func (c *cursor) readString() (string, error) {
	n, err := c.readUint32()
	if err != nil {
		return "", errors.Wrap(err, "typedesc: read string length")
	}
	if err := c.require(int(n)); err != nil {
		return "", err
	}
	raw := c.buf[c.pos : c.pos+int(n)]
	if !utf8.Valid(raw) {
		return "", errors.New("typedesc: length-prefixed string is not valid utf-8")
	}
	c.pos += int(n)
	return string(raw), nil
}
