// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit extends the functionalities of rsc.io/edit to
// implement eficient buffered editing of byte slices by offset ranges.
// It requires a single allocation for many operations.
package sliceedit

import (
	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
// Edits are expressed in offsets of the original slice and must not overlap.
type Buffer struct {
	ed    edit.Buffer
	buf   []byte
	edits int
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	b := &Buffer{}
	b.buf = buf // Just for our internal queries, we do not modify anything in it
	b.ed = *edit.NewBuffer(buf)
	return b
}

// Delete deletes buf[start:end].
func (b *Buffer) Delete(start int, end int) {
	if start >= end {
		return
	}
	b.ed.Delete(start, end)
	b.edits++
}

// Replace replaces buf[start:end] with new.
func (b *Buffer) Replace(start int, end int, new []byte) {
	b.ed.Replace(start, end, string(new))
	b.edits++
}

// Insert inserts new at pos.
func (b *Buffer) Insert(pos int, new []byte) {
	if len(new) == 0 {
		return
	}
	b.ed.Insert(pos, string(new))
	b.edits++
}

// Edits returns the number of queued edits.
func (b *Buffer) Edits() int {
	return b.edits
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	if b.edits == 0 {
		return append([]byte(nil), b.buf...)
	}
	return b.ed.Bytes()
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return string(b.Bytes())
}
