// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package idx

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var (
	// ErrOffsetTooLarge indicates that a word offset does not fit in the
	// configured number of offset bits.
	ErrOffsetTooLarge = errors.New("word offset too large")

	// ErrInvalidWord indicates a word that cannot be written to an index.
	ErrInvalidWord = errors.New("invalid word")
)

// MaxWordLength is the maximum length in bytes of an index word, not
// including the null terminator.
const MaxWordLength = 255

// Writer writes .idx entries. Words must be written in StarDict sort order.
type Writer struct {
	w             *bufio.Writer
	idxoffsetbits int
	size          int64
	count         int
}

// NewWriter returns a new Writer that writes to w. Only OffsetBits is used
// from options.
func NewWriter(w io.Writer, options *Options) (*Writer, error) {
	offsetBits := DefaultOptions.OffsetBits
	if options != nil && options.OffsetBits != 0 {
		offsetBits = options.OffsetBits
	}
	if offsetBits != 32 && offsetBits != 64 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdxOffset, offsetBits)
	}

	return &Writer{
		w:             bufio.NewWriter(w),
		idxoffsetbits: offsetBits,
	}, nil
}

// Write writes a single index entry.
func (w *Writer) Write(word *Word) error {
	if word.Word == "" || len(word.Word) > MaxWordLength || strings.IndexByte(word.Word, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word.Word)
	}
	if w.idxoffsetbits == 32 && word.Offset > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrOffsetTooLarge, word.Offset)
	}

	b := make([]byte, 0, len(word.Word)+1+w.idxoffsetbits/8+4)
	b = append(b, word.Word...)
	b = append(b, 0)
	if w.idxoffsetbits == 64 {
		b = binary.BigEndian.AppendUint64(b, word.Offset)
	} else {
		//nolint:gosec // offset size is bounds checked above.
		b = binary.BigEndian.AppendUint32(b, uint32(word.Offset))
	}
	b = binary.BigEndian.AppendUint32(b, word.Size)

	n, err := w.w.Write(b)
	w.size += int64(n)
	if err != nil {
		return fmt.Errorf("writing index entry: %w", err)
	}
	w.count++
	return nil
}

// Size returns the number of bytes written. This is the value of the
// idxfilesize .ifo key.
func (w *Writer) Size() int64 {
	return w.size
}

// Count returns the number of words written.
func (w *Writer) Count() int {
	return w.count
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing index: %w", err)
	}
	return nil
}
