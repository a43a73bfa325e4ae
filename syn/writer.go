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

package syn

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidWord indicates a synonym that cannot be written.
var ErrInvalidWord = errors.New("invalid synonym")

// Writer writes .syn entries. Words must be written in StarDict sort order.
type Writer struct {
	w     *bufio.Writer
	count int
}

// NewWriter returns a new Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single synonym entry.
func (w *Writer) Write(word *Word) error {
	if word.Word == "" || strings.IndexByte(word.Word, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word.Word)
	}

	b := make([]byte, 0, len(word.Word)+5)
	b = append(b, word.Word...)
	b = append(b, 0)
	b = binary.BigEndian.AppendUint32(b, word.OriginalWordIndex)

	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("writing synonym entry: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of synonyms written. This is the value of the
// synwordcount .ifo key.
func (w *Writer) Count() int {
	return w.count
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing synonyms: %w", err)
	}
	return nil
}
