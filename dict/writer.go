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

package dict

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ianlewis/go-dictzip"
)

// Writer writes word data to a .dict file and reports the offset and size of
// each word for the index.
type Writer struct {
	buf              *bufio.Writer
	z                *dictzip.Writer
	sametypesequence []DataType
	offset           uint64
}

// NewWriter returns a new Writer that writes uncompressed data to w.
func NewWriter(w io.Writer, options *Options) (*Writer, error) {
	if options == nil {
		options = DefaultOptions
	}
	if err := validateSequence(options.SameTypeSequence); err != nil {
		return nil, err
	}

	return &Writer{
		buf:              bufio.NewWriter(w),
		sametypesequence: options.SameTypeSequence,
	}, nil
}

// NewDictzipWriter returns a new Writer that compresses data written to w
// using the dictzip format.
func NewDictzipWriter(w io.Writer, options *Options) (*Writer, error) {
	z, err := dictzip.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("creating dictzip writer: %w", err)
	}

	dw, err := NewWriter(z, options)
	if err != nil {
		return nil, err
	}
	dw.z = z
	return dw, nil
}

// Write writes a word's data and returns its offset and size.
func (w *Writer) Write(word *Word) (uint64, uint32, error) {
	b, err := w.encode(word)
	if err != nil {
		return 0, 0, err
	}
	if uint64(len(b)) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: word data too long: %d", ErrInvalidData, len(b))
	}

	offset := w.offset
	n, err := w.buf.Write(b)
	w.offset += uint64(n)
	if err != nil {
		return 0, 0, fmt.Errorf("writing word data: %w", err)
	}

	//nolint:gosec // size is bounds checked above.
	return offset, uint32(len(b)), nil
}

// Offset returns the number of uncompressed bytes written.
func (w *Writer) Offset() uint64 {
	return w.offset
}

func (w *Writer) encode(word *Word) ([]byte, error) {
	sameType := len(w.sametypesequence) > 0
	if sameType && len(word.Data) != len(w.sametypesequence) {
		return nil, fmt.Errorf("%w: got %d data items for sametypesequence of %d",
			ErrInvalidData, len(word.Data), len(w.sametypesequence))
	}

	var b []byte
	for i, d := range word.Data {
		if sameType && d.Type != w.sametypesequence[i] {
			return nil, fmt.Errorf("%w: type %q does not match sametypesequence %q",
				ErrInvalidData, d.Type, w.sametypesequence[i])
		}
		if !d.Type.Valid() {
			return nil, fmt.Errorf("%w: %v", errInvalidType, d.Type)
		}

		if !sameType {
			b = append(b, byte(d.Type))
		}

		switch {
		case sameType && i == len(word.Data)-1:
			// The last item's size is given by the index.
			b = append(b, d.Data...)
		case d.Type.IsString():
			if bytes.IndexByte(d.Data, 0) >= 0 {
				return nil, fmt.Errorf("%w: string data contains a null byte", ErrInvalidData)
			}
			b = append(b, d.Data...)
			b = append(b, 0)
		default:
			if uint64(len(d.Data)) > math.MaxUint32 {
				return nil, fmt.Errorf("%w: file data too long: %d", ErrInvalidData, len(d.Data))
			}
			//nolint:gosec // size is bounds checked above.
			b = binary.BigEndian.AppendUint32(b, uint32(len(d.Data)))
			b = append(b, d.Data...)
		}
	}
	return b, nil
}

// Close flushes buffered data and finishes the dictzip stream if one is used.
// It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flushing word data: %w", err)
	}
	if w.z != nil {
		if err := w.z.Close(); err != nil {
			return fmt.Errorf("closing dictzip writer: %w", err)
		}
	}
	return nil
}
