// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ifo implements reading and writing .ifo files.
//
// The .ifo file is a plain text file. The first line is a magic string
// followed by key=value lines. The first key must be "version".
package ifo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Magic is the magic string at the start of every .ifo file.
const Magic = "StarDict's dict ifo file"

var keyRegex = regexp.MustCompile("^[a-zA-Z0-9-_]+$")

var (
	// ErrInvalidKey indicates a key that contains invalid characters.
	ErrInvalidKey = errors.New("invalid key")

	// ErrMissingVersion indicates the version key is missing or is not the
	// first key.
	ErrMissingVersion = errors.New("missing version")

	// ErrInvalidValue indicates a value that cannot be written, e.g. one
	// containing a newline.
	ErrInvalidValue = errors.New("invalid value")
)

// Ifo is the dictionary metadata held in an .ifo file.
type Ifo struct {
	magic string

	// keys holds the keys in file order.
	keys     []string
	metadata map[string]string
}

// New reads an .ifo file from r.
func New(r io.Reader) (*Ifo, error) {
	i := &Ifo{
		metadata: map[string]string{},
	}

	s := bufio.NewScanner(r)
	if s.Scan() {
		i.magic = strings.TrimRight(s.Text(), "\r")
	}

	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, _ := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !keyRegex.MatchString(key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
		if len(i.keys) == 0 && key != "version" {
			return nil, ErrMissingVersion
		}

		i.set(key, value)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading .ifo: %w", err)
	}

	if len(i.keys) == 0 {
		return nil, ErrMissingVersion
	}

	return i, nil
}

// NewWithVersion returns a new empty Ifo with the StarDict magic and the
// given version.
func NewWithVersion(version string) *Ifo {
	i := &Ifo{
		magic:    Magic,
		metadata: map[string]string{},
	}
	i.set("version", version)
	return i
}

// Magic returns the magic string from the first line of the file.
func (i *Ifo) Magic() string {
	return i.magic
}

// Value returns the value for the given key or an empty string.
func (i *Ifo) Value(key string) string {
	return i.metadata[key]
}

// Set sets the value for key. Empty values are not written.
func (i *Ifo) Set(key, value string) error {
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: %s contains a newline", ErrInvalidValue, key)
	}
	i.set(key, value)
	return nil
}

func (i *Ifo) set(key, value string) {
	if _, ok := i.metadata[key]; !ok {
		i.keys = append(i.keys, key)
	}
	i.metadata[key] = value
}

// WriteTo writes the .ifo file to w.
func (i *Ifo) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	var n int64
	write := func(s string) error {
		m, err := bw.WriteString(s)
		n += int64(m)
		//nolint:wrapcheck // wrapped below
		return err
	}

	if err := write(i.magic + "\n"); err != nil {
		return n, fmt.Errorf("writing .ifo: %w", err)
	}
	for _, k := range i.keys {
		v := i.metadata[k]
		if v == "" {
			continue
		}
		if err := write(k + "=" + v + "\n"); err != nil {
			return n, fmt.Errorf("writing .ifo: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("writing .ifo: %w", err)
	}
	return n, nil
}
