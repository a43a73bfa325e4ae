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

// Package companion opens the files that sit next to a dictionary's .ifo file.
package companion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Names returns the candidate file names for the file with extension ext next
// to ifoPath, in the order they are tried. Suffixes are compression suffixes
// such as ".gz" and the empty string for an uncompressed file. Upper case
// variants of the extension and suffixes follow the lower case ones.
func Names(ifoPath, ext string, suffixes ...string) []string {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))

	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, e := range []string{strings.ToLower(ext), strings.ToUpper(ext)} {
		for _, s := range suffixes {
			add(base + e + strings.ToLower(s))
			add(base + e + strings.ToUpper(s))
		}
	}
	return names
}

// Open opens the first file returned by Names that exists.
func Open(ifoPath, ext string, suffixes ...string) (*os.File, error) {
	var err error
	for _, name := range Names(ifoPath, ext, suffixes...) {
		var f *os.File
		f, err = os.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			break
		}
	}
	if err == nil {
		err = os.ErrNotExist
	}
	return nil, fmt.Errorf("opening %s file: %w", ext, err)
}

// IsCompressed reports whether the file name has a gzip or dictzip suffix.
func IsCompressed(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".dz":
		return true
	}
	return false
}
