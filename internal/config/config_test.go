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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string

		expected        *Config
		expectedErr     error
		expectedErrText string
	}{
		{
			name: "all values",
			content: `bookname: My dict.cc
author: Jane Doe
email: jane@example.com
website: https://www.dict.cc/
description: Personal copy
output_dir: /tmp/dicts
dictzip: false
`,
			expected: &Config{
				Bookname:    "My dict.cc",
				Author:      "Jane Doe",
				Email:       "jane@example.com",
				Website:     "https://www.dict.cc/",
				Description: "Personal copy",
				OutputDir:   "/tmp/dicts",
				DictZip:     false,
			},
		},
		{
			name:    "defaults",
			content: "author: Jane Doe\n",
			expected: &Config{
				Author:    "Jane Doe",
				OutputDir: ".",
				DictZip:   true,
			},
		},
		{
			name:            "invalid email",
			content:         "email: not-an-email\n",
			expectedErr:     ErrInvalidConfig,
			expectedErrText: "email",
		},
		{
			name:            "invalid website",
			content:         "website: not a url\n",
			expectedErr:     ErrInvalidConfig,
			expectedErrText: "website",
		},
		{
			name:            "empty output dir",
			content:         "output_dir: \"\"\n",
			expectedErr:     ErrInvalidConfig,
			expectedErrText: "output_dir",
		},
		{
			name:            "multi-line description",
			content:         "description: \"first\\nsecond\"\n",
			expectedErr:     ErrInvalidConfig,
			expectedErrText: "description must be a single line",
		},
		{
			name:        "invalid yaml",
			content:     "author: [[[\n",
			expectedErr: ErrInvalidConfig,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Load(writeConfig(t, test.content))
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("Load: want: %v, got: %v", test.expectedErr, err)
			}
			if err != nil && !strings.Contains(err.Error(), test.expectedErrText) {
				t.Errorf("Load: error %q does not contain %q", err, test.expectedErrText)
			}
			if diff := cmp.Diff(test.expected, cfg); diff != "" {
				t.Errorf("Load (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load: want: %v, got: %v", ErrInvalidConfig, err)
	}
}

func TestLoad_env(t *testing.T) {
	t.Setenv("DICTCC2STARDICT_AUTHOR", "From Env")
	t.Setenv("DICTCC2STARDICT_DICTZIP", "false")

	cfg, err := Load(writeConfig(t, "author: From File\nbookname: Book\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expected := &Config{
		Bookname:  "Book",
		Author:    "From Env",
		OutputDir: ".",
		DictZip:   false,
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}
}
