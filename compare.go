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

package stardict

import "strings"

// Compare compares two words in the order StarDict expects for .idx and .syn
// files. Words are compared byte-wise with ASCII letters folded to lower case.
// Words that are equal after folding are ordered by a plain byte comparison.
func Compare(a, b string) int {
	if c := asciiFoldCompare(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func asciiFoldCompare(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		ca, cb := asciiLower(a[i]), asciiLower(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func asciiLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
