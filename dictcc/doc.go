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

// Package dictcc reads dict.cc vocabulary exports.
//
// A dict.cc export is a UTF-8 text file with one translation pair per line.
// Fields are separated by tabs:
//
//	Haus {n}	house	noun	[archi.]
//
// The first field is the headword, the second is the translation and the
// optional third field is the word class. Lines starting with '#' are
// comments. The first comment line names the language pair of the file:
//
//	# DE-EN vocabulary database	compiled by dict.cc
//
// [Scanner] reads entries from an export and [NewGlossary] turns them into a
// [stardict.Glossary] that can be written as a StarDict dictionary.
package dictcc
