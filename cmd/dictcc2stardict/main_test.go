// Copyright 2025 Ian Lewis
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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const testInput = "hello\thola\n# comment\nbye\tadios\nonlyoneword\n"

func TestRun_flagErrors(t *testing.T) {
	t.Parallel()

	input := writeFile(t, "dictcc.txt", testInput)

	tests := []struct {
		name string
		args []string
	}{
		{
			name: "no flags",
		},
		{
			name: "missing source lang",
			args: []string{"-f", input},
		},
		{
			name: "missing file",
			args: []string{"-s", "en"},
		},
		{
			name: "unknown flag",
			args: []string{"-f", input, "-s", "en", "--bogus"},
		},
		{
			name: "invalid source lang",
			args: []string{"-f", input, "-s", "123"},
		},
		{
			name: "invalid target lang",
			args: []string{"-f", input, "-s", "en", "-t", "not a language"},
		},
		{
			name: "invalid log level",
			args: []string{"-f", input, "-s", "en", "--log-level", "loud"},
		},
		{
			name: "unexpected argument",
			args: []string{"-f", input, "-s", "en", "extra"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			code := run(append([]string{"dictcc2stardict"}, test.args...), &stdout, &stderr)
			if code != ExitCodeFlagParseError {
				t.Errorf("run: want exit code %d, got %d", ExitCodeFlagParseError, code)
			}
			if !strings.Contains(stderr.String(), "USAGE:") {
				t.Errorf("stderr does not contain usage: %q", stderr.String())
			}
		})
	}
}

func TestRun_help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if code := run([]string{"dictcc2stardict", "-h"}, &stdout, &stderr); code != ExitCodeSuccess {
		t.Fatalf("run: want exit code %d, got %d: %s", ExitCodeSuccess, code, stderr.String())
	}
	for _, want := range []string{"USAGE:", "--source-lang", "--file"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("help does not contain %q: %q", want, stdout.String())
		}
	}
}

func TestRun_version(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if code := run([]string{"dictcc2stardict", "--version"}, &stdout, &stderr); code != ExitCodeSuccess {
		t.Fatalf("run: want exit code %d, got %d: %s", ExitCodeSuccess, code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "dictcc2stardict ") {
		t.Errorf("unexpected version output: %q", stdout.String())
	}
}

func TestRun_convert(t *testing.T) {
	t.Parallel()

	input := writeFile(t, "dictcc.txt", testInput)
	cfg := writeFile(t, "config.yaml", "author: Jane Doe\n")
	outDir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"dictcc2stardict",
		"-f", input,
		"-s", "en",
		"-t", "es",
		"-o", outDir,
		"-c", cfg,
		"--no-dictzip",
		"--verify",
		"--log-level", "debug",
	}, &stdout, &stderr)
	if code != ExitCodeSuccess {
		t.Fatalf("run: want exit code %d, got %d: %s", ExitCodeSuccess, code, stderr.String())
	}

	base := filepath.Join(outDir, "dictcc_en-es", "dictcc_en-es")
	for _, ext := range []string{".ifo", ".idx", ".dict"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("Stat: %v", err)
		}
	}

	ifo, err := os.ReadFile(base + ".ifo")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"bookname=dict.cc EN-ES\n", "wordcount=2\n", "author=Jane Doe\n"} {
		if !strings.Contains(string(ifo), want) {
			t.Errorf(".ifo does not contain %q: %q", want, string(ifo))
		}
	}

	if !strings.Contains(stdout.String(), "2 entries, 2 words, 0 synonyms, 1 lines skipped") {
		t.Errorf("unexpected summary: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "verified dictionary") {
		t.Errorf("stderr does not contain log output: %q", stderr.String())
	}
}

func TestRun_nulByte(t *testing.T) {
	t.Parallel()

	input := writeFile(t, "dictcc.txt", "hello\thola\nba\x00d\tmalo\nbye\tadios\n")
	cfg := writeFile(t, "config.yaml", "")
	outDir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"dictcc2stardict",
		"-f", input,
		"-s", "en",
		"-o", outDir,
		"-c", cfg,
		"--verify",
	}, &stdout, &stderr)
	if code != ExitCodeSuccess {
		t.Fatalf("run: want exit code %d, got %d: %s", ExitCodeSuccess, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "2 entries, 2 words, 0 synonyms, 1 lines skipped") {
		t.Errorf("unexpected summary: %q", stdout.String())
	}
}

func TestRun_missingInput(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "config.yaml", "")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"dictcc2stardict",
		"-f", filepath.Join(t.TempDir(), "missing.txt"),
		"-s", "en",
		"-o", t.TempDir(),
		"-c", cfg,
	}, &stdout, &stderr)
	if code != ExitCodeUnknownError {
		t.Errorf("run: want exit code %d, got %d", ExitCodeUnknownError, code)
	}
	if !strings.Contains(stderr.String(), "input not found") {
		t.Errorf("stderr does not contain error: %q", stderr.String())
	}
}

func TestRun_install(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("STARDICT_DATA_DIR", dataDir)

	input := writeFile(t, "dictcc.txt", "# EN-ES vocabulary database\nhello\thola\n")
	cfg := writeFile(t, "config.yaml", "")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"dictcc2stardict",
		"-f", input,
		"-s", "es",
		"-c", cfg,
		"--install",
	}, &stdout, &stderr)
	if code != ExitCodeSuccess {
		t.Fatalf("run: want exit code %d, got %d: %s", ExitCodeSuccess, code, stderr.String())
	}

	ifoPath := filepath.Join(dataDir, "dic", "dictcc_es-en", "dictcc_es-en.ifo")
	if _, err := os.Stat(ifoPath); err != nil {
		t.Errorf("Stat: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "dic", "dictcc_es-en", "dictcc_es-en.dict.dz")); err != nil {
		t.Errorf("Stat: %v", err)
	}
}

func TestRun_installDuplicate(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("STARDICT_DATA_DIR", dataDir)

	otherDir := filepath.Join(dataDir, "dic", "other")
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatal(err)
	}
	otherIfo := "StarDict's dict ifo file\nversion=3.0.0\nbookname=dict.cc ES-EN\nwordcount=0\nidxfilesize=0\n"
	if err := os.WriteFile(filepath.Join(otherDir, "other.ifo"), []byte(otherIfo), 0o600); err != nil {
		t.Fatal(err)
	}

	input := writeFile(t, "dictcc.txt", "# EN-ES vocabulary database\nhello\thola\n")
	cfg := writeFile(t, "config.yaml", "")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"dictcc2stardict",
		"-f", input,
		"-s", "es",
		"-c", cfg,
		"--install",
	}, &stdout, &stderr)
	if code != ExitCodeSuccess {
		t.Fatalf("run: want exit code %d, got %d: %s", ExitCodeSuccess, code, stderr.String())
	}

	for _, want := range []string{"another installed dictionary has the same name", "other.ifo"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr %q does not contain %q", stderr.String(), want)
		}
	}
}
