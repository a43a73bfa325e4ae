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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"sigs.k8s.io/release-utils/version"

	stardict "github.com/ianlewis/dictcc-stardict"
	"github.com/ianlewis/dictcc-stardict/internal/config"
	"github.com/ianlewis/dictcc-stardict/internal/convert"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrDictcc2Stardict is a parent error for all command errors.
var ErrDictcc2Stardict = errors.New("dictcc2stardict")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrDictcc2Stardict)

var copyrightNames = []string{
	"2021 Google LLC",
	"2024 Ian Lewis",
}

//nolint:gochecknoinits // init needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `dictcc2stardict --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

func newDictcc2StardictApp(name string) *cli.App {
	return &cli.App{
		Name:      name,
		Usage:     "Convert a dict.cc export to a StarDict dictionary.",
		UsageText: name + " -f FILE -s LANG [OPTION]...",
		Description: strings.Join([]string{
			"Converts a dict.cc vocabulary database export into a StarDict",
			"dictionary. The dictionary is written to a dictcc_SRC-TGT directory.",
			"http://github.com/ianlewis/dictcc-stardict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Usage:   "read the dict.cc export from `FILE`",
				Aliases: []string{"f"},
			},
			&cli.StringFlag{
				Name:    "source-lang",
				Usage:   "use `LANG` as the headword language",
				Aliases: []string{"s"},
			},
			&cli.StringFlag{
				Name:    "target-lang",
				Usage:   "use `LANG` as the translation language if the export has no header",
				Aliases: []string{"t"},
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Usage:   "write the dictionary under `DIR`",
				Aliases: []string{"o"},
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:               "install",
				Usage:              "write the dictionary to the user StarDict directory",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "no-dictzip",
				Usage:              "do not compress the .dict file",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "verify",
				Usage:              "read the written dictionary back and check it",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (trace, debug, info, warn, error)",
				Value: zerolog.InfoLevel.String(),
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(c *cli.Context, err error, _ bool) error {
			printUsage(c)
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				return cli.ShowAppHelp(c) //nolint:wrapcheck // help output only
			}
			if c.Bool("version") {
				return printVersion(c)
			}

			opts, err := parseFlags(c)
			if err != nil {
				printUsage(c)
				return err
			}
			return convertAction(c, opts)
		},
	}
}

func printUsage(c *cli.Context) {
	cli.HelpPrinter(c.App.ErrWriter, cli.AppHelpTemplate, c.App)
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, "%s %s\nCopyright (c) %s\n\n%s\n",
		c.App.Name,
		versionInfo.GitVersion,
		strings.Join(copyrightNames, ", "),
		versionInfo.String(),
	)
	if err != nil {
		return fmt.Errorf("printing version: %w", err)
	}
	return nil
}

type options struct {
	file       string
	sourceLang string
	targetLang string
	outputDir  string
	install    bool
	noDictZip  bool
	verify     bool
	configFile string
	logLevel   zerolog.Level
}

func parseFlags(c *cli.Context) (*options, error) {
	if c.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments: %s", ErrFlagParse, strings.Join(c.Args().Slice(), " "))
	}

	opts := &options{
		file:       c.String("file"),
		sourceLang: c.String("source-lang"),
		targetLang: c.String("target-lang"),
		install:    c.Bool("install"),
		noDictZip:  c.Bool("no-dictzip"),
		verify:     c.Bool("verify"),
		configFile: c.String("config"),
	}
	if c.IsSet("output-dir") {
		opts.outputDir = c.String("output-dir")
	}

	if opts.file == "" {
		return nil, fmt.Errorf("%w: missing required flag: --file", ErrFlagParse)
	}
	if opts.sourceLang == "" {
		return nil, fmt.Errorf("%w: missing required flag: --source-lang", ErrFlagParse)
	}

	var err error
	if opts.sourceLang, err = langCode(opts.sourceLang); err != nil {
		return nil, fmt.Errorf("%w: --source-lang: %w", ErrFlagParse, err)
	}
	if opts.targetLang != "" {
		if opts.targetLang, err = langCode(opts.targetLang); err != nil {
			return nil, fmt.Errorf("%w: --target-lang: %w", ErrFlagParse, err)
		}
	}

	opts.logLevel, err = zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("%w: --log-level: %w", ErrFlagParse, err)
	}

	return opts, nil
}

// langCode validates a language code and returns it in lower case.
func langCode(s string) (string, error) {
	if _, err := language.ParseBase(s); err != nil {
		return "", fmt.Errorf("invalid language %q: %w", s, err)
	}
	return strings.ToLower(s), nil
}

func newLogger(c *cli.Context, level zerolog.Level) *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:     c.App.ErrWriter,
		NoColor: color.NoColor,
	}).Level(level).With().Timestamp().Logger()
	return &logger
}

func convertAction(c *cli.Context, opts *options) error {
	logger := newLogger(c, opts.logLevel)

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	outputDir := cfg.OutputDir
	switch {
	case opts.install:
		outputDir, err = installDir()
		if err != nil {
			return err
		}
	case opts.outputDir != "":
		outputDir = opts.outputDir
	}

	emitter := &convert.StarDictEmitter{
		OutputDir: outputDir,
		DictZip:   cfg.DictZip && !opts.noDictZip,
		Info: stardict.Info{
			Bookname:    cfg.Bookname,
			Author:      cfg.Author,
			Email:       cfg.Email,
			Website:     cfg.Website,
			Description: cfg.Description,
		},
		Logger: logger,
	}

	res, err := convert.Convert(opts.file, emitter, &convert.Options{
		SourceLang: opts.sourceLang,
		TargetLang: opts.targetLang,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("converting %q: %w", opts.file, err)
	}

	wr := emitter.Result()
	if opts.verify {
		if err := emitter.Verify(); err != nil {
			return err //nolint:wrapcheck // already wrapped by convert.
		}
		logger.Info().Str("path", emitter.IfoPath()).Msg("verified dictionary")
	}

	if opts.install {
		warnDuplicates(logger, outputDir, emitter.IfoPath())
	}

	return printSummary(c, res, wr)
}

// warnDuplicates warns about dictionaries under dir that have the same
// bookname as the one at ifoPath.
func warnDuplicates(logger *zerolog.Logger, dir, ifoPath string) {
	dicts, errs := stardict.OpenAll(dir, nil)
	for _, err := range errs {
		logger.Debug().Err(err).Msg("skipping unreadable dictionary")
	}
	defer func() {
		for _, d := range dicts {
			_ = d.Close()
		}
	}()

	var bookname string
	for _, d := range dicts {
		if filepath.Clean(d.Path()) == filepath.Clean(ifoPath) {
			bookname = d.Bookname()
		}
	}
	for _, d := range dicts {
		if d.Bookname() == bookname && filepath.Clean(d.Path()) != filepath.Clean(ifoPath) {
			logger.Warn().
				Str("path", d.Path()).
				Str("bookname", bookname).
				Msg("another installed dictionary has the same name")
		}
	}
}

func printSummary(c *cli.Context, res *convert.Result, wr *stardict.WriteResult) error {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()

	tbl := table.New("File", "Size").
		WithWriter(c.App.Writer).
		WithHeaderFormatter(headerFmt)
	for _, f := range wr.Files {
		fi, err := os.Stat(f)
		if err != nil {
			return fmt.Errorf("reading output: %w", err)
		}
		tbl.AddRow(f, fi.Size())
	}
	tbl.Print()

	_, err := fmt.Fprintf(c.App.Writer, "\n%d entries, %d words, %d synonyms, %d lines skipped\n",
		res.Entries, wr.WordCount, wr.SynWordCount, res.Skipped)
	if err != nil {
		return fmt.Errorf("printing summary: %w", err)
	}
	return nil
}
