package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/config"
	"github.com/revelaction/relex/logger"
	"github.com/revelaction/relex/svo"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Env is shared by the commands: configuration, output and the lazily
// opened sqlite pool.
type Env struct {
	ui   UI
	cfg  config.Config
	pool *Pool
	log  zerolog.Logger
}

func (e *Env) extractor() *svo.Extractor {
	return svo.New(svo.WithLogger(e.log))
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := run(os.Args, ui); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "relex: %v\n", err)
}

func run(args []string, ui UI) error {
	env := &Env{ui: ui, pool: &Pool{}, log: zerolog.Nop()}
	defer env.pool.Close()

	return newApp(env).Run(args)
}

func newApp(env *Env) *cli.App {
	return &cli.App{
		Name:                 "relex",
		Usage:                "extract subject-verb-object relations from dependency parsed documents",
		Writer:               env.ui.Out,
		ErrWriter:            env.ui.Err,
		EnableBashCompletion: true,
		HideVersion:          true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "documents `PATH`: a directory of json/conllu files or a sqlite file (overrides RELEX_DOC_PATH)",
			},
			&cli.StringFlag{
				Name:  "patterns",
				Usage: "pattern sets `DIR` (overrides RELEX_PATTERN_PATH)",
			},
			&cli.BoolFlag{
				Name:  "adj-as-object",
				Usage: "treat adjectives right of a verb as objects (overrides RELEX_ADJ_AS_OBJECT)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "DEBUG, INFO, WARN or ERROR (overrides RELEX_LOG_LEVEL)",
			},
		},
		Before: func(c *cli.Context) error {
			return env.setup(c)
		},
		Commands: []*cli.Command{
			extractCommand(env),
			sentenceCommand(env),
			docCommand(env),
			importCommand(env),
			indexCommand(env),
			relationsCommand(env),
			statCommand(env),
			patternsCommand(env),
			queryCommand(env),
			serveCommand(env),
			versionCommand(env),
			bashCommand(env),
		},
	}
}

// setup loads the configuration. Global flags win over it.
func (e *Env) setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if c.IsSet("repo") {
		cfg.DocPath = c.String("repo")
	}
	if c.IsSet("patterns") {
		cfg.PatternPath = c.String("patterns")
	}
	if c.IsSet("adj-as-object") {
		cfg.AdjectiveAsObject = c.Bool("adj-as-object")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	logger.SetupLogging()
	e.cfg = cfg
	e.log = logger.New(e.ui.Err, "cli", cfg.LogLevel)
	return nil
}
