package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/render"
	"github.com/revelaction/relex/search"
)

func sentenceCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print the tokens of a sentence and its relations",
		ArgsUsage: "DOC_ID SENTENCE_ID",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("sentence needs a doc id and a sentence id")
			}

			docId, err := strconv.Atoi(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid doc id %q", c.Args().Get(0))
			}
			sentId, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid sentence id %q", c.Args().Get(1))
			}

			repo, err := NewDocRepository(env.pool, env.cfg.DocPath)
			if err != nil {
				return err
			}

			doc, err := repo.Read(docId)
			if err != nil {
				return err
			}

			if sentId < 0 || sentId >= len(doc.Sentences) {
				return fmt.Errorf("sentence index %d out of bounds (0-%d)", sentId, len(doc.Sentences)-1)
			}

			s := doc.Sentences[sentId]
			r := render.NewRenderer()
			r.Out = env.ui.Out
			r.Sentence(s.Tokens, fmt.Sprintf("✍  %d ", sentId))
			fmt.Fprintln(env.ui.Out)
			r.Tokens(s.Tokens)
			fmt.Fprintln(env.ui.Out)

			res := search.New(repo, env.extractor(), env.cfg.SVO()).WithLogger(env.log).Extract(s)
			if res.Invalid != nil {
				fmt.Fprintf(env.ui.Out, "invalid tree: %v\n", res.Invalid)
			}
			r.Relations(search.Relations(res))
			return nil
		},
	}
}
