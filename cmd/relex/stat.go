package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/render"
	"github.com/revelaction/relex/search"
	"github.com/revelaction/relex/stat"
)

func statCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "extract the relations of the repository and print statistics",
		ArgsUsage: "[LEMMA...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "doc", Aliases: []string{"d"}, Usage: "only the doc with `ID`"},
			&cli.IntFlag{Name: "top", Aliases: []string{"t"}, Value: 10, Usage: "print the `N` most frequent predicates"},
		},
		Action: func(c *cli.Context) error {
			repo, err := NewDocRepository(env.pool, env.cfg.DocPath)
			if err != nil {
				return err
			}

			s := search.New(repo, env.extractor(), env.cfg.SVO()).WithLogger(env.log)
			if c.IsSet("doc") {
				s.WithDocID(c.Int("doc"))
			}

			var lemmas []string
			for _, l := range c.Args().Slice() {
				lemmas = append(lemmas, strings.ToLower(l))
			}

			hdl := stat.NewHandler()
			err = s.All(lemmas, func(res *search.SentenceResult) error {
				hdl.Aggregate(res)
				return nil
			})
			if err != nil {
				return err
			}

			r := render.NewRenderer()
			r.Out = env.ui.Out
			r.Stats(hdl.Get(), hdl.TopPredicates(c.Int("top")))
			return nil
		},
	}
}
