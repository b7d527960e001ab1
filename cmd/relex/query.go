package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/query"
	"github.com/revelaction/relex/render"
	"github.com/revelaction/relex/storage"
)

func queryCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "interactive search: [SET] LEMMA... prints the relations of the sentences containing the lemmas",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: query.DefaultLimit, Usage: "sentences printed per query"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.Defaultformat, Usage: "all, svo or sv"},
			&cli.BoolFlag{Name: "no-color", Usage: "do not color the relations"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not print doc and sentence ids"},
		},
		Action: func(c *cli.Context) error {
			repo, err := NewDocRepository(env.pool, env.cfg.DocPath)
			if err != nil {
				return err
			}

			// a directory is read once, before the prompt
			if p, ok := repo.(storage.Preloader); ok {
				if err := preload(p); err != nil {
					return err
				}
			}

			lib, err := NewPatternRepository(env.cfg.PatternPath).ReadAll()
			if err != nil {
				if !os.IsNotExist(err) {
					return err
				}
				lib = match.Library{}
			}

			r := render.NewRenderer()
			r.Out = env.ui.Out
			r.HasColor = !c.Bool("no-color")
			r.HasPrefix = !c.Bool("no-prefix")
			r.Format = c.String("format")

			h := query.NewHandler(repo, lib, r, env.extractor(), env.cfg.SVO())
			h.Limit = c.Int("limit")
			return h.Run()
		},
	}
}

func preload(p storage.Preloader) error {
	bar := startProgress(true, 1) // total is set by the first callback
	defer bar.Stop()

	var currentName string
	bar.Describe(func() string {
		return currentName
	})

	return p.Preload(func(current, total int, name string) {
		bar.SetTotal(total)
		currentName = name
		bar.Incr()
	})
}
