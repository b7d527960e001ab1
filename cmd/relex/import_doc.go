package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/storage/filesystem"
	"github.com/revelaction/relex/storage/sqlite/zombiezen"
)

func importCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "copy a directory of json/conllu documents into a sqlite file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "documents `DIR`"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "sqlite `FILE`, created if missing"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "no progress bar"},
		},
		Action: func(c *cli.Context) error {
			return importDocs(env, c.String("from"), c.String("to"), !c.Bool("quiet"))
		},
	}
}

func importDocs(env *Env, from, to string, progress bool) error {
	src, err := filesystem.NewDocStore(from)
	if err != nil {
		return err
	}

	pool, err := env.pool.Open(to)
	if err != nil {
		return err
	}

	dst := zombiezen.NewDocStore(pool)

	fmt.Fprintf(env.ui.Out, "Reading docs from %s...\n", from)
	docs, err := src.List("")
	if err != nil {
		return err
	}

	bar := startProgress(progress, len(docs))
	defer bar.Stop()

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			return fmt.Errorf("failed to read doc %s: %w", docMeta.Title, err)
		}

		if err := dst.Write(doc); err != nil {
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}
		count++
		bar.Incr()
	}
	bar.Stop()

	fmt.Fprintf(env.ui.Out, "Successfully imported %d docs from %s to %s\n", count, from, to)
	return nil
}
