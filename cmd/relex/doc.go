package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/render"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
)

func docCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "list the documents, or print the sentences of one",
		ArgsUsage: "[DOC_ID]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "list only docs with a label containing `TEXT`"},
			&cli.IntFlag{Name: "start", Aliases: []string{"s"}, Usage: "first sentence to print"},
			&cli.IntFlag{Name: "count", Aliases: []string{"c"}, Value: -1, Usage: "number of sentences to print, all if negative"},
		},
		Action: func(c *cli.Context) error {
			repo, err := NewDocRepository(env.pool, env.cfg.DocPath)
			if err != nil {
				return err
			}

			if c.NArg() == 0 {
				return listDocs(repo, c.String("label"), env.ui)
			}

			id, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return fmt.Errorf("invalid doc id %q", c.Args().First())
			}

			doc, err := repo.Read(id)
			if err != nil {
				return err
			}

			renderDoc(doc, c.Int("start"), c.Int("count"), env.ui)
			return nil
		},
	}
}

func renderDoc(doc sent.Doc, start, count int, ui UI) {
	if start < 0 {
		start = 0
	}
	if start >= len(doc.Sentences) {
		return
	}

	sentences := doc.Sentences[start:]
	if count >= 0 && count < len(sentences) {
		sentences = sentences[:count]
	}

	r := render.NewRenderer()
	r.Out = ui.Out
	for i, sentence := range sentences {
		prefix := fmt.Sprintf("✍  %d ", start+i)
		r.Sentence(sentence.Tokens, prefix)
	}
}

func listDocs(repo storage.DocReader, label string, ui UI) error {
	docs, err := repo.List(label)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(ui.Out, "📖 %d %s\n", doc.Id, doc.Title)
	}
	return nil
}
