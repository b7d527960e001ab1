package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/search"
	sent "github.com/revelaction/relex/sentence"
)

func indexCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "extract the relations of the sqlite repository and store them",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "doc", Aliases: []string{"d"}, Usage: "index only the doc with `ID`"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "no progress bar"},
		},
		Action: func(c *cli.Context) error {
			var only *int
			if c.IsSet("doc") {
				id := c.Int("doc")
				only = &id
			}
			return index(env, only, !c.Bool("quiet"))
		},
	}
}

// index replaces the stored relations of every sentence of the selected docs.
func index(env *Env, only *int, progress bool) error {
	relRepo, err := NewRelationRepository(env.pool, env.cfg.DocPath)
	if err != nil {
		return err
	}

	docRepo, err := NewDocRepository(env.pool, env.cfg.DocPath)
	if err != nil {
		return err
	}

	docs, err := docRepo.List("")
	if err != nil {
		return err
	}

	if only != nil {
		doc, err := docRepo.Read(*only)
		if err != nil {
			return err
		}
		docs = []sent.Doc{doc}
	}

	bar := startProgress(progress, len(docs))
	defer bar.Stop()

	ex := env.extractor()
	numSentences, numRelations := 0, 0
	for _, doc := range docs {
		s := search.New(docRepo, ex, env.cfg.SVO()).WithDocID(doc.Id).WithLogger(env.log)
		err := s.All(nil, func(res *search.SentenceResult) error {
			rels := search.Relations(res)
			numSentences++
			numRelations += len(rels)
			return relRepo.WriteRelations(res.Sentence.DocId, res.Sentence.Id, rels)
		})
		if err != nil {
			return fmt.Errorf("failed to index doc %d: %w", doc.Id, err)
		}

		bar.Incr()
	}
	bar.Stop()

	fmt.Fprintf(env.ui.Out, "Indexed %d sentences of %d docs: %d relations\n", numSentences, len(docs), numRelations)
	return nil
}
