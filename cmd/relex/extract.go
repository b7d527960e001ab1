package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/conll"
	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/render"
	"github.com/revelaction/relex/search"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage/filesystem"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func extractCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract the relations of a json or conllu document, read from FILE or stdin",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatText, Usage: "text or json"},
			&cli.StringSliceFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "keep relations matching `PATTERN` (\"subject predicate object\"), repeatable"},
			&cli.BoolFlag{Name: "color", Usage: "color the relations"},
		},
		Action: func(c *cli.Context) error {
			doc, err := readInput(c.Args().First(), env.ui.In)
			if err != nil {
				return err
			}

			ps, err := patternSet(c.StringSlice("pattern"))
			if err != nil {
				return err
			}

			results := extractDoc(env, doc, ps)

			switch c.String("format") {
			case formatJSON:
				return render.NewJSONRenderer(env.ui.Out).Render(results)
			case formatText:
				r := render.NewRenderer()
				r.Out = env.ui.Out
				r.HasColor = c.Bool("color")
				return r.Render(results)
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
		},
	}
}

// readInput reads a document from path, or from in if path is empty or "-".
// Input from stdin is JSON if it starts with "{", CoNLL otherwise.
func readInput(path string, in io.Reader) (sent.Doc, error) {
	if path != "" && path != "-" {
		return filesystem.ReadDoc(path)
	}

	buf, err := io.ReadAll(in)
	if err != nil {
		return sent.Doc{}, err
	}

	if bytes.HasPrefix(bytes.TrimSpace(buf), []byte("{")) {
		var doc sent.Doc
		if err := json.Unmarshal(buf, &doc); err != nil {
			return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
		}
		return doc, nil
	}

	sentences, err := conll.Read(bytes.NewReader(buf))
	if err != nil {
		return sent.Doc{}, err
	}
	return sent.Doc{Title: "stdin", Sentences: sentences}, nil
}

func patternSet(exprs []string) (*match.PatternSet, error) {
	if len(exprs) == 0 {
		return nil, nil
	}

	ps := &match.PatternSet{Name: "cli"}
	for _, expr := range exprs {
		p, err := match.Parse(expr)
		if err != nil {
			return nil, err
		}
		ps.Patterns = append(ps.Patterns, p)
	}

	return ps, nil
}

// extractDoc runs the extraction over every sentence of doc. With a pattern
// set, sentences left without relations are dropped.
func extractDoc(env *Env, doc sent.Doc, ps *match.PatternSet) []*search.SentenceResult {
	s := search.New(nil, env.extractor(), env.cfg.SVO()).WithLogger(env.log)

	results := []*search.SentenceResult{}
	for i, sentence := range doc.Sentences {
		sentence.Id = i
		sentence.DocId = doc.Id

		res := s.Extract(sentence)
		if ps != nil {
			res.Result = ps.Filter(res.Result)
			if !res.HasRelations() {
				continue
			}
		}
		results = append(results, res)
	}

	return results
}
