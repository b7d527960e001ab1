package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/render"
	"github.com/revelaction/relex/storage"
)

var errLimit = errors.New("limit reached")

func relationsCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:      "relations",
		Usage:     "print the stored relations matching any of the patterns",
		ArgsUsage: "[PATTERN...]",
		Description: `A pattern has up to three fields, subject predicate and object:

   _        any value
   word     the value is word or contains it
   a|b      any of the alternatives
   !word    the value does not match

   relex relations "_ kill|hurt" "he !love _"`,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "doc", Aliases: []string{"d"}, Usage: "only relations of the doc with `ID`"},
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "svo or sv"},
			&cli.StringFlag{Name: "set", Aliases: []string{"s"}, Usage: "match the pattern set `NAME`"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "print at most `N` relations, all if 0"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not print doc and sentence ids"},
			&cli.BoolFlag{Name: "color", Usage: "color the relations"},
		},
		Action: func(c *cli.Context) error {
			ps, err := patternSet(c.Args().Slice())
			if err != nil {
				return err
			}

			if c.IsSet("set") {
				set, err := NewPatternRepository(env.cfg.PatternPath).Read(c.String("set"))
				if err != nil {
					return err
				}
				if ps != nil {
					set.Patterns = append(set.Patterns, ps.Patterns...)
				}
				ps = &set
			}

			kind := c.String("kind")
			if kind != "" && kind != storage.KindSVO && kind != storage.KindSV {
				return fmt.Errorf("unknown kind %q", kind)
			}

			q := storage.RelationQuery{Kind: kind}
			if c.IsSet("doc") {
				id := c.Int("doc")
				q.DocId = &id
			}

			rels, err := relations(env, q, ps, c.Int("limit"))
			if err != nil {
				return err
			}

			r := render.NewRenderer()
			r.Out = env.ui.Out
			r.HasColor = c.Bool("color")
			r.HasPrefix = !c.Bool("no-prefix")
			if r.HasPrefix {
				if err := addDocNames(env, r); err != nil {
					return err
				}
			}

			r.Relations(rels)
			return nil
		},
	}
}

// relations reads the stored relations matching ps, at most limit if
// positive.
func relations(env *Env, q storage.RelationQuery, ps *match.PatternSet, limit int) ([]storage.Relation, error) {
	repo, err := NewRelationRepository(env.pool, env.cfg.DocPath)
	if err != nil {
		return nil, err
	}

	// the limit applies after the pattern filter
	if ps == nil {
		q.Limit = limit
	}

	rels := []storage.Relation{}
	err = repo.Relations(q, func(rel storage.Relation) error {
		if ps != nil && !ps.Match(rel.Subject, rel.Predicate, rel.Object) {
			return nil
		}

		rels = append(rels, rel)
		if limit > 0 && len(rels) >= limit {
			return errLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return nil, err
	}

	return rels, nil
}

func addDocNames(env *Env, r *render.Renderer) error {
	repo, err := NewDocRepository(env.pool, env.cfg.DocPath)
	if err != nil {
		return err
	}

	docs, err := repo.List("")
	if err != nil {
		return err
	}

	for _, d := range docs {
		r.AddDocName(d.Id, d.Title)
	}
	return nil
}
