package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/edit"
	"github.com/revelaction/relex/match"
)

func patternsCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "patterns",
		Usage: "manage the pattern sets",
		Subcommands: []*cli.Command{
			{
				Name:  "ls",
				Usage: "list the pattern sets",
				Action: func(c *cli.Context) error {
					lib, err := NewPatternRepository(env.cfg.PatternPath).ReadAll()
					if err != nil {
						return err
					}

					for _, ps := range lib {
						fmt.Fprintf(env.ui.Out, "🔖 %s (%d)\n", ps.Name, len(ps.Patterns))
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "print the patterns of a set",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("show needs a pattern set name")
					}

					ps, err := NewPatternRepository(env.cfg.PatternPath).Read(c.Args().First())
					if err != nil {
						return err
					}

					for _, p := range ps.Patterns {
						fmt.Fprintln(env.ui.Out, p.String())
					}
					return nil
				},
			},
			{
				Name:  "edit",
				Usage: "edit the pattern sets interactively",
				Action: func(c *cli.Context) error {
					repo := NewPatternRepository(env.cfg.PatternPath)
					lib, err := repo.ReadAll()
					if err != nil {
						if !os.IsNotExist(err) {
							return err
						}
						lib = match.Library{}
					}

					return edit.NewHandler(lib, repo, env.ui.Out).Run()
				},
			},
			{
				Name:      "add",
				Usage:     "add patterns to a set, creating it if missing",
				ArgsUsage: "NAME PATTERN...",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return fmt.Errorf("add needs a pattern set name and a pattern")
					}

					return addPatterns(env, c.Args().First(), c.Args().Tail())
				},
			},
		},
	}
}

func addPatterns(env *Env, name string, exprs []string) error {
	repo := NewPatternRepository(env.cfg.PatternPath)

	ps, err := repo.Read(name)
	if err != nil {
		// a new set
		ps = match.PatternSet{Name: name}
	}

	add, err := patternSet(exprs)
	if err != nil {
		return err
	}

	ps.Patterns = append(ps.Patterns, add.Patterns...)
	return repo.Write(ps)
}
