package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// complete asks relex itself for the candidates with the completion flag.
const complete = `#! /bin/bash

_relex_autocomplete() {
    if [[ "${COMP_WORDS[0]}" != "source" ]]; then
        local cur opts
        COMPREPLY=()
        cur="${COMP_WORDS[COMP_CWORD]}"
        if [[ "$cur" == "-"* ]]; then
            opts=$( ${COMP_WORDS[@]:0:$COMP_CWORD} ${cur} --generate-bash-completion )
        else
            opts=$( ${COMP_WORDS[@]:0:$COMP_CWORD} --generate-bash-completion )
        fi
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi
}

complete -o bashdefault -o default -o nospace -F _relex_autocomplete relex
`

func bashCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script: source <(relex bash)",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprint(env.ui.Out, complete)
			return err
		},
	}
}
