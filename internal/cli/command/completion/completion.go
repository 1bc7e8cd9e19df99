package completion

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/DorianABDS/spec-to-issues/internal/config"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
)

const bashCompletionScript = `#! /bin/bash

_spec_to_issues_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    local cmd_context=("${COMP_WORDS[@]:0:$COMP_CWORD}")
    opts=$( "${cmd_context[@]}" --generate-shell-completion )
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _spec_to_issues_bash_autocomplete spec-to-issues
`

const zshCompletionScript = `#compdef spec-to-issues

_spec_to_issues() {
  local -a opts
  local cmd_context=("${(@)words[1,$CURRENT-1]}")
  opts=("${(@f)$("${cmd_context[@]}" --generate-shell-completion)}")
  _describe 'values' opts
}

compdef _spec_to_issues spec-to-issues
`

// CompletionCommandFactory creates the 'completion' command printing shell scripts.
type CompletionCommandFactory struct {
	out io.Writer
}

func NewCompletionCommandFactory() *CompletionCommandFactory {
	return &CompletionCommandFactory{out: os.Stdout}
}

func (f *CompletionCommandFactory) WithOutput(w io.Writer) *CompletionCommandFactory {
	f.out = w
	return f
}

func (f *CompletionCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	script := func(body string) cli.ActionFunc {
		return func(context.Context, *cli.Command) error {
			_, err := fmt.Fprint(f.out, body)
			return err
		}
	}
	return &cli.Command{
		Name:  "completion",
		Usage: t.GetMessage("completion_usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:   "bash",
				Usage:  t.GetMessage("completion_bash_usage", 0, nil),
				Action: script(bashCompletionScript),
			},
			{
				Name:   "zsh",
				Usage:  t.GetMessage("completion_zsh_usage", 0, nil),
				Action: script(zshCompletionScript),
			},
		},
	}
}
