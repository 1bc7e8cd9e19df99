package completion_helper

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete prints every flag of cmd, one per line, for shell completion.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	var w io.Writer = os.Stdout
	if cmd.Writer != nil {
		w = cmd.Writer
	}
	PrintFlags(w, cmd.Flags)
}

// PrintFlags writes "-x" for short names and "--name" for long ones.
func PrintFlags(w io.Writer, flags []cli.Flag) {
	for _, f := range flags {
		for _, name := range f.Names() {
			if name == "help" || name == "h" {
				continue
			}
			if len(name) == 1 {
				_, _ = fmt.Fprintln(w, "-"+name)
			} else {
				_, _ = fmt.Fprintln(w, "--"+name)
			}
		}
	}
}
