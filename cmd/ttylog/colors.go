package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/formatter"
	"github.com/philipp01105/ttylog/handler/consolehandler"
	"github.com/philipp01105/ttylog/palette"
)

func newColorsCommand() *cobra.Command {
	var levels bool

	cmd := &cobra.Command{
		Use:   "colors",
		Short: "List the colour names accepted in colour attribute maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listColors(cmd.OutOrStdout(), levels)
		},
	}

	cmd.Flags().BoolVar(&levels, "levels", false, "show the colour bound to each level instead")
	return cmd
}

func listColors(w io.Writer, levels bool) error {
	tty := consolehandler.IsTerminal(w)
	if f, ok := w.(*os.File); ok && tty {
		// without VT support the escapes show up literally, which is harmless
		_ = palette.EnableVirtualTerminal(f)
	}

	swatch := func(seq, text string) string {
		if !tty {
			return text
		}
		return seq + text + palette.Reset
	}

	if levels {
		for _, l := range core.Levels() {
			seq, err := formatter.LevelColor(l)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, swatch(seq, l.String())); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range palette.Names() {
		code, _ := palette.Code(name)
		if _, err := fmt.Fprintf(w, "%3d %s\n", code, swatch(palette.MustLookup(name), name)); err != nil {
			return err
		}
	}
	return nil
}
