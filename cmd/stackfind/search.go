// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/stackfind/internal/lookup"
	"github.com/pdiddy/stackfind/internal/render"
	"github.com/pdiddy/stackfind/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [selection...]",
	Short: "Look up a selection on Stack Overflow",
	Long: `Search runs one lookup. The selection is taken from the arguments, then
--selection, then standard input. Surrounding whitespace is trimmed; an empty
selection ends the run with a notice and no panel.

With --out the panel is a file that first holds the loading document and is
then replaced by the results or error document. Without --out the final
document is written to standard output.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("selection", "", "highlighted text to look up")
	searchCmd.Flags().String("out", "", "panel file to write the HTML document to")
	searchCmd.Flags().String("format", "html", "output format: html, json, yaml")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	switch format {
	case "html", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want html, json or yaml)", format)
	}
	if out != "" && format != "html" {
		return fmt.Errorf("--out only supports the html format")
	}

	host := lookup.HostParts{
		SelectionSource: selectionSource(cmd, args),
		Notifier:        lookup.WriterNotifier{W: cmd.ErrOrStderr(), Prefix: "stackfind: "},
	}
	mem := &lookup.MemoryDisplay{}
	if out != "" {
		host.Display = lookup.FileDisplay{Path: out}
	} else {
		host.Display = mem
	}

	orch := &lookup.Orchestrator{
		Keys:     pool,
		Searcher: search.NewStackExchange(cfg.StackExchange),
		Logger:   logger,
	}
	res, err := orch.Run(cmd.Context(), host)
	if res.State == lookup.StateAborted {
		return err
	}

	stdout := cmd.OutOrStdout()
	switch {
	case out != "":
		fmt.Fprintln(cmd.ErrOrStderr(), "Panel written to", out)
	case format == "json" && err == nil:
		return render.JSON(stdout, res.Page)
	case format == "yaml" && err == nil:
		return render.YAML(stdout, res.Page)
	case format == "html":
		if _, werr := io.WriteString(stdout, mem.Last().Content()); werr != nil {
			return werr
		}
	}
	return err
}

func selectionSource(cmd *cobra.Command, args []string) lookup.SelectionSource {
	if len(args) > 0 {
		return lookup.StaticSelection(strings.Join(args, " "))
	}
	if cmd.Flags().Changed("selection") {
		s, _ := cmd.Flags().GetString("selection")
		return lookup.StaticSelection(s)
	}
	return lookup.ReaderSelection{R: cmd.InOrStdin()}
}
