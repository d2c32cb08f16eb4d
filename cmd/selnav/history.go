package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/selnav/internal/history"
	"github.com/dshills/selnav/internal/scene"
)

var (
	indexStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(4).Align(lipgloss.Right)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	refStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	danglingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Strikethrough(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

func newHistoryCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the saved selection history, oldest first",
		Long: `Print the saved selection history, oldest first.

With --scene, entries are resolved against that scene: names are shown and
entries whose object no longer exists are marked as gone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*f)
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			refs, err := st.Load()
			if err != nil {
				return err
			}
			var sc *scene.Scene
			if f.scenePath != "" {
				if sc, err = scene.Load(f.scenePath); err != nil {
					return err
				}
			}
			printHistory(cmd.OutOrStdout(), cfg.History.Store, refs, sc)
			return nil
		},
	}
}

// printHistory writes one line per entry. A nil scene prints bare refs.
func printHistory(w io.Writer, source string, refs []history.Ref, sc *scene.Scene) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d selections in %s", len(refs), source)))
	for i, ref := range refs {
		idx := indexStyle.Render(fmt.Sprintf("%d", i+1))
		switch obj, ok := lookup(sc, ref); {
		case sc == nil:
			fmt.Fprintf(w, "%s  %s\n", idx, refStyle.Render(string(ref)))
		case ok:
			fmt.Fprintf(w, "%s  %s %s\n", idx, nameStyle.Render(obj.Label()), refStyle.Render(ref.Short()))
		default:
			fmt.Fprintf(w, "%s  %s %s\n", idx, danglingStyle.Render(string(ref)), refStyle.Render("(gone)"))
		}
	}
}

func lookup(sc *scene.Scene, ref history.Ref) (*scene.Object, bool) {
	if sc == nil {
		return nil, false
	}
	return sc.Lookup(ref)
}
