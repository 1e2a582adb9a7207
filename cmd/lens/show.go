package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/kingrea/lens/internal/review"
	"github.com/kingrea/lens/internal/segment"
	"github.com/kingrea/lens/internal/store"
	"github.com/kingrea/lens/internal/tui"
)

func (c *cli) newShowCmd() *cobra.Command {
	var (
		width    int
		active   string
		markdown bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print every panel with phrases highlighted",
		Long: `Prints the three source texts and the six feedback sections once, without
the interactive screen. --active draws one phrase as hovered in every panel.
--markdown renders the review as terminal markdown instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rv, err := c.loadReview(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if markdown {
				renderer, err := glamour.NewTermRenderer(
					glamour.WithAutoStyle(),
					glamour.WithWordWrap(width),
				)
				if err != nil {
					return fmt.Errorf("markdown renderer: %w", err)
				}
				rendered, err := renderer.Render(rv.Markdown())
				if err != nil {
					return fmt.Errorf("render markdown: %w", err)
				}
				_, err = fmt.Fprint(out, rendered)
				return err
			}
			_, err = fmt.Fprintln(out, tui.Snapshot(rv, tui.ThemeFromConfig(c.cfg), width, phraseMatcher(active)))
			return err
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 100, "wrap width in cells")
	cmd.Flags().StringVar(&active, "active", "", "phrase to draw as active")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render as terminal markdown")
	return cmd
}

// phraseMatcher returns an active-state predicate that lights phrase in
// every panel, or nil for no phrase.
func phraseMatcher(phrase string) func(id string) bool {
	if phrase == "" {
		return nil
	}
	return func(id string) bool {
		_, p, ok := segment.ParseIdentifier(id)
		return ok && p == phrase
	}
}

func (c *cli) loadReview(cmd *cobra.Command) (*review.Review, error) {
	supplied, err := c.supplied(cmd)
	if err != nil {
		return nil, err
	}
	st, err := c.openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	inputs, err := store.Resolve(cmd.Context(), st, supplied)
	if err != nil {
		return nil, err
	}
	return review.Build(inputs), nil
}
