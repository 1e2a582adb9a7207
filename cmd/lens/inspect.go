package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/lens/internal/feedback"
	"github.com/kingrea/lens/internal/review"
)

type sectionReport struct {
	Key       feedback.Key `json:"key" yaml:"key"`
	Title     string       `json:"title" yaml:"title"`
	Raw       string       `json:"raw" yaml:"raw"`
	Formatted string       `json:"formatted" yaml:"formatted"`
}

type inspectReport struct {
	Score      int                    `json:"score" yaml:"score"`
	Vocabulary []string               `json:"vocabulary" yaml:"vocabulary"`
	Sections   []sectionReport        `json:"sections" yaml:"sections"`
	Panels     []review.PanelSegments `json:"panels" yaml:"panels"`
}

func buildReport(rv *review.Review) inspectReport {
	report := inspectReport{
		Score:      rv.Score(),
		Vocabulary: rv.Vocabulary().Phrases(),
		Panels:     rv.AllSegments(),
	}
	for _, key := range feedback.Keys() {
		report.Sections = append(report.Sections, sectionReport{
			Key:       key,
			Title:     key.Title(),
			Raw:       rv.Sections().Get(key),
			Formatted: rv.Formatted().Get(key),
		})
	}
	return report
}

func (c *cli) newInspectCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump sections, phrases, score and segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rv, err := c.loadReview(cmd)
			if err != nil {
				return err
			}
			report := buildReport(rv)
			out := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "yaml", "":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}
