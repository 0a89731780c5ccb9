package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reviewlens/internal/aggregate"
	"reviewlens/internal/analysis"
	"reviewlens/internal/aspect"
	"reviewlens/internal/vocabulary"
)

func newVocabCommand(ctx *commandContext) *cobra.Command {
	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the aspects and reason tags the annotator may use",
	}
	vocabCmd.AddCommand(newVocabListCommand(ctx))
	vocabCmd.AddCommand(newVocabCheckCommand(ctx))
	return vocabCmd
}

func newVocabListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list [ASPECT]",
		Short: "List aspects, or the reason tags allowed for one aspect",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if jsonOutput {
					return writeJSON(cmd, aspectCatalog(table))
				}
				rows := make([][]string, 0, aspect.Count)
				for _, a := range aspect.All() {
					rows = append(rows, []string{strconv.Itoa(int(a.ID)), a.Key, a.Display, strconv.Itoa(len(table.Tags(a.ID)))})
				}
				fmt.Fprintln(out, renderTable("", []string{"ID", "Key", "Name", "Tags"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight}))
				return nil
			}

			a, err := parseAspect(args[0])
			if err != nil {
				return err
			}
			tags := table.Tags(a.ID)
			if jsonOutput {
				return writeJSON(cmd, map[string]any{"aspect": a.Key, "tags": tags})
			}
			rows := make([][]string, 0, len(tags))
			for _, tag := range tags {
				rows = append(rows, []string{tag, aggregate.DisplayReason(tag)})
			}
			fmt.Fprintln(out, renderTable(fmt.Sprintf("%d %s", a.ID, a.Display), []string{"Tag", "Display"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print as JSON")
	return cmd
}

func newVocabCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check ASPECT TAG",
		Short: "Report whether a reason tag is allowed for an aspect",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(ctx)
			if err != nil {
				return err
			}
			a, err := parseAspect(args[0])
			if err != nil {
				return err
			}
			tag := strings.TrimSpace(args[1])
			out := cmd.OutOrStdout()
			if table.Allowed(a.ID, tag) {
				fmt.Fprintf(out, "%s is allowed for %s\n", tag, a.Key)
				return nil
			}
			others := table.AspectsFor(tag)
			if len(others) == 0 {
				return fmt.Errorf("%s is not a known reason tag", tag)
			}
			keys := make([]string, len(others))
			for i, id := range others {
				keys[i] = id.String()
			}
			return fmt.Errorf("%s is not allowed for %s (allowed for: %s)", tag, a.Key, strings.Join(keys, ", "))
		},
	}
}

type catalogEntry struct {
	ID      int    `json:"id"`
	Key     string `json:"key"`
	Name    string `json:"name"`
	Display string `json:"display"`
	Scope   string `json:"scope"`
	Tags    int    `json:"tags"`
}

func aspectCatalog(table *vocabulary.Table) []catalogEntry {
	all := aspect.All()
	out := make([]catalogEntry, len(all))
	for i, a := range all {
		out[i] = catalogEntry{
			ID:      int(a.ID),
			Key:     a.Key,
			Name:    a.Name,
			Display: a.Display,
			Scope:   a.Scope,
			Tags:    len(table.Tags(a.ID)),
		}
	}
	return out
}

func loadTable(ctx *commandContext) (*vocabulary.Table, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return analysis.LoadVocabulary(cfg)
}

func parseAspect(value string) (aspect.Aspect, error) {
	id, ok := aspect.Parse(strings.TrimSpace(value))
	if !ok {
		return aspect.Aspect{}, fmt.Errorf("unknown aspect %q", value)
	}
	return aspect.MustLookup(id), nil
}
