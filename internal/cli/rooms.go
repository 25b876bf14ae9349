package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/basegen/pkg/errors"
	"github.com/matzehuels/basegen/pkg/layout"
	"github.com/matzehuels/basegen/pkg/pipeline"
)

// roomsCommand creates the rooms command for inspecting the connectivity
// graph without exporting geometry.
func (c *CLI) roomsCommand() *cobra.Command {
	var (
		seed       uint64
		levels     int
		formatsStr string
		output     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Export the room connectivity graph",
		Long: `Export the generated room graph as Graphviz DOT or rendered SVG.

The graph shows every room the layout engine placed, clustered by level,
with edges for walkable connections. It is the quickest way to inspect what
a seed produces before exporting full geometry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Levels:  levels,
				Formats: parseFormats(formatsStr),
				Logger:  loggerFromContext(cmd.Context()),
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}
			for _, f := range opts.Formats {
				if f != pipeline.FormatDOT && f != pipeline.FormatSVG {
					return errors.New(errors.ErrCodeUnsupported,
						"rooms exports dot or svg, not %q", f)
				}
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Cache.Close()

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("rooms_%d", result.Seed)
			}
			written, err := writeArtifacts(result.Artifacts, output)
			if err != nil {
				return err
			}

			printSuccess("Generated room graph")
			printKeyValue("seed", strconv.FormatUint(result.Seed, 10))
			printKeyValue("rooms", strconv.Itoa(len(result.Rooms)))
			printKeyValue("reachable", strconv.Itoa(layout.ReachableFrom(result.Rooms, 0)))
			for _, path := range written {
				printFile(path)
			}
			printNewline()
			printNextStep("Export the geometry",
				fmt.Sprintf("%s generate --seed %d", appName, result.Seed))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "layout seed (omit for a time-derived seed)")
	cmd.Flags().IntVar(&levels, "levels", 0, "floor count, 2-6")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "dot", "output format(s): dot (default), svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default rooms_<seed>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}
