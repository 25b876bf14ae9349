package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/basegen/pkg/base"
	"github.com/matzehuels/basegen/pkg/errors"
	"github.com/matzehuels/basegen/pkg/pipeline"
)

// generateCommand creates the generate command, the main entry point for
// producing base geometry.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		style       string
		seed        uint64
		levels      int
		configPath  string
		setFlags    []string
		formatsStr  string
		output      string
		noCache     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate base geometry artifacts",
		Long: `Generate multi-level base geometry.

Every run is driven by a seed: the same style, seed, and config always
produce identical geometry. Omit --seed to let basegen pick one; the chosen
seed is printed so the run can be reproduced.

Structural parameters come from built-in defaults, optionally replaced by a
TOML preset (--config) and adjusted field by field with --set:

  basegen generate --style stepped --levels 5 --set wall_taper=0.25

Artifacts are cached locally, keyed by the full option set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Style:   style,
				Levels:  levels,
				Formats: parseFormats(formatsStr),
				Logger:  loggerFromContext(cmd.Context()),
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}

			if configPath != "" {
				cfg, err := base.Load(configPath)
				if err != nil {
					return err
				}
				opts.Config = &cfg
			}

			overrides, err := parseOverrides(setFlags)
			if err != nil {
				return err
			}
			opts.Overrides = overrides

			if interactive {
				choice, err := runPicker()
				if err != nil {
					return err
				}
				if choice == nil {
					return nil // user quit
				}
				opts.Style = choice.Style
				opts.Levels = choice.Levels
			}

			return c.runGenerate(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "exterior style: pyramid (default), stepped, tower")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "layout seed (omit for a time-derived seed)")
	cmd.Flags().IntVar(&levels, "levels", 0, fmt.Sprintf("floor count, %d-%d (default %d)",
		base.MinLevels, base.MaxLevels, pipeline.DefaultLevels))
	cmd.Flags().StringVar(&configPath, "config", "", "TOML preset file with structural parameters")
	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "override a config field, e.g. --set wall_taper=0.25 (repeatable)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): obj (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default base_<style>_<seed>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick style and levels interactively")

	return cmd
}

// runGenerate executes the pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Generating base...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	prog.done("generation complete")

	if output == "" {
		output = fmt.Sprintf("base_%s_%d", result.Config.Style, result.Seed)
	}
	written, err := writeArtifacts(result.Artifacts, output)
	if err != nil {
		return err
	}

	printSuccess("Generated %s base", result.Config.Style)
	printKeyValue("seed", strconv.FormatUint(result.Seed, 10))
	printKeyValue("levels", strconv.Itoa(result.Config.NumLevels))
	printStats(result.Stats.VertexCount, result.Stats.FaceCount, result.Stats.RoomCount,
		anyHit(result.CacheInfo.ArtifactHits))
	for _, path := range written {
		printFile(path)
	}
	printNewline()
	printNextStep("Inspect the room graph",
		fmt.Sprintf("%s rooms --seed %d --levels %d", appName, result.Seed, result.Config.NumLevels))
	return nil
}

// writeArtifacts writes each artifact next to the output base path, keyed by
// format extension. Returns the written paths in a stable order.
func writeArtifacts(artifacts map[string][]byte, output string) ([]string, error) {
	// mtl must sit next to the obj under the name the obj references.
	order := []string{"obj", "mtl", "json", "dot", "svg"}

	var written []string
	for _, format := range order {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := output + "." + format
		if format == "mtl" {
			path = filepath.Join(filepath.Dir(output), "base.mtl")
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

// parseOverrides converts repeated key=value flags into an override map.
func parseOverrides(flags []string) (map[string]float64, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	overrides := make(map[string]float64, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidOverride,
				"override %q is not key=value", f)
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidOverride,
				"override %q has a non-numeric value", f)
		}
		overrides[strings.TrimSpace(key)] = n
	}
	return overrides, nil
}

func anyHit(hits map[string]bool) bool {
	for _, hit := range hits {
		if hit {
			return true
		}
	}
	return false
}
