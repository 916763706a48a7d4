package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollowforge/wfcmap/pkg/cliutil"
	"github.com/hollowforge/wfcmap/pkg/compiler"
	"github.com/hollowforge/wfcmap/pkg/plugin"
	"github.com/hollowforge/wfcmap/pkg/plugin/exprhook"
	"github.com/hollowforge/wfcmap/pkg/resultio"
	"github.com/hollowforge/wfcmap/pkg/solver"
	"github.com/hollowforge/wfcmap/pkg/tileset"
	"github.com/hollowforge/wfcmap/pkg/wfcconfig"
)

var (
	seedOverride uint64
	outPath      string
	outCompact   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile tiles/rules from config and run the solver",
	Long: `generate loads a run configuration, compiles the enabled tile packs
and optional JSON overlay into a rule table, runs the solver to completion
or exhaustion, and writes the result.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Uint64Var(&seedOverride, "seed", 0, "override the seed from --config (0 = use config seed)")
	generateCmd.Flags().StringVar(&outPath, "out", "", "output path (default: config's output.path, or stdout)")
	generateCmd.Flags().BoolVar(&outCompact, "compact", false, "write compact JSON instead of indented")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		return fmt.Errorf("--config is required")
	}

	cfg, err := wfcconfig.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if seedOverride != 0 {
		cfg.Seed = seedOverride
	}

	cliutil.Verbose("loaded config: grid=%dx%d seed=%d plugins=%v", cfg.Grid.Width, cfg.Grid.Height, cfg.Seed, cfg.Plugins)

	var plugins []plugin.TileSetPlugin
	for _, path := range cfg.Plugins {
		pack, err := tileset.LoadTilePackFromFile(path)
		if err != nil {
			return fmt.Errorf("loading tile pack %q: %w", path, err)
		}
		pack.EnabledFlag = true
		plugins = append(plugins, pack)
		cliutil.Verbose("loaded tile pack %q (%d tiles, %d rules)", pack.Name, len(pack.Tiles), len(pack.Rules))
	}

	compiled, err := compiler.Compile(plugins, cfg.Overlay.Dir)
	if err != nil {
		return fmt.Errorf("compiling configuration: %w", err)
	}
	for _, w := range compiled.Warnings {
		cliutil.Warning("%s", w.Message)
	}
	cliutil.Info("compiled %d tiles, %d rule entries", len(compiled.Tiles), compiled.Rules.Len())

	settings := solver.Settings{
		Width: cfg.Grid.Width, Height: cfg.Grid.Height,
		Tiles:          compiled.Tiles,
		TileIndexMap:   compiled.IndexOf,
		Rules:          compiled.Rules,
		Seed:           cfg.Seed,
		HasSeed:        true,
		PluginSettings: cfg.PluginSettings,
		RetryBudget:    cfg.RetryBudget,
		ProgressEvery:  cfg.ProgressEvery,
		Hooks:          buildHooks(cfg, compiled.Tiles),
	}

	spin := cliutil.NewSpinner("solving")
	spin.Start()
	start := time.Now()
	result := solver.Solve(context.Background(), settings, spin.Sink(), nil)
	spin.Stop()
	elapsed := time.Since(start)

	if result.Success {
		cliutil.Info("generation succeeded in %v (attempts=%d, runId=%s)", elapsed, result.Attempts, result.RunID)
	} else {
		cliutil.Error("generation failed after %v: %s", elapsed, result.ErrorMessage)
	}

	path := outPath
	if path == "" {
		path = cfg.Output.Path
	}
	compact := outCompact || cfg.Output.Compact

	if path == "" {
		data, err := exportData(&result, compact)
		if err != nil {
			return fmt.Errorf("serializing result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if compact {
		if err := resultio.SaveJSONCompactToFile(&result, path); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	} else {
		if err := resultio.SaveJSONToFile(&result, path); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}
	cliutil.Info("wrote result to %s", path)

	if !result.Success {
		return fmt.Errorf("generation did not succeed: %s", result.ErrorMessage)
	}
	return nil
}

func exportData(result *solver.Result, compact bool) ([]byte, error) {
	if compact {
		return resultio.ExportJSONCompact(result)
	}
	return resultio.ExportJSON(result)
}

// buildHooks constructs the optional expression-filter hook from
// PluginSettings["keepExpr"], if present. Every other hook point is left to
// plugins registered in-process by an embedding program.
func buildHooks(cfg *wfcconfig.Config, tiles []tileset.TileDefinition) []plugin.GenerationHook {
	keep, _ := cfg.PluginSettings["keepExpr"].(string)
	if keep == "" {
		return nil
	}
	return []plugin.GenerationHook{exprhook.NewHook(tiles, keep)}
}
