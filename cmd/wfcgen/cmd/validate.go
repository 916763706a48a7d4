package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollowforge/wfcmap/pkg/cliutil"
	"github.com/hollowforge/wfcmap/pkg/compiler"
	"github.com/hollowforge/wfcmap/pkg/plugin"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

var (
	tilesFlag string
	rulesFlag string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the compiler alone and report dropped rules/tiles",
	Long: `validate compiles a standalone tiles.json/rules.json pair (no
plugins, no solving) and prints every warning the compiler returns — the
same warnings generate prints before it solves. Compiler warnings are not
emitted as progress events.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&tilesFlag, "tiles", "", "path to a tiles.json file")
	validateCmd.Flags().StringVar(&rulesFlag, "rules", "", "path to a rules.json file")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if tilesFlag == "" && rulesFlag == "" {
		return fmt.Errorf("at least one of --tiles or --rules is required")
	}

	var tiles []tileset.TileDefinition
	if tilesFlag != "" {
		data, err := os.ReadFile(tilesFlag)
		if err != nil {
			return fmt.Errorf("reading %s: %w", tilesFlag, err)
		}
		if err := json.Unmarshal(data, &tiles); err != nil {
			return fmt.Errorf("parsing %s: %w", tilesFlag, err)
		}
	}

	var rules []tileset.TileRuleDefinition
	if rulesFlag != "" {
		data, err := os.ReadFile(rulesFlag)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rulesFlag, err)
		}
		if err := json.Unmarshal(data, &rules); err != nil {
			return fmt.Errorf("parsing %s: %w", rulesFlag, err)
		}
	}

	adHocPlugin := &inlinePlugin{tiles: tiles, rules: rules}
	compiled, err := compiler.Compile([]plugin.TileSetPlugin{adHocPlugin}, "")
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	cliutil.Info("%d tiles, %d rule entries compiled", len(compiled.Tiles), compiled.Rules.Len())
	if len(compiled.Warnings) == 0 {
		cliutil.Info("no warnings")
		return nil
	}
	for _, w := range compiled.Warnings {
		cliutil.Warning("%s", w.Message)
	}
	return fmt.Errorf("%d warning(s) found", len(compiled.Warnings))
}

// inlinePlugin wraps a pair of raw overlay-style slices as a TileSetPlugin,
// so validate can run the compiler without a registered tile pack.
type inlinePlugin struct {
	tiles []tileset.TileDefinition
	rules []tileset.TileRuleDefinition
}

func (p *inlinePlugin) Enabled() bool                                 { return true }
func (p *inlinePlugin) TileDefinitions() []tileset.TileDefinition     { return p.tiles }
func (p *inlinePlugin) RuleDefinitions() []tileset.TileRuleDefinition { return p.rules }
