package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"channelhub/internal/config"
	"channelhub/internal/registry"
	"channelhub/pkg/types"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "validate <config>",
		Short:   "Check a config file and the definitions it references",
		Example: "  channelhubd validate channelhub.toml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cmd.OutOrStdout(), args[0])
		},
	}
}

func validateConfig(w io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	defs, err := registry.Resolve(cfg.Definitions, cfg.DefinitionsDir)
	if err != nil {
		return fmt.Errorf("definitions: %w", err)
	}
	kinds := make(map[string]bool, len(defs))
	for _, d := range defs {
		kinds[d.Kind] = true
	}
	for _, ic := range cfg.Instances {
		if !kinds[ic.Kind] {
			return fmt.Errorf("startup instance %q: unknown module kind %q", ic.ID, ic.Kind)
		}
	}
	_, err = fmt.Fprintf(w, "ok: %d definitions, %d startup instances\n", len(defs), len(cfg.Instances))
	return err
}

func newDefinitionsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "definitions <dir>",
		Short:   "List the module definitions found in a directory",
		Example: "  channelhubd definitions ./modules\n  channelhubd definitions ./modules -o yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := registry.LoadDir(args[0])
			if err != nil {
				return err
			}
			return printDefinitions(cmd.OutOrStdout(), defs, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json|yaml")
	return cmd
}

func printDefinitions(w io.Writer, defs []types.ModuleDefinition, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(defs); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tCHANNELS\tRECEIVERS\tNAME")
		for _, d := range defs {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", d.Kind, len(d.Channels), len(d.Receivers), d.DisplayName)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output %q", format)
	}
}
