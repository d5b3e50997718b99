package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"poetry2uv/internal/app"
)

type convertOptions struct {
	Input        string
	Output       string
	ProjectDir   string
	Requirements string
	KeepPoetry   bool
	Interactive  bool
	Remove       []string
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a Poetry pyproject.toml to the uv format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "pyproject.toml", "Input manifest path")
	cmd.Flags().StringVar(&opts.Output, "output", "pyproject.toml", "Output manifest path")
	cmd.Flags().StringVar(&opts.ProjectDir, "project-dir", ".", "Project directory")
	cmd.Flags().StringVar(&opts.Requirements, "requirements", "", "Exported requirements listing for the pinned variant")
	cmd.Flags().BoolVar(&opts.KeepPoetry, "keep-poetry", false, "Keep the [tool.poetry] section in the output")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "Prompt when a dependency lists several alternate sources")
	cmd.Flags().StringSliceVar(&opts.Remove, "remove", nil, "Dotted paths to remove from the output")

	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("project_dir", cmd.Flags().Lookup("project-dir"))
	_ = viper.BindPFlag("requirements", cmd.Flags().Lookup("requirements"))
	_ = viper.BindPFlag("keep_poetry", cmd.Flags().Lookup("keep-poetry"))
	_ = viper.BindPFlag("interactive", cmd.Flags().Lookup("interactive"))
	_ = viper.BindPFlag("remove", cmd.Flags().Lookup("remove"))

	return cmd
}

func runConvert(ctx context.Context, cmd *cobra.Command, opts convertOptions) error {
	service := newAppService()
	result, err := service.Convert(ctx, app.ConvertRequest{
		InputPath:    resolveString(cmd, opts.Input, "input", "input"),
		OutputPath:   resolveString(cmd, opts.Output, "output", "output"),
		ProjectDir:   resolveString(cmd, opts.ProjectDir, "project_dir", "project-dir"),
		Requirements: resolveString(cmd, opts.Requirements, "requirements", "requirements"),
		KeepPoetry:   resolveBool(cmd, opts.KeepPoetry, "keep_poetry", "keep-poetry"),
		Interactive:  resolveBool(cmd, opts.Interactive, "interactive", "interactive"),
		Remove:       resolveStrings(cmd, opts.Remove, "remove", "remove"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("converted: %s -> %s\n", result.ProjectName, result.OutputPath)
	if result.PinnedPath != "" {
		fmt.Printf("pinned: %s\n", result.PinnedPath)
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
