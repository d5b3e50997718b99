package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"poetry2uv/internal/app"
)

type checkOptions struct {
	Input      string
	ProjectDir string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a converted document against PEP 440",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "pyproject.toml", "Converted manifest path")
	cmd.Flags().StringVar(&opts.ProjectDir, "project-dir", ".", "Project directory")
	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("project_dir", cmd.Flags().Lookup("project-dir"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	service := newAppService()
	result, err := service.Check(ctx, app.CheckRequest{
		InputPath:  resolveString(cmd, opts.Input, "input", "input"),
		ProjectDir: resolveString(cmd, opts.ProjectDir, "project_dir", "project-dir"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("checked: %s (%d dependencies, %d groups, %d specifiers)\n",
		result.ProjectName, result.Dependencies, result.Groups, result.Specifiers)
	return nil
}
