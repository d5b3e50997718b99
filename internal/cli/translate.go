package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"poetry2uv/internal/app"
)

func newTranslateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <expression>",
		Short: "Translate a Poetry version constraint to a PEP 440 specifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runTranslate(ctx context.Context, expression string) error {
	service := newAppService()
	result, err := service.Translate(ctx, app.TranslateRequest{Expression: expression})
	if err != nil {
		return err
	}
	fmt.Println(result.Translated)
	return nil
}
