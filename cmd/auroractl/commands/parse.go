package commands

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	cmdkusecase "aurora_backend/internal/feature/cmdk/usecase"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <input>",
		Short: "Print how the command palette parses an input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := cmdkusecase.ParseCommand(strings.Join(args, " "))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(parsed)
		},
	}
}
