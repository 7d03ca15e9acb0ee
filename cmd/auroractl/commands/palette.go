package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aurora_backend/internal/feature/cmdk/transport/tui"
	platformhttp "aurora_backend/internal/platform/http"
	"aurora_backend/internal/platform/upstream"
)

func paletteCmd() *cobra.Command {
	var (
		apiURL  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Open the interactive command palette against a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := upstream.Config{
				BaseURL:    strings.TrimRight(apiURL, "/"),
				Configured: true,
				Timeout:    timeout,
			}
			client := upstream.NewClient(cfg, platformhttp.NewHTTPClient(timeout))

			selected, err := tui.Run(cmd.Context(), tui.NewAPISearcher(client))
			if err != nil {
				return err
			}
			if selected == nil {
				return nil
			}
			b, err := json.Marshal(selected)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", "http://localhost:8080", "AURORA-Lite API base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "search request timeout")
	return cmd
}
