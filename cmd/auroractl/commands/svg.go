package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	compareusecase "aurora_backend/internal/feature/compare/usecase"
)

func svgCmd() *cobra.Command {
	var (
		f      scoreFlags
		title  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Render the comparison snapshot SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, metrics, err := f.parse()
			if err != nil {
				return err
			}
			svg := compareusecase.BuildCompareSVG(title, weights, compareusecase.ComputeComposite(weights, metrics))
			if output != "" && output != "-" {
				return os.WriteFile(output, []byte(svg), 0o644)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), svg)
			return err
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVarP(&title, "title", "t", compareusecase.DefaultTitle, "snapshot title")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	return cmd
}
