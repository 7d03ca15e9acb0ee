package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	compareusecase "aurora_backend/internal/feature/compare/usecase"
)

// parsePairs は "key=value" 形式のフラグ値を数値マップに変換します。
func parsePairs(flag string, pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("--%s %q: expected key=value", flag, p)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("--%s %q: %w", flag, p, err)
		}
		out[k] = f
	}
	return out, nil
}

type scoreFlags struct {
	weights []string
	metrics []string
}

func (f *scoreFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.weights, "weight", "w", nil, "metric weight as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&f.metrics, "metric", "m", nil, "metric value in [0,1] as key=value (repeatable)")
}

func (f *scoreFlags) parse() (weights, metrics map[string]float64, err error) {
	if weights, err = parsePairs("weight", f.weights); err != nil {
		return nil, nil, err
	}
	if metrics, err = parsePairs("metric", f.metrics); err != nil {
		return nil, nil, err
	}
	return weights, metrics, nil
}

func scoreCmd() *cobra.Command {
	var f scoreFlags
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the weighted composite score",
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, metrics, err := f.parse()
			if err != nil {
				return err
			}
			score := compareusecase.ComputeComposite(weights, metrics)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", score)
			return err
		},
	}
	f.bind(cmd)
	return cmd
}
