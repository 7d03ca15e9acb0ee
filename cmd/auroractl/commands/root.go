// Package commands はオペレータ向けCLI auroractl のサブコマンドを定義します。
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd は auroractl のルートコマンドを生成します。
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "auroractl",
		Short:         "Operator tools for the AURORA-Lite API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(parseCmd(), scoreCmd(), svgCmd(), paletteCmd())
	return root
}

// Execute はルートコマンドを実行します。
func Execute() error {
	return NewRootCmd().Execute()
}
