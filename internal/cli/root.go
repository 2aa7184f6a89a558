// Package cli implements the scaffgen command-line surface. It is a thin
// boundary: all failures from the core propagate here, are printed, and turn
// into exit code 1.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errColor = color.New(color.FgRed, color.Bold)

// NewRootCmd builds the scaffgen command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scaffgen",
		Short: "Analyze C# sources and generate test scaffolds",
		Long: `scaffgen parses C# source files, classifies classes into structural
categories (webforms, mvc, azurefunction, desktop), extracts per-method
metadata with injectable dependencies, and synthesizes xUnit or NUnit test
scaffolds with Moq mock setups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newGenerateCmd())
	return root
}

// Execute runs the command tree and returns the process exit code:
// 0 on success, 1 on any caught failure.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		errColor.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func successf(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(os.Stdout, format+"\n", args...)
}

func infof(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
