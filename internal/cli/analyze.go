package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/engine"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		category  string
		output    string
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Extract method metadata from C# sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := engine.New().Analyze(cmd.Context(), engine.AnalyzeOptions{
				Path:       args[0],
				Category:   domain.Category(category),
				OutputPath: output,
				Recursive:  recursive,
			})
			if err != nil {
				return err
			}

			infof("category: %s", report.Category)
			infof("methods:  %d across %d types", report.CountMethods(), len(report.ContainingTypes()))
			if output != "" {
				successf("report written to %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategoryAuto),
		fmt.Sprintf("analyzer category (%s, %s, %s, %s, %s)",
			domain.CategoryAuto, domain.CategoryWebForms, domain.CategoryMVC,
			domain.CategoryAzureFunction, domain.CategoryDesktop))
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to this file")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "descend into subdirectories")
	return cmd
}
