package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/engine"
	"github.com/scaffgen/core/pkg/generator"
)

func newGenerateCmd() *cobra.Command {
	var (
		category  string
		framework string
		outputDir string
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "generate <path>",
		Short: "Generate test scaffolds for C# sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := engine.New().Generate(cmd.Context(), engine.GenerateOptions{
				Path:      args[0],
				Category:  domain.Category(category),
				Framework: framework,
				OutputDir: outputDir,
				Recursive: recursive,
			})
			if err != nil {
				return err
			}

			for _, f := range result.Files {
				infof("generated %s", f)
			}
			successf("%d test classes for %d methods", len(result.Files), result.Report.CountMethods())
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategoryAuto), "analyzer category")
	cmd.Flags().StringVarP(&framework, "framework", "f", engine.DefaultFramework,
		"test framework style ("+strings.Join(generator.Frameworks(), ", ")+")")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "GeneratedTests", "output directory for generated tests")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "descend into subdirectories")
	return cmd
}
