package main

import (
	"fmt"

	"github.com/ludo-technologies/codesim/app"
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/internal/constants"
	"github.com/ludo-technologies/codesim/service"
	"github.com/spf13/cobra"
)

// CompareCommand scores two files against each other
type CompareCommand struct {
	outputFlags

	ngramSize int
	maxTokens int
	timeout   int
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{
		ngramSize: constants.DefaultNGramSize,
		maxTokens: constants.DefaultMaxTokens,
		timeout:   constants.DefaultTimeoutSeconds,
	}
}

// CreateCobraCommand creates the cobra command for compare
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare FILE_A FILE_B",
		Short: "Score two files against each other",
		Long: `Score two source files with both similarity metrics.

The subsequence score works on any language. The n-gram score parses
both files as Python and abstracts user-defined names first, so it fails
with a parse error on anything else.

Examples:
  # Compare two submissions
  codesim compare alice.py bob.py

  # Use 4-grams and write JSON
  codesim compare --ngram 4 --json alice.py bob.py`,
		Args: cobra.ExactArgs(2),
		RunE: c.run,
	}

	cmd.Flags().IntVarP(&c.ngramSize, "ngram", "n", c.ngramSize, "N-gram window length")
	cmd.Flags().IntVar(&c.maxTokens, "max-tokens", c.maxTokens, "Reject snippets with more tokens (0 = no limit)")
	cmd.Flags().IntVar(&c.timeout, "timeout", c.timeout, "Timeout in seconds (0 = none)")
	c.register(cmd)

	return cmd
}

func (c *CompareCommand) run(cmd *cobra.Command, args []string) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	loader := service.NewConfigurationLoaderWithFlags(config.NewFlagTrackerFromFlagSet(cmd.Flags()))
	request, err := loader.LoadCompareRequest(c.configFile, startDirFor(args[0]), &domain.CompareRequest{
		NGramSize:      c.ngramSize,
		MaxTokens:      c.maxTokens,
		TimeoutSeconds: c.timeout,
		OutputFormat:   format,
		OutputWriter:   cmd.OutOrStdout(),
		OutputPath:     c.outputPath,
	})
	if err != nil {
		return err
	}

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(service.NewSimilarityService()).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewCompareFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create compare use case: %w", err)
	}

	return useCase.ExecuteFiles(cmd.Context(), args[0], args[1], *request)
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
