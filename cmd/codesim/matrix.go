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

// MatrixCommand scores every pair of files under the given paths
type MatrixCommand struct {
	outputFlags

	noRecursive     bool
	includePatterns []string
	excludePatterns []string

	ngramSize  int
	maxTokens  int
	workers    int
	timeout    int
	prefilter  float64
	minScore   float64
	noProgress bool
}

// NewMatrixCommand creates a new matrix command
func NewMatrixCommand() *MatrixCommand {
	return &MatrixCommand{
		includePatterns: []string{"**/*.py"},
		ngramSize:       constants.DefaultNGramSize,
		maxTokens:       constants.DefaultMaxTokens,
		workers:         constants.DefaultMaxWorkers,
		timeout:         constants.DefaultTimeoutSeconds,
		prefilter:       constants.DefaultPrefilterThreshold,
		minScore:        constants.DefaultMinScore,
	}
}

// CreateCobraCommand creates the cobra command for matrix
func (c *MatrixCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix [paths...]",
		Short: "Score every pair of files",
		Long: `Score every pair of files found under the given paths.

Pairs whose Python parse fails are reported as failed, with the
subsequence score still computed. With --prefilter, pairs whose MinHash
estimate of the n-gram score falls below the threshold are skipped.

Examples:
  # Score all Python files under submissions/
  codesim matrix submissions/

  # Only keep likely matches, as CSV
  codesim matrix --prefilter 0.3 --min-score 0.5 --csv submissions/

  # C++ files, subsequence only where parsing fails
  codesim matrix --include '**/*.cpp' labs/`,
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.noRecursive, "no-recursive", false, "Do not descend into subdirectories")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", c.includePatterns, "Glob patterns of files to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "Glob patterns of files to exclude")
	cmd.Flags().IntVarP(&c.ngramSize, "ngram", "n", c.ngramSize, "N-gram window length")
	cmd.Flags().IntVar(&c.maxTokens, "max-tokens", c.maxTokens, "Fail snippets with more tokens (0 = no limit)")
	cmd.Flags().IntVarP(&c.workers, "workers", "w", c.workers, "Concurrent pair workers (0 = one per CPU)")
	cmd.Flags().IntVar(&c.timeout, "timeout", c.timeout, "Timeout in seconds for the whole run (0 = none)")
	cmd.Flags().Float64Var(&c.prefilter, "prefilter", c.prefilter, "Skip pairs whose MinHash estimate is below this (0 = score all)")
	cmd.Flags().Float64Var(&c.minScore, "min-score", c.minScore, "Hide scored pairs whose best metric is below this")
	cmd.Flags().BoolVar(&c.noProgress, "no-progress", false, "Disable the progress bar")
	c.register(cmd)

	return cmd
}

func (c *MatrixCommand) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	format, err := c.format()
	if err != nil {
		return err
	}

	loader := service.NewConfigurationLoaderWithFlags(config.NewFlagTrackerFromFlagSet(cmd.Flags()))
	request, err := loader.LoadMatrixRequest(c.configFile, startDirFor(args[0]), &domain.MatrixRequest{
		Paths:              args,
		Recursive:          !c.noRecursive,
		IncludePatterns:    c.includePatterns,
		ExcludePatterns:    c.excludePatterns,
		NGramSize:          c.ngramSize,
		MaxTokens:          c.maxTokens,
		MaxWorkers:         c.workers,
		TimeoutSeconds:     c.timeout,
		PrefilterThreshold: c.prefilter,
		MinScore:           c.minScore,
		OutputFormat:       format,
		OutputWriter:       cmd.OutOrStdout(),
		OutputPath:         c.outputPath,
		ShowProgress:       !c.noProgress && service.IsInteractiveEnvironment(),
	})
	if err != nil {
		return err
	}

	var progress domain.ProgressManager
	if request.ShowProgress {
		progress = service.NewProgressManager("Scoring pairs")
	}

	useCase, err := app.NewMatrixUseCaseBuilder().
		WithService(service.NewMatrixService(progress)).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewMatrixFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create matrix use case: %w", err)
	}

	return useCase.Execute(cmd.Context(), *request)
}

// NewMatrixCmd creates and returns the matrix cobra command
func NewMatrixCmd() *cobra.Command {
	return NewMatrixCommand().CreateCobraCommand()
}
