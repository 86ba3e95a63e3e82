package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/internal/logger"
	"github.com/ludo-technologies/codesim/internal/version"
	"github.com/ludo-technologies/codesim/service"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the codesim command tree
func NewRootCmd() *cobra.Command {
	var verbose, quiet bool

	rootCmd := &cobra.Command{
		Use:   "codesim",
		Short: "Source code similarity scoring",
		Long: `codesim scores how similar two pieces of source code are.

It reports two independent metrics:
  • Subsequence similarity over lexical tokens (any language)
  • N-gram Jaccard over Python code with identifiers normalized,
    which ignores renamed variables, functions and classes

It can also score every pair in a directory tree and submit files to
the MOSS plagiarism detection service.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.LevelFor(verbose, quiet))
			config.LoadEnv()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewMatrixCmd())
	rootCmd.AddCommand(NewNormalizeCmd())
	rootCmd.AddCommand(NewTokensCmd())
	rootCmd.AddCommand(NewSubmitCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// printError writes err with its category and recovery suggestions
func printError(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %s\n", categorized.Message)
	if categorized.Message != err.Error() {
		fmt.Fprintf(w, "  %v\n", err)
	}
	suggestions := categorizer.GetRecoverySuggestions(categorized.Category)
	if len(suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range suggestions {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
