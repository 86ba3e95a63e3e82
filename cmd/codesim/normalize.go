package main

import (
	"github.com/ludo-technologies/codesim/app"
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/service"
	"github.com/spf13/cobra"
)

// NormalizeCommand prints the normalized form or the token stream of a file
type NormalizeCommand struct {
	outputFlags
	tokensOnly bool
}

// CreateCobraCommand creates the cobra command for normalize, or for tokens
// when tokensOnly is set
func (c *NormalizeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print a Python file with user-defined names abstracted",
		Long: `Print a Python file with comments removed and every user-defined
variable, function and class name replaced by <VAR>, <FUNC> or <CLASS>.

This is the text the n-gram score is computed on.

Examples:
  codesim normalize solution.py
  codesim normalize --json solution.py`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}
	if c.tokensOnly {
		cmd.Use = "tokens FILE"
		cmd.Short = "Print the lexical tokens of a file"
		cmd.Long = `Print the lexical tokens of a file, one per line, after comments and
docstrings are removed. Works on any language.

This is the sequence the subsequence score is computed on.

Examples:
  codesim tokens solution.cpp
  codesim tokens --csv solution.py`
	}

	c.register(cmd)
	return cmd
}

func (c *NormalizeCommand) run(cmd *cobra.Command, args []string) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	loader := service.NewConfigurationLoaderWithFlags(config.NewFlagTrackerFromFlagSet(cmd.Flags()))
	format, err = loader.LoadOutputFormat(c.configFile, startDirFor(args[0]), format)
	if err != nil {
		return err
	}

	useCase := app.NewNormalizeUseCase(
		service.NewNormalizeService(),
		service.NewFileReader(),
		service.NewNormalizeFormatter(),
	).WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr()))

	request := domain.NormalizeRequest{
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   c.outputPath,
	}
	if c.tokensOnly {
		return useCase.TokensFile(cmd.Context(), args[0], request)
	}
	return useCase.NormalizeFile(cmd.Context(), args[0], request)
}

// NewNormalizeCmd creates and returns the normalize cobra command
func NewNormalizeCmd() *cobra.Command {
	return (&NormalizeCommand{}).CreateCobraCommand()
}

// NewTokensCmd creates and returns the tokens cobra command
func NewTokensCmd() *cobra.Command {
	return (&NormalizeCommand{tokensOnly: true}).CreateCobraCommand()
}
