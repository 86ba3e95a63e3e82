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

// SubmitCommand uploads files to the MOSS service
type SubmitCommand struct {
	outputFlags

	includePatterns []string
	excludePatterns []string

	server         string
	port           int
	language       string
	maxMatches     int
	showCount      int
	directory      bool
	excludeMatches bool
	comment        string
	timeout        int
}

// NewSubmitCommand creates a new submit command
func NewSubmitCommand() *SubmitCommand {
	return &SubmitCommand{
		server:     constants.DefaultMossServer,
		port:       constants.DefaultMossPort,
		language:   constants.DefaultMossLanguage,
		maxMatches: constants.DefaultMossMaxMatches,
		showCount:  constants.DefaultMossShowCount,
		timeout:    constants.DefaultTimeoutSeconds,
	}
}

// CreateCobraCommand creates the cobra command for submit
func (c *SubmitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit PATH...",
		Short: "Submit files to MOSS and print the report URL",
		Long: fmt.Sprintf(`Submit files to the MOSS similarity service in one session and print
the URL of the resulting report.

The MOSS user id is read from %s, either from the environment or
from a .env file in the working directory.

Examples:
  # Submit every C file under labs/
  codesim submit --include '**/*.c' labs/

  # Python, grouped by directory, with a report title
  codesim submit --language python --directory --comment "lab 3" submissions/`, constants.EnvMossUserID),
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}

	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil, "Glob patterns of files to include from directories")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "Glob patterns of files to exclude")
	cmd.Flags().StringVar(&c.server, "server", c.server, "MOSS server host")
	cmd.Flags().IntVar(&c.port, "port", c.port, "MOSS server port")
	cmd.Flags().StringVarP(&c.language, "language", "l", c.language, "MOSS language tag")
	cmd.Flags().IntVarP(&c.maxMatches, "max-matches", "m", c.maxMatches, "Ignore passages that appear in more than this many files")
	cmd.Flags().IntVar(&c.showCount, "show", c.showCount, "Number of matching pairs in the report")
	cmd.Flags().BoolVarP(&c.directory, "directory", "d", false, "Treat each directory as one submission")
	cmd.Flags().BoolVarP(&c.excludeMatches, "exclude-matches", "x", false, "Enable the service's experimental exclusion mode")
	cmd.Flags().StringVar(&c.comment, "comment", "", "Report title")
	cmd.Flags().IntVar(&c.timeout, "timeout", c.timeout, "Timeout in seconds for the session (0 = none)")
	c.register(cmd)

	return cmd
}

func (c *SubmitCommand) run(cmd *cobra.Command, args []string) error {
	userID, err := config.LoadUserID()
	if err != nil {
		return err
	}

	format, err := c.format()
	if err != nil {
		return err
	}

	loader := service.NewConfigurationLoaderWithFlags(config.NewFlagTrackerFromFlagSet(cmd.Flags()))
	request, err := loader.LoadSubmitRequest(c.configFile, startDirFor(args[0]), &domain.SubmitRequest{
		UserID:         userID,
		Server:         c.server,
		Port:           c.port,
		Language:       c.language,
		MaxMatches:     c.maxMatches,
		ShowCount:      c.showCount,
		Directory:      c.directory,
		ExcludeMatches: c.excludeMatches,
		Comment:        c.comment,
		TimeoutSeconds: c.timeout,
		OutputFormat:   format,
		OutputWriter:   cmd.OutOrStdout(),
		OutputPath:     c.outputPath,
	})
	if err != nil {
		return err
	}

	useCase := app.NewSubmitUseCase(
		service.NewSubmitService(nil),
		service.NewFileReader(),
		service.NewSubmitFormatter(),
	).WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr()))

	return useCase.SubmitFiles(cmd.Context(), args, c.includePatterns, c.excludePatterns, *request)
}

// NewSubmitCmd creates and returns the submit cobra command
func NewSubmitCmd() *cobra.Command {
	return NewSubmitCommand().CreateCobraCommand()
}
