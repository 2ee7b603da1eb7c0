package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rackiam/internal/config"
	"rackiam/internal/domain"
	"rackiam/internal/logging"
	"rackiam/internal/outputter"
)

type options struct {
	debug      bool
	definition string
	format     string
	output     string
	region     string
	accountID  string
	settings   config.Settings
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "rackiam",
		Short: "rackiam - IAM resources as CloudFormation",
		Long:  "Builds IAM roles, users, groups and policies from a YAML definition and renders them as CloudFormation resources",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initialize(opts)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging (verbose output)")
	rootCmd.PersistentFlags().StringVarP(&opts.definition, "file", "f", "", "Path to the YAML definition (defaults to the built-in example)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the definition as a CloudFormation template",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}
	renderCmd.Flags().StringVar(&opts.format, "format", "", "Output format: json or yaml (default from RACKIAM_FORMAT, else json)")
	renderCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the template to a file instead of stdout")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the definition without rendering it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	arnsCmd := &cobra.Command{
		Use:   "arns",
		Short: "List the ARN of every role, user, group and managed policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runARNs(cmd, opts)
		},
	}
	arnsCmd.Flags().StringVar(&opts.region, "region", "", "Region segment (default from RACKIAM_REGION)")
	arnsCmd.Flags().StringVar(&opts.accountID, "account-id", "", "Account segment (default from RACKIAM_ACCOUNT_ID)")

	rootCmd.AddCommand(renderCmd, validateCmd, arnsCmd)
	return rootCmd
}

func initialize(opts *options) {
	// Load .env file if present
	opts.settings = config.LoadSettings(".env")

	logging.SetLogLevel(opts.settings.LogLevel)
	if opts.debug {
		logging.SetLogLevel(logging.LogLevelDebug)
	}
}

func loadModel(opts *options) (*config.Model, error) {
	def, err := config.LoadDefinition(opts.definition)
	if err != nil {
		return nil, fmt.Errorf("error loading definition: %w", err)
	}
	model, err := config.Build(def)
	if err != nil {
		return nil, fmt.Errorf("error building model: %w", err)
	}
	return model, nil
}

func runRender(cmd *cobra.Command, opts *options) error {
	model, err := loadModel(opts)
	if err != nil {
		return err
	}

	tmpl, err := model.Template()
	if err != nil {
		return fmt.Errorf("error assembling template: %w", err)
	}

	format := opts.settings.Format
	if opts.format != "" {
		format = domain.OutputFormat(opts.format)
	}
	data, err := tmpl.Render(format)
	if err != nil {
		return err
	}

	if err := outputter.WriteTemplate(cmd.OutOrStdout(), opts.output, data); err != nil {
		return err
	}

	if opts.debug {
		fmt.Fprint(cmd.ErrOrStderr(), logging.GetMetrics().Summary())
	}
	return nil
}

func runValidate(cmd *cobra.Command, opts *options) error {
	model, err := loadModel(opts)
	if err != nil {
		return err
	}
	if err := model.Validate(); err != nil {
		return fmt.Errorf("definition is invalid: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Definition is valid")
	return nil
}

func runARNs(cmd *cobra.Command, opts *options) error {
	model, err := loadModel(opts)
	if err != nil {
		return err
	}

	region := opts.settings.Region
	if opts.region != "" {
		region = opts.region
	}
	accountID := opts.settings.AccountID
	if opts.accountID != "" {
		accountID = opts.accountID
	}

	outputter.DisplayARNs(cmd.OutOrStdout(), model.ARNs(region, accountID))
	return nil
}
