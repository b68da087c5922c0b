package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pascalleclercq/google-upload-plugin/internal/config"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/i18n"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	langFlag string
	verbose  bool
	quiet    bool

	// Config object shared across commands
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "googlecode-upload",
	Short: "Google Code Upload - publish release files to a project hosting service",
	Long: `Google Code Upload sends a release file to a project's download area
with an authenticated multipart/form-data POST.

Examples:
  # Upload a file to the foo project
  googlecode-upload upload --project-name foo --file dist/foo-1.0.zip --summary "Release 1.0" --labels "Featured,Type-Archive"

  # Upload the artifact declared for a classifier
  googlecode-upload upload --project-name foo --artifact sources=target/foo-sources.jar --classifier sources

  # Show version
  googlecode-upload version`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize i18n, --lang wins over the detected locale
		i18n.InitAuto()
		i18n.SetLang(langFlag)

		if cfgFile != "" {
			var err error
			cfg, err = config.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
		} else {
			cfg = &config.Config{}
		}
		cfg.Quiet = quiet
		cfg.Verbose = verbose
		cfg.SetDefaults()

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "language: zh (Chinese) or en (English), auto-detect if unset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet mode (minimal output)")
}

// GetConfig returns the global config object
func GetConfig() *config.Config {
	return cfg
}
