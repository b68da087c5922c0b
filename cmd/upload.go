package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gioco-play/easy-i18n/i18n"
	"github.com/pascalleclercq/google-upload-plugin/internal/ai"
	"github.com/pascalleclercq/google-upload-plugin/internal/config"
	"github.com/pascalleclercq/google-upload-plugin/internal/credentials"
	"github.com/pascalleclercq/google-upload-plugin/internal/log"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/format"
	"github.com/pascalleclercq/google-upload-plugin/internal/uploader"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var uploadFlags config.Flags

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a release file to the project download area",
	Long: `Upload a file with an authenticated multipart/form-data POST.

The endpoint is https://{project}.googlecode.com/files unless --upload-url is set.
When --target-file-name is empty the file is taken from the --artifact entry whose
classifier matches --classifier, and the upload is skipped if none matches.

Credentials are looked up in order: --username/--password (or the config file),
the [server-id] section of --settings-file, GOOGLECODE_USERNAME/GOOGLECODE_PASSWORD,
then the AWS Secrets Manager secret given by --aws-secret-id.

Examples:
  googlecode-upload upload --project-name foo --file dist/foo-1.0.zip \
      --summary "Release 1.0" --labels "Featured, Type-Archive"

  # Self-hosted endpoint whose certificate names another host
  googlecode-upload upload --upload-url https://files.example.org/upload \
      --file dist/foo-1.0.zip --ignore-ssl-certificate-hostname`,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	f := uploadCmd.Flags()

	// Destination
	f.StringVar(&uploadFlags.ProjectName, "project-name", "", "Project whose download area receives the file")
	f.StringVar(&uploadFlags.UploadURL, "upload-url", "", "Upload endpoint, overrides the project-derived URL")

	// Content
	f.StringVar(&uploadFlags.FileName, "file", "", "Local file to upload")
	f.StringVar(&uploadFlags.TargetFileName, "target-file-name", "", "File name on the server; without --classifier it defaults to the base name of --file")
	f.StringVar(&uploadFlags.Summary, "summary", "", "Summary shown for the download")
	f.StringVar(&uploadFlags.Labels, "labels", "", "Comma separated labels (e.g. 'Featured,Type-Archive')")
	f.StringVar(&uploadFlags.Classifier, "classifier", "", "Classifier of the artifact to upload when no target is given")
	f.StringArrayVar(&uploadFlags.Artifacts, "artifact", nil, "Declared artifact as classifier=path, repeatable")

	// Transport
	f.BoolVar(&uploadFlags.IgnoreSSLCertificateHostname, "ignore-ssl-certificate-hostname", false, "Accept a trusted certificate issued for another hostname")
	f.StringVar(&uploadFlags.IOLimitStr, "io-limit", "", "IO bandwidth limit (e.g., '10MB/s', -1 for unlimited)")
	f.IntVar(&uploadFlags.Timeout, "timeout", 0, "Connect timeout in seconds (default 60, max 3600)")

	// Credentials
	f.StringVar(&uploadFlags.ServerID, "server-id", "", "Settings section holding the credentials (default code.google.com)")
	f.StringVar(&uploadFlags.Username, "username", "", "Upload username")
	f.StringVar(&uploadFlags.Password, "password", "", "Upload password, asked from the tty when empty")
	f.StringVar(&uploadFlags.SettingsFile, "settings-file", "", "INI file with a [server-id] section")
	f.StringVar(&uploadFlags.EnvFile, "env-file", "", ".env file loaded before resolving credentials")
	f.StringVar(&uploadFlags.AWSSecretID, "aws-secret-id", "", "AWS Secrets Manager secret holding {\"username\",\"password\"}")

	// Logs and diagnosis
	f.StringVar(&uploadFlags.LogDir, "log-dir", "", "Directory for run logs")
	f.StringVar(&uploadFlags.LogFileName, "log-file", "", "Run log file name")
	f.StringVar(&uploadFlags.AIDiagnoseFlag, "ai-diagnose", "", "AI diagnosis on upload failure: on/off. If not set, prompt interactively.")
	f.BoolVarP(&uploadFlags.AutoYes, "yes", "y", false, "Answer yes to prompts")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, effective, err := config.MergeFlags(GetConfig(), &uploadFlags)
	if err != nil {
		return err
	}
	// Without a classifier the file keeps its own name on the server
	if cfg.TargetFileName == "" && cfg.Classifier == "" && cfg.FileName != "" {
		cfg.TargetFileName = filepath.Base(cfg.FileName)
	}
	if err := config.LoadEnvFile(cfg.EnvFile); err != nil {
		return err
	}

	outputHeader()

	logCtx, err := log.NewLogContext(cfg.LogDir, cfg.LogFileName)
	if err != nil {
		return errors.NewIOError("Failed to create log file", err)
	}
	defer logCtx.Close()
	logCtx.SetVerbose(cfg.Verbose)
	logInfo("Log file: %s\n", logCtx.GetFileName())

	req := &uploader.Request{
		SourceFile:                 cfg.FileName,
		TargetFileName:             cfg.TargetFileName,
		Summary:                    cfg.Summary,
		Labels:                     uploader.ParseLabels(cfg.Labels),
		ProjectName:                cfg.ProjectName,
		UploadURL:                  cfg.UploadURL,
		IgnoreHostnameVerification: cfg.IgnoreSSLCertificateHostname,
		Classifier:                 cfg.Classifier,
		Artifacts:                  cfg.Artifacts,
		RateLimit:                  cfg.GetRateLimit(),
	}
	if req.SourceFile == "" {
		req.SourceFile = req.TargetFileName
	}

	up := uploader.New(
		uploader.WithLogger(logCtx.ForModule(log.ModuleUpload)),
		uploader.WithDialTimeout(time.Duration(cfg.Timeout)*time.Second),
	)

	// Nothing to upload: skip before asking for credentials
	if req.Target() == "" {
		result, err := up.Upload(cmd.Context(), req)
		if err != nil {
			return err
		}
		if result.Skipped {
			logInfo("%s", skipMessage(cfg.Classifier))
			logCtx.MarkSuccess()
		}
		return nil
	}

	// No endpoint means no upload: fail before asking for credentials
	endpoint, err := uploader.ResolveEndpoint(req.UploadURL, req.ProjectName)
	if err != nil {
		printSummary(req, nil, err)
		return finishWithError(cmd, cfg, effective, logCtx, log.ModuleUpload, err)
	}

	creds, err := resolveCredentials(cmd, cfg, logCtx)
	if err != nil {
		return finishWithError(cmd, cfg, effective, logCtx, log.ModuleCredentials, err)
	}
	req.Username = creds.Username
	req.Password = creds.Password

	logInfo("Uploading %s to %s...\n", req.Target(), endpoint)

	result, err := up.Upload(cmd.Context(), req)
	if err != nil {
		printSummary(req, result, err)
		return finishWithError(cmd, cfg, effective, logCtx, log.ModuleUpload, err)
	}

	logCtx.MarkSuccess()
	printSummary(req, result, nil)
	logInfo("Upload completed in %s (%s sent)\n", format.Duration(result.Duration), format.Bytes(result.BytesSent))
	return nil
}

// resolveCredentials walks the credential sources in precedence order.
// An empty password is asked from the terminal when one is attached.
func resolveCredentials(cmd *cobra.Command, cfg *config.Config, logCtx *log.LogContext) (*credentials.Credentials, error) {
	logVerbose("Resolving credentials for server %s\n", cfg.ServerID)

	chain := credentials.NewChain(logCtx.ForModule(log.ModuleCredentials)).
		Add("flags", credentials.Static{Username: cfg.Username, Password: cfg.Password})
	if cfg.SettingsFile != "" {
		chain.Add("settings "+cfg.SettingsFile, credentials.SettingsFile{Path: cfg.SettingsFile})
	}
	chain.Add("env "+cfg.EnvPrefix, credentials.NewEnv(cfg.EnvPrefix))
	if cfg.AWSSecretID != "" {
		sm, err := credentials.NewSecretsManagerFromEnv(cmd.Context(), cfg.AWSSecretID)
		if err != nil {
			return nil, errors.NewCredentialsError("AWS Secrets Manager is not available", err)
		}
		chain.Add("secretsmanager "+cfg.AWSSecretID, sm)
	}

	creds, err := chain.Resolve(cmd.Context(), cfg.ServerID)
	if err != nil {
		return nil, err
	}

	if creds.Password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		i18n.Printf("Please input password for %s: ", creds.Username)
		pwd, err := term.ReadPassword(int(os.Stdin.Fd()))
		i18n.Printf("\n")
		if err != nil {
			return nil, errors.NewCredentialsError("Failed to read password", err)
		}
		creds.Password = string(pwd)
	}
	return creds, nil
}

func skipMessage(classifier string) string {
	if classifier == "" {
		return i18n.Sprintf("Upload skipped: no target file name\n")
	}
	return i18n.Sprintf("Upload skipped: no target file resolved for classifier '%s'\n", classifier)
}

func printSummary(req *uploader.Request, result *uploader.Result, err error) {
	if cfg.Quiet {
		return
	}
	rows := []format.Row{
		{Item: i18n.Sprintf("Source"), Message: req.SourceFile, OK: true},
		{Item: i18n.Sprintf("Target"), Message: req.Target(), OK: true},
	}
	if result != nil {
		rows = append(rows,
			format.Row{Item: i18n.Sprintf("Endpoint"), Message: result.Endpoint, OK: true},
			format.Row{Item: i18n.Sprintf("Status"), Message: result.Status, Suggest: suggestion(err), OK: err == nil},
		)
	} else if err != nil {
		rows = append(rows, format.Row{Item: i18n.Sprintf("Status"), Message: firstLine(err.Error()), Suggest: suggestion(err), OK: false})
	}
	format.Table(rows)
}

func suggestion(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.IsType(err, errors.ErrorTypeConfig):
		return i18n.Sprintf("Set --project-name or --upload-url")
	case errors.IsType(err, errors.ErrorTypeCredentials):
		return i18n.Sprintf("Check username and password for the upload server")
	case strings.Contains(err.Error(), "Failed to open source file"):
		return i18n.Sprintf("Check the source file path and permissions")
	case strings.Contains(err.Error(), "HTTP 401"), strings.Contains(err.Error(), "HTTP 403"):
		return i18n.Sprintf("Check username and password for the upload server")
	default:
		return i18n.Sprintf("Check network connectivity and TLS settings")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// finishWithError reports err, offers AI diagnosis of the run log and returns err
func finishWithError(cmd *cobra.Command, cfg *config.Config, effective *config.EffectiveValues, logCtx *log.LogContext, module string, err error) error {
	logCtx.WriteLog(module, "%v", err)
	i18n.Printf("You can check the log file for details: %s\n", logCtx.GetFileName())

	switch effective.AIDiagnoseFlag {
	case "off":
		return err
	case "on":
		if cfg.QwenAPIKey == "" {
			i18n.Printf("Qwen API Key is required for AI diagnosis. Please set it in config.\n")
			return err
		}
	default:
		if cfg.QwenAPIKey == "" {
			return err
		}
		if !effective.AutoYes {
			var input string
			i18n.Printf("Would you like to use AI diagnosis? (y/n): ")
			fmt.Scanln(&input)
			if input != "y" && input != "Y" && input != "yes" && input != "Yes" {
				return err
			}
		}
	}

	content, readErr := logCtx.Content()
	if readErr != nil {
		content = err.Error()
	}
	summary := log.ExtractErrorSummary(module, content)
	suggestion, diagErr := ai.NewQwenClient(cfg.QwenAPIKey).Diagnose(cmd.Context(), module, summary)
	if diagErr != nil {
		i18n.Printf("AI diagnosis failed: %v\n", diagErr)
	} else {
		printSuggestion(suggestion)
	}
	return err
}
