package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gioco-play/easy-i18n/i18n"
	"github.com/pascalleclercq/google-upload-plugin/internal/ai"
	"github.com/pascalleclercq/google-upload-plugin/internal/log"
	"github.com/spf13/cobra"
)

var (
	// AI command flags
	aiLogFile  string
	aiQuestion string
	aiModule   string
)

// aiCmd represents the ai command
var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI diagnosis and Q&A for upload issues",
	Long: `Use AI to diagnose upload log files or ask questions about release uploads.

Examples:
  # Diagnose an upload log file
  googlecode-upload ai --log-file /tmp/googlecode-upload/googlecode-upload-20240101120000.log

  # Ask a question
  googlecode-upload ai --question "Why does the server answer 403?"`,
	RunE: runAI,
}

func init() {
	rootCmd.AddCommand(aiCmd)

	aiCmd.Flags().StringVarP(&aiLogFile, "log-file", "f", "", "Path to upload log file for diagnosis")
	aiCmd.Flags().StringVar(&aiQuestion, "question", "", "Ask a question about release uploads")
	aiCmd.Flags().StringVar(&aiModule, "module", log.ModuleUpload, "Log module to focus on: UPLOAD or CREDENTIALS")
}

func runAI(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if cfg.QwenAPIKey == "" {
		return fmt.Errorf("qwen api key required, please set 'qwenAPIKey' in config file")
	}

	// Check that exactly one option is provided
	if aiLogFile == "" && aiQuestion == "" {
		return fmt.Errorf("please specify either --log-file or --question")
	}
	if aiLogFile != "" && aiQuestion != "" {
		return fmt.Errorf("please specify only one of --log-file or --question")
	}

	client := ai.NewQwenClient(cfg.QwenAPIKey)
	if aiLogFile != "" {
		return diagnoseLogFile(cmd, client, aiLogFile)
	}
	return answerQuestion(cmd, client, aiQuestion)
}

// diagnoseLogFile diagnoses an upload log file
func diagnoseLogFile(cmd *cobra.Command, client *ai.QwenClient, logPath string) error {
	logVerbose("Reading log file: %s\n", logPath)

	content, err := os.ReadFile(logPath)
	if err != nil {
		return fmt.Errorf("failed to read log file: %v", err)
	}
	if len(content) == 0 {
		return fmt.Errorf("log file is empty")
	}

	logInfo("Analyzing log with AI...\n\n")

	module := strings.ToUpper(aiModule)
	suggestion, err := client.Diagnose(cmd.Context(), module, log.ExtractErrorSummary(module, string(content)))
	if err != nil {
		return err
	}
	printSuggestion(suggestion)
	return nil
}

// answerQuestion answers a question about release uploads
func answerQuestion(cmd *cobra.Command, client *ai.QwenClient, question string) error {
	logVerbose("Question: %s\n\n", question)

	answer, err := client.Ask(cmd.Context(), question)
	if err != nil {
		return err
	}

	fmt.Print(color.GreenString(i18n.Sprintf("AI Answer:\n")))
	fmt.Println(answer)
	return nil
}

func printSuggestion(suggestion string) {
	fmt.Print(color.YellowString(i18n.Sprintf("AI diagnosis suggestion:\n")))
	fmt.Println(color.YellowString(suggestion))
}
