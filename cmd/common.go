package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gioco-play/easy-i18n/i18n"
	"github.com/pascalleclercq/google-upload-plugin/pkg/version"
)

// outputHeader displays the tool header
func outputHeader() {
	if cfg != nil && cfg.Quiet {
		return
	}
	bar := strings.Repeat("#", 80)
	title := version.Name
	subtitle := "Release file uploader"
	ver := "v" + version.Get()
	timeStr := time.Now().Format("2006-01-02 15:04:05")

	i18n.Printf("%s\n", bar)
	// center display
	pad := (80 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Printf("%s%s\n", strings.Repeat(" ", pad), title)
	pad2 := (80 - len(subtitle)) / 2
	if pad2 < 0 {
		pad2 = 0
	}
	fmt.Printf("%s%s\n", strings.Repeat(" ", pad2), subtitle)
	fmt.Printf("%sVersion: %s    Time: %s\n", strings.Repeat(" ", 10), ver, timeStr)
	i18n.Printf("%s\n", bar)
}

// logInfo prints unless --quiet is set
func logInfo(format string, args ...interface{}) {
	if cfg != nil && cfg.Quiet {
		return
	}
	i18n.Printf(format, args...)
}

// logVerbose prints only with --verbose
func logVerbose(format string, args ...interface{}) {
	if cfg != nil && cfg.Verbose {
		i18n.Printf(format, args...)
	}
}

func printError(err error) {
	fmt.Fprint(os.Stderr, color.RedString(i18n.Sprintf("Error: %v\n", err)))
}
