package config

import (
	"github.com/pascalleclercq/google-upload-plugin/internal/artifact"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/format"
)

// Flags represents command line flags of the upload command
type Flags struct {
	ProjectName                  string
	UploadURL                    string
	FileName                     string
	TargetFileName               string
	Summary                      string
	Labels                       string
	Classifier                   string
	Artifacts                    []string // classifier=path
	IgnoreSSLCertificateHostname bool
	IOLimitStr                   string
	Timeout                      int
	ServerID                     string
	Username                     string
	Password                     string
	SettingsFile                 string
	EnvFile                      string
	AWSSecretID                  string
	LogDir                       string
	LogFileName                  string
	AIDiagnoseFlag               string
	AutoYes                      bool
}

// EffectiveValues represents values that only live for the current run
type EffectiveValues struct {
	AIDiagnoseFlag string
	AutoYes        bool
}

// MergeFlags merges command line flags into config file values.
// Flags win over the config file, the config file wins over defaults.
func MergeFlags(cfg *Config, flags *Flags) (*Config, *EffectiveValues, error) {
	override(&cfg.ProjectName, flags.ProjectName)
	override(&cfg.UploadURL, flags.UploadURL)
	override(&cfg.FileName, flags.FileName)
	override(&cfg.TargetFileName, flags.TargetFileName)
	override(&cfg.Summary, flags.Summary)
	override(&cfg.Labels, flags.Labels)
	override(&cfg.Classifier, flags.Classifier)
	override(&cfg.ServerID, flags.ServerID)
	override(&cfg.Username, flags.Username)
	override(&cfg.Password, flags.Password)
	override(&cfg.SettingsFile, flags.SettingsFile)
	override(&cfg.EnvFile, flags.EnvFile)
	override(&cfg.AWSSecretID, flags.AWSSecretID)
	override(&cfg.LogDir, flags.LogDir)
	override(&cfg.LogFileName, flags.LogFileName)

	if flags.IgnoreSSLCertificateHostname {
		cfg.IgnoreSSLCertificateHostname = true
	}

	// Artifacts given on the command line replace the configured list
	if len(flags.Artifacts) > 0 {
		artifacts := make([]artifact.Artifact, 0, len(flags.Artifacts))
		for _, spec := range flags.Artifacts {
			a, err := artifact.ParseSpec(spec)
			if err != nil {
				return nil, nil, err
			}
			artifacts = append(artifacts, a)
		}
		cfg.Artifacts = artifacts
	}

	// Parse ioLimit from command line or config
	if flags.IOLimitStr != "" {
		parsedLimit, err := format.ParseRateLimit(flags.IOLimitStr)
		if err != nil {
			return nil, nil, errors.NewParsingError("--io-limit", flags.IOLimitStr, err)
		}
		cfg.IOLimit = parsedLimit
	}

	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}

	cfg.SetDefaults()

	effective := &EffectiveValues{
		AIDiagnoseFlag: flags.AIDiagnoseFlag,
		AutoYes:        flags.AutoYes,
	}
	return cfg, effective, nil
}

func override(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}
