package credentials

import (
	"context"
	"os"
	"strings"

	"github.com/alyu/configparser"
)

// SettingsFile reads credentials from an INI settings file with one section
// per server id:
//
//	[code.google.com]
//	username = alice
//	password = secret
type SettingsFile struct {
	Path string
}

// Resolve implements Resolver
func (s SettingsFile) Resolve(ctx context.Context, serverID string) (*Credentials, error) {
	if s.Path == "" {
		return nil, ErrNotFound
	}
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, ErrNotFound
	}

	configparser.Delimiter = "="
	config, err := configparser.Read(s.Path)
	if err != nil {
		return nil, err
	}
	section, err := config.Section(serverID)
	if err != nil {
		return nil, ErrNotFound
	}

	options := section.Options()
	username := strings.TrimSpace(options["username"])
	if username == "" {
		return nil, ErrNotFound
	}
	return &Credentials{
		Username: username,
		Password: strings.TrimSpace(options["password"]),
	}, nil
}
