// Package credentials resolves the username and password used for the
// upload's Basic authentication, keyed by a server identifier.
package credentials

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
)

// ErrNotFound is returned by a Resolver that holds nothing for the server id
var ErrNotFound = stderrors.New("credentials not found")

// Credentials is a username/password pair
type Credentials struct {
	Username string
	Password string
}

// String never includes the password
func (c *Credentials) String() string {
	return "username=" + c.Username
}

// Resolver looks up credentials for a server id
type Resolver interface {
	Resolve(ctx context.Context, serverID string) (*Credentials, error)
}

// Logger receives one line per resolver attempt
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Static returns fixed credentials, typically from flags or the config file
type Static struct {
	Username string
	Password string
}

// Resolve implements Resolver
func (s Static) Resolve(ctx context.Context, serverID string) (*Credentials, error) {
	if s.Username == "" {
		return nil, ErrNotFound
	}
	return &Credentials{Username: s.Username, Password: s.Password}, nil
}

// Env reads <Prefix>_USERNAME and <Prefix>_PASSWORD from the environment
type Env struct {
	Prefix string
	lookup func(string) (string, bool)
}

// NewEnv creates an environment resolver for the given prefix
func NewEnv(prefix string) *Env {
	return &Env{Prefix: prefix, lookup: os.LookupEnv}
}

// Resolve implements Resolver
func (e *Env) Resolve(ctx context.Context, serverID string) (*Credentials, error) {
	prefix := strings.ToUpper(strings.TrimSuffix(e.Prefix, "_"))
	username, ok := e.lookup(prefix + "_USERNAME")
	if !ok || username == "" {
		return nil, ErrNotFound
	}
	password, _ := e.lookup(prefix + "_PASSWORD")
	return &Credentials{Username: username, Password: password}, nil
}

// Chain tries each resolver in order and returns the first hit
type Chain struct {
	resolvers []namedResolver
	logger    Logger
}

type namedResolver struct {
	name     string
	resolver Resolver
}

// NewChain creates an empty resolver chain
func NewChain(logger Logger) *Chain {
	return &Chain{logger: logger}
}

// Add appends a resolver under a display name used in log lines
func (c *Chain) Add(name string, r Resolver) *Chain {
	c.resolvers = append(c.resolvers, namedResolver{name: name, resolver: r})
	return c
}

// Resolve implements Resolver. A resolver answering ErrNotFound is skipped,
// any other error stops the chain.
func (c *Chain) Resolve(ctx context.Context, serverID string) (*Credentials, error) {
	for _, nr := range c.resolvers {
		creds, err := nr.resolver.Resolve(ctx, serverID)
		if stderrors.Is(err, ErrNotFound) {
			c.debugf("No credentials for server %s in %s", serverID, nr.name)
			continue
		}
		if err != nil {
			c.debugf("Credential lookup in %s failed: %v", nr.name, err)
			return nil, errors.NewCredentialsError("Failed to resolve credentials from "+nr.name, err)
		}
		c.debugf("Credentials for server %s resolved from %s (%s)", serverID, nr.name, creds)
		return creds, nil
	}
	return nil, errors.NewCredentialsError("No credentials configured for server "+serverID, ErrNotFound)
}

func (c *Chain) debugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
