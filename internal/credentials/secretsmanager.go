package credentials

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

// SecretsAPI is the part of the Secrets Manager client the resolver needs
type SecretsAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManager reads a JSON secret {"username": "...", "password": "..."}.
// The secret id defaults to the server id.
type SecretsManager struct {
	api      SecretsAPI
	secretID string
}

// NewSecretsManager creates a resolver backed by the given API client
func NewSecretsManager(api SecretsAPI, secretID string) *SecretsManager {
	return &SecretsManager{api: api, secretID: secretID}
}

// NewSecretsManagerFromEnv loads the default AWS configuration (env, shared
// config, instance role) and creates a resolver from it
func NewSecretsManagerFromEnv(ctx context.Context, secretID string) (*SecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSecretsManager(secretsmanager.NewFromConfig(cfg), secretID), nil
}

type secretPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Resolve implements Resolver
func (s *SecretsManager) Resolve(ctx context.Context, serverID string) (*Credentials, error) {
	id := s.secretID
	if id == "" {
		id = serverID
	}

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		var apiErr smithy.APIError
		if stderrors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get secret %s: %w", id, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", id)
	}

	var payload secretPayload
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &payload); err != nil {
		return nil, fmt.Errorf("secret %s is not a username/password JSON document: %w", id, err)
	}
	if payload.Username == "" {
		return nil, ErrNotFound
	}
	return &Credentials{Username: payload.Username, Password: payload.Password}, nil
}
