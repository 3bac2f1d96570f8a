package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// LoadSecrets fetches a Secrets Manager secret holding a JSON object
// of env-var names to values (the console's key/value secret shape)
// and exports each pair into the environment. Variables already set
// win, so local overrides survive.
func LoadSecrets(ctx context.Context, cfg aws.Config, secretID string, log *slog.Logger) error {
	client := secretsmanager.NewFromConfig(cfg)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &secretID,
	})
	if err != nil {
		return fmt.Errorf("get secret %s: %w", secretID, err)
	}
	if out.SecretString == nil {
		return fmt.Errorf("secret %s has no string payload", secretID)
	}

	return setEnvFromJSON(*out.SecretString, log)
}

func setEnvFromJSON(payload string, log *slog.Logger) error {
	var kv map[string]string
	if err := json.Unmarshal([]byte(payload), &kv); err != nil {
		return fmt.Errorf("parse secret as JSON object: %w", err)
	}

	for key, value := range kv {
		if os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, value)
		log.Info("Loaded secret into environment", "key", key)
	}
	return nil
}
