package clients

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	apiKeyEnv      = "OPENAI_API_KEY"
	defaultKeyFile = ".openai/api_key"
)

// resolveAPIKey resolves the bearer token lazily at call time. Precedence:
// the key passed to NewClient, then the environment variable, then the key
// file under the user home directory (or the path set with WithKeyFile).
// When none yields a key the call fails with ErrAuthenticationMissing and no
// network attempt is made.
func (c *Client) resolveAPIKey() (string, error) {
	if c.apiKey != "" {
		return c.apiKey, nil
	}
	if key := strings.TrimSpace(os.Getenv(apiKeyEnv)); key != "" {
		return key, nil
	}
	path := c.keyFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", ErrAuthenticationMissing
		}
		path = filepath.Join(home, defaultKeyFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ErrAuthenticationMissing
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", ErrAuthenticationMissing
	}
	return key, nil
}
