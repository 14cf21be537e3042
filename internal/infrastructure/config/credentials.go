package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/doeshing/sensi-go/internal/ports"
)

// EnvCredentials resolves secrets from the process environment.
// Credentials are never read from the YAML file or compiled into the binary.
type EnvCredentials struct{}

// Lookup returns the value of the named environment variable.
func (EnvCredentials) Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// LoadDotEnv primes the environment from a .env file (SENSI_ENV_FILE, or ./.env).
// Variables already set in the environment win. A missing file is not an error.
func LoadDotEnv() error {
	path := os.Getenv("SENSI_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

var _ ports.CredentialSource = EnvCredentials{}
