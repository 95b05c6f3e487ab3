package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const credFileName = "credentials.json"

// credentials is ~/.items/credentials.json. It is only read; the token it
// holds is used when neither the config file, ITEMS_API_TOKEN nor --token
// provide one.
type credentials struct {
	Token string `json:"token"`
}

func credFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

// fileToken returns "" when there is no credentials file.
func fileToken() (string, error) {
	p, err := credFilePath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read credentials: %w", err)
	}
	var c credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return "", fmt.Errorf("parse credentials: %w", err)
	}
	return stripBearer(strings.TrimSpace(c.Token)), nil
}
