package envutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFileType is returned when the file extension is not recognized.
var ErrUnknownFileType = errors.New("env file doesn't have a known file suffix")

// LoadEnvFile loads environment variables from a file and returns them as a map.
// The file format is picked from the file extension:
//   - .env files are parsed as key=value pairs (one per line)
//   - .json files are expected to have an "env" field containing string key-value pairs
//   - .yml/.yaml files are expected to have an "env" field containing string key-value pairs
func LoadEnvFile(path string) (map[string]string, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(fileInfo.Name())

	switch {
	case strings.HasSuffix(name, ".env"):
		return godotenv.Read(path)
	case strings.HasSuffix(name, ".json"):
		return loadJSONFile(path)
	case strings.HasSuffix(name, ".yml"), strings.HasSuffix(name, ".yaml"):
		return loadYAMLFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFileType, fileInfo.Name())
	}
}

// Apply loads path and exports its variables into the process environment.
// Variables already set in the environment win unless override is true.
// It returns the number of variables written.
func Apply(path string, override bool) (int, error) {
	vars, err := LoadEnvFile(path)
	if err != nil {
		return 0, err
	}

	written := 0

	for key, value := range vars {
		if _, exists := os.LookupEnv(key); exists && !override {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return written, fmt.Errorf("setting %s: %w", key, err)
		}

		written++
	}

	return written, nil
}

type jsonEnvFile struct {
	Env map[string]string `json:"env"`
}

func loadJSONFile(path string) (map[string]string, error) {
	bts, err := os.ReadFile(path) // #nosec G304 -- path is the intended file to load
	if err != nil {
		return nil, err
	}

	out := &jsonEnvFile{}
	if err := json.Unmarshal(bts, out); err != nil {
		return nil, err
	}

	return out.Env, nil
}

type yamlEnvFile struct {
	Env map[string]string `yaml:"env"`
}

func loadYAMLFile(path string) (map[string]string, error) {
	bts, err := os.ReadFile(path) // #nosec G304 -- path is the intended file to load
	if err != nil {
		return nil, err
	}

	env := &yamlEnvFile{}
	if err := yaml.Unmarshal(bts, env); err != nil {
		return nil, err
	}

	return env.Env, nil
}
