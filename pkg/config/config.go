package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Defaulter is implemented by config structs that fill unset fields after parsing.
type Defaulter interface {
	SetDefaults()
}

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are ignored; variables already set are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// FromFile read and parse config from given path and apply environment on it
func FromFile(filePath string, cfg any) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return FromBytes(filePath, raw, cfg)
}

// FromBytes renders content as a text/template over the environment, expands $VARS and
// unmarshals the YAML result into cfg.
func FromBytes(name string, content []byte, cfg any) error {
	envMap := make(map[string]string)
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}

	t, err := template.New(name).Option("missingkey=zero").Parse(string(content))
	if err != nil {
		return err
	}
	strWriter := &strings.Builder{}
	if err := t.Execute(strWriter, envMap); err != nil {
		return err
	}

	expanded := os.ExpandEnv(strWriter.String())
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return err
	}

	if d, ok := cfg.(Defaulter); ok {
		d.SetDefaults()
	}
	return nil
}
