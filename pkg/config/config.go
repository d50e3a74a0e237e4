// Package config loads the user-configurable run thresholds (spec §2,
// §4.2, §4.6, §4.7) from a YAML file. Grounded on the teacher's
// pkg/validate.LoadProfileFromFile: read-then-unmarshal onto a
// defaults-seeded struct, wrapped with the category this repo uses
// instead of the teacher's bare fmt.Errorf.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/regula/pkg/errtax"
	"github.com/coolbeans/regula/pkg/types"
)

// Load reads a YAML run-configuration file and overlays it onto the
// specification defaults. An empty path or a missing file is not an
// error: the run proceeds on pure defaults (spec §2).
func Load(path string) (*types.RunConfig, error) {
	cfg := types.DefaultRunConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errtax.IO(path, fmt.Errorf("read run config: %w", err))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errtax.DataIntegrity(path, fmt.Errorf("parse run config YAML: %w", err))
	}
	return cfg, nil
}

// LoadWordList reads a newline-delimited term list (forbidden terms or
// internal phrases, spec §4.10). Blank lines and lines starting with '#'
// are skipped. A missing file yields an empty list rather than an error:
// the quality gate just enforces nothing for that check.
func LoadWordList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errtax.IO(path, fmt.Errorf("open word list: %w", err))
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errtax.IO(path, fmt.Errorf("scan word list: %w", err))
	}
	return terms, nil
}
