// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/target-screener/pkg/types"
)

// WriteResultFile saves a screening result to a YAML file. The file is
// self-contained: it carries the query that produced it, so a run can be
// reviewed or re-executed later without the original command line.
func WriteResultFile(path string, res *types.Result) error {
	data, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result file: %w", err)
	}
	return nil
}

// ReadResultFile loads a previously saved screening result from disk.
func ReadResultFile(path string) (*types.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var res types.Result
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &res, nil
}
