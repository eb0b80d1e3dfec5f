// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gallery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSeed reads gallery records from a JSON or YAML file, chosen by extension.
func LoadSeed(path string) ([]*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gallery: read seed: %w", err)
	}
	return DecodeSeed(raw, filepath.Ext(path))
}

// DecodeSeed decodes a list of records. ext is ".json", ".yaml" or ".yml".
func DecodeSeed(raw []byte, ext string) ([]*Record, error) {
	var records []*Record

	switch strings.ToLower(ext) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(raw))
		if err := decoder.Decode(&records); err != nil {
			return nil, fmt.Errorf("gallery: decode json seed: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("gallery: decode yaml seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("gallery: unsupported seed format %q", ext)
	}

	return records, nil
}
