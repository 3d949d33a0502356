// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/dirmirror/pkg/fsys"
	"gitlab.com/tozd/go/errors"
)

// DefaultLogFile is used when a job does not name a log file.
const DefaultLogFile = "dirmirror.log"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the config from bytes without validating it
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config describes one mirror job
type Config struct {
	Source             string   `json:"source" yaml:"source" hcl:"source,optional"`
	Destination        string   `json:"destination" yaml:"destination" hcl:"destination,optional"`
	LogFile            string   `json:"log_file,omitempty" yaml:"log_file,omitempty" hcl:"log_file,optional"`
	Exclude            []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	RecursiveFilePrune bool     `json:"recursive_file_prune,omitempty" yaml:"recursive_file_prune,omitempty" hcl:"recursive_file_prune,optional"`

	// directory relative paths are resolved against; empty means the working directory
	base string
}

// 🎯 LoadConfig loads a job file from the local disk
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	return Load(ctx, fsys.NewOS(), path)
}

// 🎯 Load loads a job file from fs
func Load(ctx context.Context, fs fsys.FS, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.base = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("job", cfg.String()).Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks the job and normalizes its paths. Source, destination
// and log file become absolute and cleaned.
func (cfg *Config) Validate() error {
	if cfg.Source == "" {
		return errors.Errorf("source is required")
	}
	if cfg.Destination == "" {
		return errors.Errorf("destination is required")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	var err error
	if cfg.Source, err = cfg.resolve(cfg.Source); err != nil {
		return errors.Errorf("resolving source: %w", err)
	}
	if cfg.Destination, err = cfg.resolve(cfg.Destination); err != nil {
		return errors.Errorf("resolving destination: %w", err)
	}
	if cfg.LogFile, err = cfg.resolve(cfg.LogFile); err != nil {
		return errors.Errorf("resolving log file: %w", err)
	}

	if cfg.Source == cfg.Destination {
		return errors.Errorf("source and destination are the same directory: %s", cfg.Source)
	}
	if within(cfg.Source, cfg.Destination) {
		return errors.Errorf("destination %s is inside source %s", cfg.Destination, cfg.Source)
	}
	// the directory pruner would delete the source as an orphan of the destination
	if within(cfg.Destination, cfg.Source) {
		return errors.Errorf("source %s is inside destination %s", cfg.Source, cfg.Destination)
	}

	for _, p := range cfg.Exclude {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid exclude pattern %q", p)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	s := fmt.Sprintf("%s -> %s", cfg.Source, cfg.Destination)
	if len(cfg.Exclude) > 0 {
		s += fmt.Sprintf(" (excluding %s)", strings.Join(cfg.Exclude, ", "))
	}
	return s
}

func (cfg *Config) resolve(p string) (string, error) {
	if !filepath.IsAbs(p) && cfg.base != "" {
		p = filepath.Join(cfg.base, p)
	}
	return filepath.Abs(p)
}

// within reports whether child lies strictly below parent.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
