// /home/hvpkod/go/src/github.com/hvpkod/rssel/settings/settings.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-03 14:27:12 hvpkod>

// Package settings loads the application's configuration files, the
// settings proper from a YAML file and the list of subscribed feeds from a
// JSON file.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/blicero/krylib"
	"gopkg.in/yaml.v3"
)

// Settings holds the user-tunable knobs.
type Settings struct {
	MaxTags       int           `yaml:"max_tags"`
	IncludeDomain bool          `yaml:"include_domain"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	FetchWorkers  int           `yaml:"fetch_workers"`
	PurgeDays     int           `yaml:"purge_days"`
	ListLimit     int           `yaml:"list_limit"`
	ExportFormat  string        `yaml:"export_format"`
}

// Defaults returns the default Settings.
func Defaults() *Settings {
	return &Settings{
		MaxTags:       5,
		IncludeDomain: false,
		FetchTimeout:  time.Second * 30,
		FetchWorkers:  4,
		PurgeDays:     90,
		ListLimit:     0,
		ExportFormat:  "md",
	}
} // func Defaults() *Settings

// Load reads the Settings from the given YAML file. Missing keys keep their
// defaults, a missing file yields the defaults unchanged.
func Load(path string) (*Settings, error) {
	var (
		err    error
		exists bool
		raw    []byte
		st     = Defaults()
	)

	if exists, err = krylib.Fexists(path); err != nil {
		return nil, err
	} else if !exists {
		return st, nil
	}

	if raw, err = os.ReadFile(path); err != nil {
		return nil, err
	} else if err = yaml.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("Cannot parse settings file %s: %s",
			path,
			err.Error())
	}

	return st, nil
} // func Load(path string) (*Settings, error)

// Save writes the Settings to the given file.
func (st *Settings) Save(path string) error {
	var (
		err error
		raw []byte
	)

	if raw, err = yaml.Marshal(st); err != nil {
		return err
	}

	return os.WriteFile(path, raw, 0644)
} // func (st *Settings) Save(path string) error

// SourceSpec is one subscribed feed as it appears in the sources file.
type SourceSpec struct {
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Groups []string `json:"groups,omitempty"`
}

// LoadSources reads the list of subscribed feeds from the given JSON file.
// A missing file yields an empty list.
func LoadSources(path string) ([]SourceSpec, error) {
	var (
		err    error
		exists bool
		raw    []byte
		specs  []SourceSpec
	)

	if exists, err = krylib.Fexists(path); err != nil {
		return nil, err
	} else if !exists {
		return specs, nil
	}

	if raw, err = os.ReadFile(path); err != nil {
		return nil, err
	} else if err = json.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("Cannot parse sources file %s: %s",
			path,
			err.Error())
	}

	return specs, nil
} // func LoadSources(path string) ([]SourceSpec, error)

// SaveSources writes the list of subscribed feeds to the given file.
func SaveSources(path string, specs []SourceSpec) error {
	var (
		err error
		raw []byte
	)

	if raw, err = json.MarshalIndent(specs, "", "  "); err != nil {
		return err
	}

	return os.WriteFile(path, append(raw, '\n'), 0644)
} // func SaveSources(path string, specs []SourceSpec) error
