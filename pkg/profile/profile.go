// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package profile loads the YAML tuning profile of the solver.
package profile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/babooppa6/gleamSolver/pkg/answer"
	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/method"
	"github.com/babooppa6/gleamSolver/pkg/policy"
)

// Defaults used when the profile leaves a value out.
const (
	DefaultMinDelay     = 1 * time.Second
	DefaultMaxDelay     = 3 * time.Second
	DefaultLoadTimeout  = 60 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
	DefaultPollTimeout  = 2 * time.Minute
	DefaultGroupTimeout = 60 * time.Second

	DefaultHubURL     = "https://steamcommunity.com/app/329630"
	DefaultHubOrigin  = "https://steamcommunity.com"
	DefaultHostOrigin = "https://gleam.io"
)

// Profile is the complete solver profile.
type Profile struct {
	// Mode overrides the campaign default when set.
	Mode          string          `yaml:"mode,omitempty"`
	Schedule      Schedule        `yaml:"schedule"`
	Poll          Poll            `yaml:"poll"`
	Group         Group           `yaml:"group"`
	Answers       Answers         `yaml:"answers"`
	DisabledTypes []string        `yaml:"disabled_types,omitempty"`
	Handlers      []HandlerConfig `yaml:"handlers"`
}

// Schedule bounds the delay between two dispatches.
type Schedule struct {
	MinDelay    time.Duration `yaml:"min_delay"`
	MaxDelay    time.Duration `yaml:"max_delay"`
	LoadTimeout time.Duration `yaml:"load_timeout"`
}

// Poll configures completion polling. A zero timeout waits indefinitely.
type Poll struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Group configures the cross-origin group channel.
type Group struct {
	HubURL     string        `yaml:"hub_url"`
	HubOrigin  string        `yaml:"hub_origin"`
	HostOrigin string        `yaml:"host_origin"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Answers configures generated answers.
type Answers struct {
	RepeatCap int `yaml:"repeat_cap"`
}

// HandlerConfig represents a handler configuration entry.
type HandlerConfig struct {
	Kind       string                 `yaml:"kind"`
	Name       string                 `yaml:"name,omitempty"`
	Enabled    bool                   `yaml:"enabled"`
	Parameters map[string]interface{} `yaml:"parameters,omitempty"`
}

// Default returns the profile used when no file is configured.
func Default() *Profile {
	p := &Profile{
		Schedule: Schedule{
			MinDelay:    DefaultMinDelay,
			MaxDelay:    DefaultMaxDelay,
			LoadTimeout: DefaultLoadTimeout,
		},
		Poll: Poll{
			Interval: DefaultPollInterval,
			Timeout:  DefaultPollTimeout,
		},
		Group: Group{
			HubURL:     DefaultHubURL,
			HubOrigin:  DefaultHubOrigin,
			HostOrigin: DefaultHostOrigin,
			Timeout:    DefaultGroupTimeout,
		},
		Answers: Answers{RepeatCap: answer.DefaultRepeatCap},
	}
	for _, k := range classify.Kinds {
		p.Handlers = append(p.Handlers, HandlerConfig{Kind: string(k), Enabled: true})
	}
	return p
}

// Load loads a profile from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses and validates a profile document. Values the document
// leaves out keep their defaults.
func Parse(data []byte) (*Profile, error) {
	expanded := expandEnvVars(string(data))

	p := Default()
	handlers := p.Handlers
	p.Handlers = nil
	if err := yaml.Unmarshal([]byte(expanded), p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
	}
	if len(p.Handlers) == 0 {
		p.Handlers = handlers
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return p, nil
}

// Validate validates the profile for common errors.
func (p *Profile) Validate() error {
	if p.Mode != "" {
		if _, err := policy.ParseMode(p.Mode); err != nil {
			return err
		}
	}

	s := p.Schedule
	if s.MinDelay < 0 || s.MaxDelay < 0 || s.LoadTimeout < 0 {
		return fmt.Errorf("schedule durations must not be negative")
	}
	if s.MaxDelay < s.MinDelay {
		return fmt.Errorf("schedule max_delay %v is below min_delay %v", s.MaxDelay, s.MinDelay)
	}
	if p.Poll.Interval < 0 || p.Poll.Timeout < 0 || p.Group.Timeout < 0 {
		return fmt.Errorf("poll and group durations must not be negative")
	}
	if c := p.Answers.RepeatCap; c < 0 || c > answer.MaxRepeatCap {
		return fmt.Errorf("answers repeat_cap %d is outside [0, %d]", c, answer.MaxRepeatCap)
	}
	if p.Group.HubOrigin == "" || p.Group.HostOrigin == "" {
		return fmt.Errorf("group hub_origin and host_origin are required")
	}

	disabled := make(map[string]bool)
	for _, t := range p.DisabledTypes {
		if t == "" {
			return fmt.Errorf("empty entry type in disabled_types")
		}
		if disabled[t] {
			return fmt.Errorf("duplicate disabled type: %s", t)
		}
		disabled[t] = true
	}

	kinds := make(map[string]bool)
	for _, h := range p.Handlers {
		if h.Kind == "" {
			return fmt.Errorf("handler with empty kind found")
		}
		if _, err := classify.ParseKind(h.Kind); err != nil {
			return err
		}
		if kinds[h.Kind] {
			return fmt.Errorf("duplicate handler kind: %s", h.Kind)
		}
		kinds[h.Kind] = true
	}

	return nil
}

// ModeOverride returns the configured mode and whether one is set.
func (p *Profile) ModeOverride() (policy.Mode, bool) {
	if p.Mode == "" {
		return "", false
	}
	return policy.Mode(p.Mode), true
}

// Disabled returns the disabled entry types.
func (p *Profile) Disabled() []entry.Type {
	types := make([]entry.Type, 0, len(p.DisabledTypes))
	for _, t := range p.DisabledTypes {
		types = append(types, entry.Type(t))
	}
	return types
}

// HandlerConfigs converts the handler list for the handler factory.
func (p *Profile) HandlerConfigs() []method.HandlerConfig {
	configs := make([]method.HandlerConfig, 0, len(p.Handlers))
	for _, h := range p.Handlers {
		configs = append(configs, method.HandlerConfig{
			Kind:       h.Kind,
			Name:       h.Name,
			Enabled:    h.Enabled,
			Parameters: h.Parameters,
		})
	}
	return configs
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		// Support ${VAR:default} syntax
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
