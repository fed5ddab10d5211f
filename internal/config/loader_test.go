// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REDIS_HOST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GRPCPort != 6565 {
		t.Errorf("GRPCPort = %d, want 6565", cfg.GRPCPort)
	}
	if cfg.ProfilePath != "config/solver.yaml" {
		t.Errorf("ProfilePath = %q, want config/solver.yaml", cfg.ProfilePath)
	}
	if cfg.RedisEnabled() {
		t.Error("RedisEnabled() = true without REDIS_HOST")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CAMPAIGN_URL", "https://gleam.io/abc/giveaway")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CHROME_HEADLESS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CampaignURL != "https://gleam.io/abc/giveaway" {
		t.Errorf("CampaignURL = %q", cfg.CampaignURL)
	}
	if got := cfg.RedisAddr(); got != "cache:6380" {
		t.Errorf("RedisAddr() = %q, want cache:6380", got)
	}
	if !cfg.Headless {
		t.Error("Headless = false, want true")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GRPCPort:           6565,
			MetricsPort:        8080,
			LogLevel:           "info",
			CampaignURL:        "https://gleam.io/abc/giveaway",
			NavigationTimeoutS: 30,
			RedisMaxRetries:    5,
			SessionTTLHours:    24,
		}
	}

	tests := []struct {
		name            string
		mutate          func(c *Config)
		requireCampaign bool
		wantErr         bool
	}{
		{name: "valid", mutate: func(c *Config) {}, requireCampaign: true},
		{name: "bad grpc port", mutate: func(c *Config) { c.GRPCPort = 0 }, wantErr: true},
		{name: "bad metrics port", mutate: func(c *Config) { c.MetricsPort = 70000 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "missing campaign", mutate: func(c *Config) { c.CampaignURL = "" }, requireCampaign: true, wantErr: true},
		{name: "missing campaign not required", mutate: func(c *Config) { c.CampaignURL = "" }},
		{name: "relative campaign", mutate: func(c *Config) { c.CampaignURL = "/abc" }, requireCampaign: true, wantErr: true},
		{name: "zero navigation timeout", mutate: func(c *Config) { c.NavigationTimeoutS = 0 }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.RedisMaxRetries = -1 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTLHours = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate(tt.requireCampaign)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
