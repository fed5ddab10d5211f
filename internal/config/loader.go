// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file found or error loading it: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
// requireCampaign is set by commands that open the campaign page.
func (c *Config) Validate(requireCampaign bool) error {
	// Validate server ports
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d (must be 1-65535)", c.GRPCPort)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if requireCampaign {
		if c.CampaignURL == "" {
			return fmt.Errorf("CAMPAIGN_URL is required")
		}
		u, err := url.Parse(c.CampaignURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid CAMPAIGN_URL: %q", c.CampaignURL)
		}
	}

	if c.NavigationTimeoutS < 1 {
		return fmt.Errorf("invalid CHROME_NAVIGATION_TIMEOUT_SECONDS: %d (must be positive)", c.NavigationTimeoutS)
	}

	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must not be negative)", c.RedisMaxRetries)
	}

	if c.SessionTTLHours < 1 {
		return fmt.Errorf("invalid SESSION_TTL_HOURS: %d (must be positive)", c.SessionTTLHours)
	}

	return nil
}
