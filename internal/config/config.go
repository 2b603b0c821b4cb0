// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package config loads the tunable security policy from YAML with
// environment overrides.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

// envPrefix namespaces the environment overrides. Levels separate with a
// double underscore, e.g. KEYWARD_IDENTITY__LOCKOUT_THRESHOLD.
const envPrefix = "KEYWARD_"

// Config is the full tunable surface of the core.
type Config struct {
	Identity IdentityConfig `koanf:"identity"`
	Session  SessionConfig  `koanf:"session"`
	Token    TokenConfig    `koanf:"token"`
}

// IdentityConfig tunes the user aggregate.
type IdentityConfig struct {
	LockoutThreshold int           `koanf:"lockout_threshold" validate:"gte=1"`
	ResetCooldown    time.Duration `koanf:"reset_cooldown" validate:"gt=0"`
}

// SessionConfig tunes session lifetimes.
type SessionConfig struct {
	TTL time.Duration `koanf:"ttl" validate:"gt=0"`
}

// TokenConfig tunes token lifetimes per kind.
type TokenConfig struct {
	AccessTTL        time.Duration `koanf:"access_ttl" validate:"gt=0"`
	RefreshTTL       time.Duration `koanf:"refresh_ttl" validate:"gt=0"`
	VerificationTTL  time.Duration `koanf:"verification_ttl" validate:"gt=0"`
	PasswordResetTTL time.Duration `koanf:"password_reset_ttl" validate:"gt=0"`
	MFATTL           time.Duration `koanf:"mfa_ttl" validate:"gt=0"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Identity: IdentityConfig{
			LockoutThreshold: 5,
			ResetCooldown:    15 * time.Minute,
		},
		Session: SessionConfig{
			TTL: 90 * 24 * time.Hour,
		},
		Token: TokenConfig{
			AccessTTL:        5 * time.Minute,
			RefreshTTL:       7 * 24 * time.Hour,
			VerificationTTL:  24 * time.Hour,
			PasswordResetTTL: 15 * time.Minute,
			MFATTL:           10 * time.Minute,
		},
	}
}

// Load reads the configuration file, applies KEYWARD_* environment
// overrides on top, and validates the result. A missing file is fine;
// the defaults then apply.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, oops.Code("CONFIG_LOAD_FAILED").
					With("path", path).
					Wrap(err)
			}
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "__", "."), value
		},
	}), nil); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").
			Wrap(err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return Config{}, oops.Code("CONFIG_DECODE_FAILED").
			Wrap(err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").
			Wrap(err)
	}
	return cfg, nil
}
