package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Port)
	assert.NotEmpty(t, cfg.DBHost)
	assert.NotEmpty(t, cfg.DBName)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.RedisURL)
}

func TestValidate(t *testing.T) {
	strongSecret := strings.Repeat("s", 32)

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing port",
			cfg:     Config{JWTSecret: strongSecret},
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			cfg:     Config{Port: "3001"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "development with defaults",
			cfg: Config{
				Port:      "3001",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "development",
			},
		},
		{
			name: "production rejects default secret",
			cfg: Config{
				Port:      "3001",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			wantErr: "must be changed from the default",
		},
		{
			name: "production rejects short secret",
			cfg: Config{
				Port:       "3001",
				JWTSecret:  "short",
				DBPassword: "s3cure-db-pass",
				Env:        "production",
			},
			wantErr: "at least 32 characters",
		},
		{
			name: "production rejects weak db password",
			cfg: Config{
				Port:       "3001",
				JWTSecret:  strongSecret,
				DBPassword: "password",
				Env:        "prod",
			},
			wantErr: "strong DB_PASSWORD",
		},
		{
			name: "production with strong values",
			cfg: Config{
				Port:       "3001",
				JWTSecret:  strongSecret,
				DBPassword: "s3cure-db-pass",
				DBSSLMode:  "require",
				Env:        "production",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
