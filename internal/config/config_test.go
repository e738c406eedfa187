package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	for _, k := range []string{
		"HABITICA_USER_ID", "HABITICA_API_TOKEN", "HABITICA_BASE_URL", "HABITICA_TIMEOUT",
		"MCP_LANG", "LANG", "MCP_VALIDATE_ARGS", "LOG_LEVEL",
	} {
		s.T().Setenv(k, "")
	}
}

func (s *ConfigTestSuite) TestMissingUserID() {
	s.T().Setenv("HABITICA_API_TOKEN", "token")

	cfg, err := Load()
	assert.Nil(s.T(), cfg)
	assert.ErrorIs(s.T(), err, ErrMissingCredentials)
}

func (s *ConfigTestSuite) TestMissingToken() {
	s.T().Setenv("HABITICA_USER_ID", "user")

	_, err := Load()
	assert.ErrorIs(s.T(), err, ErrMissingCredentials)
}

func (s *ConfigTestSuite) TestDefaults() {
	s.T().Setenv("HABITICA_USER_ID", "user")
	s.T().Setenv("HABITICA_API_TOKEN", "token")

	cfg, err := Load()
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "user", cfg.UserID)
	assert.Equal(s.T(), "token", cfg.APIToken)
	assert.Equal(s.T(), DefaultBaseURL, cfg.BaseURL)
	assert.Equal(s.T(), "en", cfg.Lang)
	assert.Equal(s.T(), time.Duration(0), cfg.Timeout)
	assert.False(s.T(), cfg.ValidateArgs)
	assert.Equal(s.T(), "info", cfg.LogLevel)
}

func (s *ConfigTestSuite) TestOverrides() {
	s.T().Setenv("HABITICA_USER_ID", "user")
	s.T().Setenv("HABITICA_API_TOKEN", "token")
	s.T().Setenv("HABITICA_BASE_URL", "http://localhost:3000/api/v3/")
	s.T().Setenv("HABITICA_TIMEOUT", "15s")
	s.T().Setenv("MCP_VALIDATE_ARGS", "true")
	s.T().Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "http://localhost:3000/api/v3", cfg.BaseURL)
	assert.Equal(s.T(), 15*time.Second, cfg.Timeout)
	assert.True(s.T(), cfg.ValidateArgs)
	assert.Equal(s.T(), "debug", cfg.LogLevel)
}

func (s *ConfigTestSuite) TestLangPrecedence() {
	s.T().Setenv("HABITICA_USER_ID", "user")
	s.T().Setenv("HABITICA_API_TOKEN", "token")
	s.T().Setenv("LANG", "de_DE.UTF-8")

	cfg, err := Load()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "de_DE.UTF-8", cfg.Lang)

	s.T().Setenv("MCP_LANG", "zh")
	cfg, err = Load()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "zh", cfg.Lang)
}
