//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
	"github.com/fivetwenty-io/lemon-client/pkg/lemonclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	PaperAPIKey string
	DataAPIKey  string
	LemonPath   string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		PaperAPIKey: os.Getenv(constants.EnvPaperAPIKey),
		DataAPIKey:  os.Getenv(constants.EnvMarketDataKey),
		LemonPath:   getLemonPath(),
		Verbose:     os.Getenv("LEMON_VERBOSE") == "true",
	}
}

// getLemonPath determines the path to the lemon binary
func getLemonPath() string {
	if path := os.Getenv("LEMON_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../lemon", "./lemon", "../lemon"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "lemon"
}

// SkipWithoutPaperKey skips the test when no paper trading key is configured.
func (config *TestConfig) SkipWithoutPaperKey(t *testing.T) {
	t.Helper()

	if config.PaperAPIKey == "" {
		t.Skipf("%s not set, skipping integration test", constants.EnvPaperAPIKey)
	}
}

// SkipWithoutDataKey skips the test when no market data key is configured.
func (config *TestConfig) SkipWithoutDataKey(t *testing.T) {
	t.Helper()

	if config.DataAPIKey == "" {
		t.Skipf("%s not set, skipping integration test", constants.EnvMarketDataKey)
	}
}

// SkipWithoutBinary skips the test when the lemon binary cannot be found.
func (config *TestConfig) SkipWithoutBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.LemonPath); err != nil {
		t.Skipf("lemon binary not found at %s, skipping integration test", config.LemonPath)
	}
}

// PaperClient returns a paper trading client, logging requests when verbose.
func (config *TestConfig) PaperClient(t *testing.T) lemon.TradingClient {
	t.Helper()

	return lemonclient.NewPaper(config.PaperAPIKey, config.options(t)...)
}

// MarketDataClient returns a market data client.
func (config *TestConfig) MarketDataClient(t *testing.T) lemon.MarketDataClient {
	t.Helper()

	return lemonclient.NewMarketData(config.DataAPIKey, config.options(t)...)
}

func (config *TestConfig) options(t *testing.T) []lemonclient.Option {
	t.Helper()

	if !config.Verbose {
		return nil
	}

	return []lemonclient.Option{lemonclient.WithLogger(&testLogger{t: t}), lemonclient.WithDebug(true)}
}

type testLogger struct {
	t *testing.T
}

func (l *testLogger) Debug(msg string, fields map[string]interface{}) { l.t.Logf("DEBUG %s %v", msg, fields) }
func (l *testLogger) Info(msg string, fields map[string]interface{})  { l.t.Logf("INFO %s %v", msg, fields) }
func (l *testLogger) Warn(msg string, fields map[string]interface{})  { l.t.Logf("WARN %s %v", msg, fields) }
func (l *testLogger) Error(msg string, fields map[string]interface{}) { l.t.Logf("ERROR %s %v", msg, fields) }

// CommandRunner provides utilities for running lemon commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a lemon command with the configured keys and returns its output
func (runner *CommandRunner) Run(args ...string) (string, string, error) {
	cmd := exec.Command(runner.config.LemonPath, args...) //nolint:gosec
	cmd.Env = append(os.Environ(),
		"LEMON_API_KEY="+runner.config.PaperAPIKey,
		"LEMON_DATA_API_KEY="+runner.config.DataAPIKey,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.LemonPath, strings.Join(args, " "))
	}

	err := cmd.Run()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdoutBuf.String(), stderrBuf.String())
	}

	return stdoutBuf.String(), stderrBuf.String(), err
}

// AssertJSONOutput validates that output is valid JSON
func AssertJSONOutput(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded), "output is not valid JSON: %s", output)

	return decoded
}
