//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Domain    string
	DatasetID string
	AppToken  string
	SodaPath  string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Domain:    os.Getenv("SODA_DOMAIN"),
		DatasetID: os.Getenv("SODA_DATASET_ID"),
		AppToken:  os.Getenv("SODA_APP_TOKEN"),
		SodaPath:  getSodaPath(),
		Verbose:   os.Getenv("SODA_VERBOSE") == "true",
	}
}

// getSodaPath determines the path to the soda binary
func getSodaPath() string {
	if path := os.Getenv("SODA_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../soda",
		"./soda",
		"../soda",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "soda" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Domain == "" || config.DatasetID == "" {
		t.Skip("SODA_DOMAIN or SODA_DATASET_ID not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the soda binary cannot be found
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.SodaPath); err != nil {
		t.Skipf("soda binary not found at %s, skipping integration test", config.SodaPath)
	}
}

// CommandRunner provides utilities for running soda commands
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

// Run executes a soda command against the configured domain and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--domain", runner.config.Domain}, args...)
	if runner.config.AppToken != "" {
		args = append(args, "--app-token", runner.config.AppToken)
	}

	cmd := exec.Command(runner.config.SodaPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.SodaPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return // Looks like YAML
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
