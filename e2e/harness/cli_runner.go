package harness

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/artpar/marquee/internal/cli"
)

// CLIResult holds CLI execution results.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CLIRunner executes CLI commands.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes a CLI command with the given arguments.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	defer cancel()

	start := time.Now()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCommand("test")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	result := &CLIResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		result.ExitCode = 1
	}

	return result, err
}

// Movies lists a now-playing page.
func (r *CLIRunner) Movies(page int, opts ...string) (*CLIResult, error) {
	args := []string{"movies", "--page", strconv.Itoa(page)}
	return r.Run(append(args, opts...)...)
}

// Wishlist runs a wishlist subcommand.
func (r *CLIRunner) Wishlist(args ...string) (*CLIResult, error) {
	return r.Run(append([]string{"wishlist"}, args...)...)
}

// Crawl runs the crawl command.
func (r *CLIRunner) Crawl(opts ...string) (*CLIResult, error) {
	return r.Run(append([]string{"crawl"}, opts...)...)
}
