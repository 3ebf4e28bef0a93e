package cli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

// CommandRepository runs programs through os/exec.
type CommandRepository struct{}

// NewCommandRepository creates a new CommandRepository.
func NewCommandRepository() *CommandRepository {
	return &CommandRepository{}
}

// Run executes name with args inside dir and captures stdout and stderr.
func (it *CommandRepository) Run(
	ctx context.Context,
	dir, name string,
	args ...string,
) (repositories.CommandOutput, error) {
	logger.Debugf("[exec] %s %s", name, redact(args))

	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := repositories.CommandOutput{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return output, fmt.Errorf(
			"%s %s: %w\nOutput:\n%s",
			name, redact(args), err, strings.TrimSpace(output.Stderr),
		)
	}
	return output, nil
}

// redact joins args, hiding credentials embedded in URLs.
func redact(args []string) string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, redactURL(arg))
	}
	return strings.Join(out, " ")
}

func redactURL(arg string) string {
	scheme, rest, ok := strings.Cut(arg, "://")
	if !ok {
		return arg
	}
	userInfo, host, hasUser := strings.Cut(rest, "@")
	if !hasUser || strings.Contains(userInfo, "/") {
		return arg
	}
	return scheme + "://***@" + host
}
