package oracle

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandOracle runs an external program once per decision: the prompt goes
// to its stdin and the answer is read from its stdout.
type CommandOracle struct {
	path string
	args []string
}

func NewCommandOracle(path string, args ...string) *CommandOracle {
	return &CommandOracle{path: path, args: args}
}

func (that *CommandOracle) Decide(ctx context.Context, req Request) (string, error) {
	cmd := exec.CommandContext(ctx, that.path, that.args...)
	cmd.Stdin = strings.NewReader(Prompt(req))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("oracle command %s failed: %w (stderr: %s)", that.path, err, strings.TrimSpace(stderr.String()))
	}

	answer := strings.Trim(strings.TrimSpace(string(out)), `"'`)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	return answer, nil
}
