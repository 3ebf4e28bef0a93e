package repositories

import "context"

// CommandOutput is the captured output of an external command.
type CommandOutput struct {
	Stdout string
	Stderr string
}

// CommandRepository runs external programs such as git.
type CommandRepository interface {
	// Run executes name with args inside dir (the current directory when dir
	// is empty). A non-zero exit status is returned as an error together with
	// whatever output was captured.
	Run(ctx context.Context, dir, name string, args ...string) (CommandOutput, error)
}
