package ports

import "context"

// RunnerPort executes the entry script with its original arguments and
// returns the script's exit code.
type RunnerPort interface {
	Run(ctx context.Context, script string, args []string) (int, error)
}
