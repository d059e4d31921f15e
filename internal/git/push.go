package git

import (
	"context"
)

// PushArgs returns the arguments for pushing the current branch to its upstream
func PushArgs() []string {
	return []string{"push"}
}

// Push uploads local commits to the remote
func Push(ctx context.Context, r Runner) (Result, error) {
	return r.Run(ctx, PushArgs()...)
}
