package git

import (
	"context"
)

// PullArgs returns the arguments for pulling the current branch
func PullArgs() []string {
	return []string{"pull"}
}

// Pull fetches and merges remote changes into the current branch
func Pull(ctx context.Context, r Runner) (Result, error) {
	return r.Run(ctx, PullArgs()...)
}
