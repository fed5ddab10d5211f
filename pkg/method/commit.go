// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package method

import (
	"context"
	"errors"
	"fmt"

	"github.com/babooppa6/gleamSolver/pkg/host"
	"github.com/babooppa6/gleamSolver/pkg/metrics"
	"github.com/babooppa6/gleamSolver/pkg/poll"
)

// Committer performs the steps shared by every handler: the loading
// indicator and the final commit of an entry to the host.
type Committer struct {
	host   host.Host
	poller *poll.Poller
}

// NewCommitter creates a committer.
func NewCommitter(h host.Host, poller *poll.Poller) *Committer {
	return &Committer{host: h, poller: poller}
}

// Poller returns the poller used for completion waits.
func (c *Committer) Poller() *poll.Poller {
	return c.poller
}

// Loading turns on the entry's loading indicator.
func (c *Committer) Loading(ctx context.Context, id string) error {
	return c.host.SetEntering(ctx, id, true)
}

// Commit clears the loading indicator, marks the entry entered and asks the
// host to verify it.
func (c *Committer) Commit(ctx context.Context, id string) error {
	if err := c.host.SetEntering(ctx, id, false); err != nil {
		return fmt.Errorf("failed to clear loading flag: %w", err)
	}
	if err := c.host.MarkEntered(ctx, id); err != nil {
		return fmt.Errorf("failed to mark entry entered: %w", err)
	}
	if err := c.host.Verify(ctx, id); err != nil {
		return fmt.Errorf("failed to verify entry: %w", err)
	}
	return nil
}

// CommitAndWait commits the entry, then waits until the host no longer
// offers it or reports an error for it.
func (c *Committer) CommitAndWait(ctx context.Context, id string) error {
	if err := c.Commit(ctx, id); err != nil {
		return err
	}
	return c.Await(ctx, id, func(ctx context.Context) (bool, error) {
		e, err := c.host.Entry(ctx, id)
		if err != nil {
			return false, err
		}
		return e.Settled(), nil
	})
}

// Await polls cond and counts timeouts.
func (c *Committer) Await(ctx context.Context, id string, cond poll.Condition) error {
	err := c.poller.Wait(ctx, cond)
	if errors.Is(err, poll.ErrTimeout) {
		metrics.PollTimeouts.Inc()
		return fmt.Errorf("entry %s: %w", id, err)
	}
	return err
}
