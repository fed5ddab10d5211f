// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/group"
	"github.com/babooppa6/gleamSolver/pkg/steam"
)

// HubConfig configures helper frames backed by a real community page.
type HubConfig struct {
	// URL is the page the helper opens. Its origin must be HubOrigin.
	URL        string
	HubOrigin  string
	HostOrigin string
	SessionID  string
}

// HubOpener returns a FrameOpener whose frames open URL in a new tab and
// answer group requests with the user's community session. Closing the
// frame stops the responder and closes the tab.
func HubOpener(b *Browser, parent group.Window, snaps group.SnapshotStore, cfg HubConfig, log *logrus.Entry) group.FrameOpener {
	return func(ctx context.Context) (group.Frame, error) {
		hub := group.NewLocalWindow(cfg.HubOrigin, 16)

		var page *rod.Page
		serveCtx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		started := false

		load := func(ctx context.Context) error {
			p, err := b.Open(ctx, cfg.URL)
			if err != nil {
				return fmt.Errorf("failed to open group hub: %w", err)
			}
			page = p

			svc := steam.NewClient(NewPageFetcher(page), cfg.HubOrigin)
			resp := group.NewResponder(hub, parent, svc, snaps, group.ResponderConfig{
				HostOrigin: cfg.HostOrigin,
				SessionID:  cfg.SessionID,
			}, log)
			if err := resp.Init(ctx); err != nil {
				return err
			}

			started = true
			go func() {
				defer close(done)
				_ = resp.Serve(serveCtx)
			}()
			return nil
		}
		closeFn := func() error {
			cancel()
			if started {
				<-done
			}
			if page != nil {
				return page.Close()
			}
			return nil
		}

		return group.NewLocalFrame(hub, load, closeFn), nil
	}
}
