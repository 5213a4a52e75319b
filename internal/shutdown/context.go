package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bloops-games/rps/internal/logging"
)

// New returns a context cancelled on SIGINT or SIGTERM
func New() (context.Context, func()) {
	return InterruptContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// InterruptContext returns a context cancelled when one of the signals arrives or done is called
func InterruptContext(ctx context.Context, signals ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			logging.FromContext(ctx).Infof("received signal %s, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
