package sqltask

import (
	"context"
	"errors"
)

// ShutdownWithContext runs shutdownFunc and waits for it until ctx is done. If ctx expires
// first, forceCloseFunc is called when set and the context error is returned.
func ShutdownWithContext(ctx context.Context, shutdownFunc func(ctx context.Context) error, forceCloseFunc func() error) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- shutdownFunc(ctx)
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()

		if forceCloseFunc != nil {
			err = errors.Join(err, forceCloseFunc())
		}

		return err
	case err := <-errCh:
		return err
	}
}
