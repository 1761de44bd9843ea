package cli

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/view"
)

// ErrNotSignedIn is returned by protected commands without an identity.
var ErrNotSignedIn = errors.New("not signed in; run `studentpro login`")

// handleError turns err into the single line printed for operation.
func handleError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotSignedIn) {
		return err
	}
	if apperrors.IsErrorType(err, apperrors.ErrorTypeSessionExpired) {
		return fmt.Errorf("%s; run `studentpro login`", apperrors.GetUserMessage(err))
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, apperrors.GetUserMessage(err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// loadView runs one load to completion and reports a redirect as the
// command's failure.
func loadView(ctx context.Context, l loader) error {
	if err := l.Load(ctx); err != nil {
		return err
	}
	if l.Status() == view.StatusRedirected {
		return ErrNotSignedIn
	}
	return nil
}

type loader interface {
	Load(ctx context.Context) error
	Status() view.Status
}
