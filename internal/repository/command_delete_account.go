package repository

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type DeleteAccountMessage struct {
	UserID uuid.UUID `json:"user_id"`
}

func (e DeleteAccountMessage) Type() string { return "user.delete_account" }

// DeleteAccountHandler destroys an account and everything hanging off it:
// the profile, authored posts, and the user's likes and comments on other
// people's posts. All in one transaction.
type DeleteAccountHandler struct {
	repo Manager
}

func NewDeleteAccountHandler(repo Manager) *DeleteAccountHandler {
	return &DeleteAccountHandler{repo: repo}
}

func (h *DeleteAccountHandler) Execute(ctx context.Context, event DeleteAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account deletion",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *DeleteAccountHandler) execute(ctx context.Context, event DeleteAccountMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := h.repo.Posts().DeleteByUserID(ctx, tx, event.UserID); err != nil {
			return err
		}

		if err := h.repo.Profiles().DeleteByUserID(ctx, tx, event.UserID); err != nil {
			return err
		}

		return h.repo.Users().DeleteByIDTx(ctx, tx, event.UserID)
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "account deletion transaction failed")
	}

	return nil
}
