package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// notifyRole fans one notification out to every recipient holding a role.
// A directory lookup failure is logged and swallowed: staff notification is
// best-effort and never fails the primary mutation.
func notifyRole(
	ctx context.Context,
	logger *slog.Logger,
	staff ports.StaffDirectory,
	notifier ports.Notifier,
	role ports.StaffRole,
	build func(recipient kernel.UUID) ports.Notification,
) {
	recipients, err := staff.RecipientsByRole(ctx, role)
	if err != nil {
		logger.WarnContext(ctx, "staff directory lookup failed, skipping notifications",
			"role", string(role), "error", err)
		return
	}

	for _, recipient := range recipients {
		notifier.Notify(ctx, build(recipient))
	}
}
