package interfaces

import (
	"context"

	"cartonera/internal/domain/entities"
)

// INotifier publishes lifecycle events. Delivery is best-effort.
type INotifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}
