package usecase

import (
	"context"

	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
)

// PermissionCallback provides allow/deny functions for the permission request.
type PermissionCallback struct {
	Allow func()
	Deny  func()
}

// HandlePermissionUseCase answers permission requests from embedded sites
// using the fixed allow-list. There is no prompt and nothing is persisted.
type HandlePermissionUseCase struct{}

// NewHandlePermissionUseCase creates a new permission handling use case.
func NewHandlePermissionUseCase() *HandlePermissionUseCase {
	return &HandlePermissionUseCase{}
}

// HandlePermissionRequest calls exactly one of callback.Allow or callback.Deny.
// A request naming several permissions is allowed only if all are listed.
func (uc *HandlePermissionUseCase) HandlePermissionRequest(
	ctx context.Context,
	origin string,
	names []string,
	callback PermissionCallback,
) entity.PermissionDecision {
	log := logging.FromContext(ctx).With().
		Str("component", "permission").
		Str("origin", origin).
		Strs("types", names).
		Logger()

	decision := entity.PermissionGranted
	if len(names) == 0 {
		decision = entity.PermissionDenied
	}
	for _, name := range names {
		if entity.Decide(name) == entity.PermissionDenied {
			decision = entity.PermissionDenied
			break
		}
	}

	if decision == entity.PermissionGranted {
		log.Debug().Msg("permission granted")
		if callback.Allow != nil {
			callback.Allow()
		}
		return decision
	}

	log.Info().Msg("permission denied")
	if callback.Deny != nil {
		callback.Deny()
	}
	return decision
}

// IsAllowed reports whether a single permission name is on the allow-list.
func (uc *HandlePermissionUseCase) IsAllowed(name string) bool {
	return entity.IsAllowed(name)
}
