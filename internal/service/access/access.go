package access

import (
	"context"
	"fmt"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

// Resolve loads the user and pond and checks the user may log feedings for it.
func Resolve(ctx context.Context, directory domain.DirectoryRepository, pondID, userID string) (*domain.User, *domain.Pond, error) {
	if userID == "" {
		return nil, nil, domain.NewValidationError("user_id", "is required")
	}
	if pondID == "" {
		return nil, nil, domain.NewValidationError("pond_id", "is required")
	}

	user, err := directory.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !user.Approved {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUserNotApproved, userID)
	}

	member, err := directory.IsMember(ctx, pondID, userID)
	if err != nil {
		return nil, nil, err
	}
	if !member {
		return nil, nil, fmt.Errorf("%w: user %s, pond %s", domain.ErrNotPondMember, userID, pondID)
	}

	pond, err := directory.GetPond(ctx, pondID)
	if err != nil {
		return nil, nil, err
	}

	return user, pond, nil
}
