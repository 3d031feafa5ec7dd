package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/baechuer/edusphere/internal/domain"
	"github.com/baechuer/edusphere/internal/logger"
)

// UpdateUserInput is a partial update. Nil and empty values leave the
// stored field unchanged.
type UpdateUserInput struct {
	Name      *string
	Email     *string
	AvatarURL *string
	Status    *string
	Password  *string
}

// UpdateUser applies a partial update and appends exactly one audit entry.
//
// Action kind precedence: a new password wins (PASSWORD_RESET), then a
// status that differs from the stored one (STATUS_CHANGE), otherwise
// USER_UPDATED. The details text lists every distinguished change.
func (s *Service) UpdateUser(ctx context.Context, actor, id string, in UpdateUserInput) error {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch := domain.UserPatch{
		Name:      nonEmpty(in.Name),
		Email:     nonEmpty(in.Email),
		AvatarURL: nonEmpty(in.AvatarURL),
	}

	if st := nonEmpty(in.Status); st != nil {
		norm := strings.ToUpper(strings.TrimSpace(*st))
		if !domain.IsValidStatus(norm) {
			return domain.ErrInvalidStatus(*st)
		}
		patch.Status = &norm
	}

	action := domain.AuditUserUpdated
	var details []string

	if pw := nonEmpty(in.Password); pw != nil {
		hash, err := s.hasher.Hash(*pw)
		if err != nil {
			return err
		}
		patch.PasswordHash = &hash
		action = domain.AuditPasswordReset
		details = append(details, "Password changed")
	}

	statusChanged := patch.Status != nil && *patch.Status != current.Status
	if statusChanged {
		if action != domain.AuditPasswordReset {
			action = domain.AuditStatusChange
		}
		details = append(details, fmt.Sprintf("Status changed from %s to %s", current.Status, *patch.Status))
	}

	if len(details) == 0 {
		details = append(details, "Profile details updated")
	}

	updated, err := s.users.Update(ctx, id, current.Version, patch)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:         action,
		TargetUserID:   id,
		TargetUserName: current.Name,
		PerformedBy:    actor,
		Details:        strings.Join(details, ", "),
	})

	if statusChanged {
		s.syncRevocation(ctx, updated)
	}
	return nil
}

func (s *Service) syncRevocation(ctx context.Context, u domain.User) {
	if s.revoker == nil {
		return
	}
	var err error
	if u.Active() {
		err = s.revoker.Clear(ctx, u.ID)
	} else {
		err = s.revoker.Revoke(ctx, u.ID, s.tokenTTL)
	}
	if err != nil {
		logger.WithCtx(ctx).Warn().Err(err).
			Str("user_id", u.ID).
			Str("status", u.Status).
			Msg("token revocation sync failed")
	}
}

func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
