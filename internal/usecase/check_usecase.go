package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

var (
	ErrCheckNotFound  = errors.New("check not found")
	ErrInvalidCheckID = errors.New("invalid check id")
)

// ICheckUseCase manages the portfolio of checks received as payment.
type ICheckUseCase interface {
	List(ctx context.Context, status entities.CheckStatus) ([]entities.Check, error)
	GetByID(ctx context.Context, id string) (entities.Check, error)
	Move(ctx context.Context, id string, target entities.CheckStatus, endorsedTo, notes string) (entities.Check, error)
}

type CheckUseCase struct {
	repo interfaces.ICheckRepository
	now  func() time.Time
}

var _ ICheckUseCase = (*CheckUseCase)(nil)

func NewCheckUseCase(repo interfaces.ICheckRepository) *CheckUseCase {
	return &CheckUseCase{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// List returns every check when status is empty.
func (u *CheckUseCase) List(ctx context.Context, status entities.CheckStatus) ([]entities.Check, error) {
	if status == "" {
		return u.repo.ListAll(ctx)
	}
	if !entities.CheckStateMachine.IsValid(status) {
		return nil, entities.NewDomainError(entities.KindInvalidInput, "unknown check status %q", status)
	}
	return u.repo.ListByStatus(ctx, status)
}

func (u *CheckUseCase) GetByID(ctx context.Context, id string) (entities.Check, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Check{}, ErrInvalidCheckID
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Check{}, err
	}
	if c.ID == "" {
		return entities.Check{}, ErrCheckNotFound
	}
	return c, nil
}

func (u *CheckUseCase) Move(ctx context.Context, id string, target entities.CheckStatus, endorsedTo, notes string) (entities.Check, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Check{}, err
	}
	if err := c.MoveTo(target, strings.TrimSpace(endorsedTo), strings.TrimSpace(notes), u.now()); err != nil {
		return entities.Check{}, err
	}

	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		return entities.Check{}, err
	}
	log.Info().Str("check_id", updated.ID).Str("status", string(updated.Status)).Msg("[check][usecase] moved")
	return updated, nil
}
