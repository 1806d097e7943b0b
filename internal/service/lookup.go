package service

import (
	"errors"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/rules"
)

// optional turns a repository "not found" error into a nil result so the rules can report it.
func optional[T any](v T, err, notFound error) (*T, error) {
	if errors.Is(err, notFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func conflict(detail string) error {
	return &rules.Error{Kind: rules.KindConflict, Detail: detail}
}

func requireMember(pool domain.Pool, participants []uint, userID uint) error {
	if rules.IsPoolMember(pool, participants, userID) {
		return nil
	}
	return &rules.Error{Kind: rules.KindNotParticipant, Detail: "you are not a participant of this pool"}
}
