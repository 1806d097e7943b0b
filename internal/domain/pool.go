package domain

import "time"

type Pool struct {
	ID                   uint           `json:"id"`
	TournamentID         uint           `json:"tournament_id"`
	CreatorID            uint           `json:"creator_id"`
	Name                 string         `json:"name"`
	IsPrivate            bool           `json:"is_private"`
	InviteCode           string         `json:"invite_code,omitempty"`
	MaxParticipants      *int           `json:"max_participants"`
	RegistrationDeadline *time.Time     `json:"registration_deadline"`
	ScoringRules         ScoringRuleSet `json:"scoring_rules"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// DeadlinePassed reports whether the registration deadline exists and lies at or before now.
func (p Pool) DeadlinePassed(now time.Time) bool {
	return p.RegistrationDeadline != nil && !now.Before(*p.RegistrationDeadline)
}

type PoolParticipant struct {
	PoolID   uint      `json:"pool_id"`
	UserID   uint      `json:"user_id"`
	User     *User     `json:"user,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}
