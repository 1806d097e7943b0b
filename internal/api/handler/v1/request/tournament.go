package request

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

var (
	teamCodeExp = regexp.MustCompile(`^[A-Z]{3}$`)

	errEndBeforeStart = errors.New("end_date must not be before start_date")
)

type CreateTournamentRequest struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

func (req *CreateTournamentRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.Status, validation.In(
			string(domain.TournamentUpcoming), string(domain.TournamentActive), string(domain.TournamentCompleted),
		)),
	)
	if err != nil {
		return err
	}

	if req.EndDate.Before(req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

func (req *CreateTournamentRequest) ToDomain() domain.Tournament {
	return domain.Tournament{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.TournamentStatus(req.Status),
	}
}

type CreateTeamRequest struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	FlagURL string `json:"flag_url"`
}

func (req *CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Code, validation.Required, validation.Match(teamCodeExp).Error("must be 3 upper-case letters")),
		validation.Field(&req.FlagURL, is.URL),
	)
}

func (req *CreateTeamRequest) ToDomain() domain.Team {
	return domain.Team{
		Name:    req.Name,
		Code:    req.Code,
		FlagURL: req.FlagURL,
	}
}
