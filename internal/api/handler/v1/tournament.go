package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/service"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, t domain.Tournament) (domain.Tournament, error)
	GetTournament(ctx context.Context, id uint) (domain.Tournament, error)
	ListTournaments(ctx context.Context) ([]domain.Tournament, error)
	CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
}

type TournamentHandler struct {
	svc  TournamentService
	uSvc UserService
}

func NewTournamentHandler(svc TournamentService, uSvc UserService) *TournamentHandler {
	return &TournamentHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListTournaments godoc
// @Summary      List tournaments
// @Tags         tournaments
// @Produce      json
// @Success      200  {array}   domain.Tournament
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments [get]
// @Security BearerAuth
func (h *TournamentHandler) HandleListTournaments(ctx *gin.Context) {
	tournaments, err := h.svc.ListTournaments(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListTournaments -> h.svc.ListTournaments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tournaments)
}

// HandleGetTournament godoc
// @Summary      Get a tournament
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID  path      int  true  "Tournament ID"
// @Success      200           {object}  domain.Tournament
// @Failure      400           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /tournaments/{tournamentID} [get]
// @Security BearerAuth
func (h *TournamentHandler) HandleGetTournament(ctx *gin.Context) {
	tournamentID, respErr := paramID(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	t, err := h.svc.GetTournament(ctx.Request.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))
			return
		}

		err = fmt.Errorf("HandleGetTournament -> h.svc.GetTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, t)
}

// HandleCreateTournament godoc
// @Summary      Create a tournament
// @Description  Admins only.
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateTournamentRequest  true  "Tournament"
// @Success      201    {object}  domain.Tournament
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /tournaments [post]
// @Security BearerAuth
func (h *TournamentHandler) HandleCreateTournament(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateTournamentRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateTournament(ctx.Request.Context(), input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleCreateTournament -> h.svc.CreateTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListTeams godoc
// @Summary      List teams
// @Tags         teams
// @Produce      json
// @Success      200  {array}   domain.Team
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /teams [get]
// @Security BearerAuth
func (h *TournamentHandler) HandleListTeams(ctx *gin.Context) {
	teams, err := h.svc.ListTeams(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListTeams -> h.svc.ListTeams -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleCreateTeam godoc
// @Summary      Create a team
// @Description  Admins only. Codes are unique three-letter FIFA codes.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateTeamRequest  true  "Team"
// @Success      201    {object}  domain.Team
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /teams [post]
// @Security BearerAuth
func (h *TournamentHandler) HandleCreateTeam(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.CreateTeam(ctx.Request.Context(), input.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrTeamCodeExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrTeamCodeExists))
			return
		}

		err = fmt.Errorf("HandleCreateTeam -> h.svc.CreateTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, team)
}
