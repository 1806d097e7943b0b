package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/pronos-api/internal/domain"
)

type MatchService interface {
	CreateMatch(ctx context.Context, m domain.Match) (domain.Match, error)
	GetMatch(ctx context.Context, id uint) (domain.Match, error)
	ListByTournament(ctx context.Context, tournamentID uint) ([]domain.Match, error)
	UpdateMatch(ctx context.Context, id uint, patch domain.MatchPatch) (domain.Match, error)
}

type MatchHandler struct {
	svc  MatchService
	uSvc UserService
}

func NewMatchHandler(svc MatchService, uSvc UserService) *MatchHandler {
	return &MatchHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListTournamentMatches godoc
// @Summary      List the matches of a tournament
// @Tags         matches
// @Produce      json
// @Param        tournamentID  path      int  true  "Tournament ID"
// @Success      200           {array}   domain.Match
// @Failure      400           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /tournaments/{tournamentID}/matches [get]
// @Security BearerAuth
func (h *MatchHandler) HandleListTournamentMatches(ctx *gin.Context) {
	tournamentID, respErr := paramID(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	matches, err := h.svc.ListByTournament(ctx.Request.Context(), tournamentID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleListTournamentMatches -> h.svc.ListByTournament", err))
		return
	}

	ctx.JSON(http.StatusOK, matches)
}

// HandleGetMatch godoc
// @Summary      Get a match
// @Tags         matches
// @Produce      json
// @Param        matchID  path      int  true  "Match ID"
// @Success      200      {object}  domain.Match
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /matches/{matchID} [get]
// @Security BearerAuth
func (h *MatchHandler) HandleGetMatch(ctx *gin.Context) {
	matchID, respErr := paramID(ctx, "matchID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	m, err := h.svc.GetMatch(ctx.Request.Context(), matchID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleGetMatch -> h.svc.GetMatch", err))
		return
	}

	ctx.JSON(http.StatusOK, m)
}

// HandleCreateMatch godoc
// @Summary      Schedule a match
// @Description  Admins only. The match starts SCHEDULED without any result.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateMatchRequest  true  "Match"
// @Success      201    {object}  domain.Match
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /matches [post]
// @Security BearerAuth
func (h *MatchHandler) HandleCreateMatch(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateMatchRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateMatch(ctx.Request.Context(), input.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleCreateMatch -> h.svc.CreateMatch", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateMatch godoc
// @Summary      Update a match
// @Description  Admins only. Omitted fields keep their value. Completing a match scores every prediction on it.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        matchID  path      int                         true  "Match ID"
// @Param        input    body      request.UpdateMatchRequest  true  "Fields to change"
// @Success      200      {object}  domain.Match
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /matches/{matchID} [patch]
// @Security BearerAuth
func (h *MatchHandler) HandleUpdateMatch(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	matchID, respErr := paramID(ctx, "matchID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateMatchRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateMatch(ctx.Request.Context(), matchID, input.ToPatch())
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleUpdateMatch -> h.svc.UpdateMatch", err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
