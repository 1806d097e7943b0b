package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/pronos-api/internal/domain"
)

type PoolService interface {
	CreatePool(ctx context.Context, creatorID uint, pool domain.Pool) (domain.Pool, error)
	GetPool(ctx context.Context, poolID, userID uint) (domain.Pool, error)
	ListUserPools(ctx context.Context, userID uint) ([]domain.Pool, error)
	JoinPool(ctx context.Context, poolID, userID uint, inviteCode string) (domain.Pool, error)
	LeavePool(ctx context.Context, poolID, userID uint) error
	ListParticipants(ctx context.Context, poolID, userID uint) ([]domain.PoolParticipant, error)
	GetStandings(ctx context.Context, poolID, userID uint) ([]domain.Standing, error)
	GetUserStandings(ctx context.Context, userID uint) ([]domain.Standing, error)
}

type PoolHandler struct {
	svc  PoolService
	uSvc UserService
}

func NewPoolHandler(svc PoolService, uSvc UserService) *PoolHandler {
	return &PoolHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreatePool godoc
// @Summary      Create a pool
// @Description  The creator joins the pool immediately. Omitted scoring rules fall back to the defaults.
// @Tags         pools
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreatePoolRequest  true  "Pool"
// @Success      201    {object}  domain.Pool
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /pools [post]
// @Security BearerAuth
func (h *PoolHandler) HandleCreatePool(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreatePoolRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pool, err := h.svc.CreatePool(ctx.Request.Context(), user.ID, input.ToDomain())
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleCreatePool -> h.svc.CreatePool", err))
		return
	}

	ctx.JSON(http.StatusCreated, pool)
}

// HandleListMyPools godoc
// @Summary      List the pools the caller takes part in
// @Tags         pools
// @Produce      json
// @Success      200  {array}   domain.Pool
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pools [get]
// @Security BearerAuth
func (h *PoolHandler) HandleListMyPools(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	pools, err := h.svc.ListUserPools(ctx.Request.Context(), user.ID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleListMyPools -> h.svc.ListUserPools", err))
		return
	}

	ctx.JSON(http.StatusOK, pools)
}

// HandleGetPool godoc
// @Summary      Get a pool
// @Description  Private pools are visible to their participants only.
// @Tags         pools
// @Produce      json
// @Param        poolID  path      int  true  "Pool ID"
// @Success      200     {object}  domain.Pool
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /pools/{poolID} [get]
// @Security BearerAuth
func (h *PoolHandler) HandleGetPool(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poolID, respErr := paramID(ctx, "poolID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	pool, err := h.svc.GetPool(ctx.Request.Context(), poolID, user.ID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleGetPool -> h.svc.GetPool", err))
		return
	}

	ctx.JSON(http.StatusOK, pool)
}

// HandleJoinPool godoc
// @Summary      Join a pool
// @Description  Private pools require the invite code.
// @Tags         pools
// @Accept       json
// @Produce      json
// @Param        poolID  path      int                      true   "Pool ID"
// @Param        input   body      request.JoinPoolRequest  false  "Invite code"
// @Success      200     {object}  domain.Pool
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /pools/{poolID}/join [post]
// @Security BearerAuth
func (h *PoolHandler) HandleJoinPool(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poolID, respErr := paramID(ctx, "poolID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.JoinPoolRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pool, err := h.svc.JoinPool(ctx.Request.Context(), poolID, user.ID, input.InviteCode)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleJoinPool -> h.svc.JoinPool", err))
		return
	}

	ctx.JSON(http.StatusOK, pool)
}

// HandleLeavePool godoc
// @Summary      Leave a pool
// @Description  The creator cannot leave their own pool.
// @Tags         pools
// @Param        poolID  path  int  true  "Pool ID"
// @Success      204
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /pools/{poolID}/participants/me [delete]
// @Security BearerAuth
func (h *PoolHandler) HandleLeavePool(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poolID, respErr := paramID(ctx, "poolID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.LeavePool(ctx.Request.Context(), poolID, user.ID); err != nil {
		response.RenderErr(ctx, response.FromError("HandleLeavePool -> h.svc.LeavePool", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListParticipants godoc
// @Summary      List the participants of a pool
// @Tags         pools
// @Produce      json
// @Param        poolID  path      int  true  "Pool ID"
// @Success      200     {array}   domain.PoolParticipant
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /pools/{poolID}/participants [get]
// @Security BearerAuth
func (h *PoolHandler) HandleListParticipants(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poolID, respErr := paramID(ctx, "poolID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participants, err := h.svc.ListParticipants(ctx.Request.Context(), poolID, user.ID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleListParticipants -> h.svc.ListParticipants", err))
		return
	}

	ctx.JSON(http.StatusOK, participants)
}

// HandleGetStandings godoc
// @Summary      Get the standings of a pool
// @Tags         standings
// @Produce      json
// @Param        poolID  path      int  true  "Pool ID"
// @Success      200     {array}   domain.Standing
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /pools/{poolID}/standings [get]
// @Security BearerAuth
func (h *PoolHandler) HandleGetStandings(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poolID, respErr := paramID(ctx, "poolID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	standings, err := h.svc.GetStandings(ctx.Request.Context(), poolID, user.ID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleGetStandings -> h.svc.GetStandings", err))
		return
	}

	ctx.JSON(http.StatusOK, standings)
}

// HandleGetMyStandings godoc
// @Summary      Get the caller's standing in every pool they joined
// @Tags         standings
// @Produce      json
// @Success      200  {array}   domain.Standing
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/standings [get]
// @Security BearerAuth
func (h *PoolHandler) HandleGetMyStandings(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	standings, err := h.svc.GetUserStandings(ctx.Request.Context(), user.ID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleGetMyStandings -> h.svc.GetUserStandings", err))
		return
	}

	ctx.JSON(http.StatusOK, standings)
}
