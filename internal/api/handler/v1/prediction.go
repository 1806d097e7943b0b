package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/pronos-api/internal/domain"
)

type PredictionService interface {
	CreatePrediction(ctx context.Context, userID, poolID, matchID uint, draft domain.PredictionDraft) (domain.Prediction, error)
	UpdatePrediction(ctx context.Context, actorID, predictionID uint, patch domain.PredictionPatch) (domain.Prediction, error)
	GetPrediction(ctx context.Context, actorID, predictionID uint) (domain.Prediction, error)
	ListUserPredictions(ctx context.Context, poolID, userID uint) ([]domain.Prediction, error)
}

type PredictionHandler struct {
	svc  PredictionService
	uSvc UserService
}

func NewPredictionHandler(svc PredictionService, uSvc UserService) *PredictionHandler {
	return &PredictionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreatePrediction godoc
// @Summary      Submit a prediction
// @Description  One prediction per match per pool, accepted until kickoff.
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        poolID  path      int                              true  "Pool ID"
// @Param        input   body      request.CreatePredictionRequest  true  "Prediction"
// @Success      201     {object}  domain.Prediction
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /pools/{poolID}/predictions [post]
// @Security BearerAuth
func (h *PredictionHandler) HandleCreatePrediction(ctx *gin.Context) {
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

	var input request.CreatePredictionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	prediction, err := h.svc.CreatePrediction(ctx.Request.Context(), user.ID, poolID, input.MatchID, input.ToDraft())
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleCreatePrediction -> h.svc.CreatePrediction", err))
		return
	}

	ctx.JSON(http.StatusCreated, prediction)
}

// HandleListMyPredictions godoc
// @Summary      List the caller's predictions in a pool
// @Tags         predictions
// @Produce      json
// @Param        poolID  path      int  true  "Pool ID"
// @Success      200     {array}   domain.Prediction
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /pools/{poolID}/predictions [get]
// @Security BearerAuth
func (h *PredictionHandler) HandleListMyPredictions(ctx *gin.Context) {
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

	predictions, err := h.svc.ListUserPredictions(ctx.Request.Context(), poolID, user.ID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleListMyPredictions -> h.svc.ListUserPredictions", err))
		return
	}

	ctx.JSON(http.StatusOK, predictions)
}

// HandleGetPrediction godoc
// @Summary      Get one of the caller's predictions
// @Tags         predictions
// @Produce      json
// @Param        predictionID  path      int  true  "Prediction ID"
// @Success      200           {object}  domain.Prediction
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /predictions/{predictionID} [get]
// @Security BearerAuth
func (h *PredictionHandler) HandleGetPrediction(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	predictionID, respErr := paramID(ctx, "predictionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	prediction, err := h.svc.GetPrediction(ctx.Request.Context(), user.ID, predictionID)
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleGetPrediction -> h.svc.GetPrediction", err))
		return
	}

	ctx.JSON(http.StatusOK, prediction)
}

// HandleUpdatePrediction godoc
// @Summary      Change a prediction before kickoff
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        predictionID  path      int                              true  "Prediction ID"
// @Param        input         body      request.UpdatePredictionRequest  true  "Fields to change"
// @Success      200           {object}  domain.Prediction
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /predictions/{predictionID} [patch]
// @Security BearerAuth
func (h *PredictionHandler) HandleUpdatePrediction(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	predictionID, respErr := paramID(ctx, "predictionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdatePredictionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	prediction, err := h.svc.UpdatePrediction(ctx.Request.Context(), user.ID, predictionID, input.ToPatch())
	if err != nil {
		response.RenderErr(ctx, response.FromError("HandleUpdatePrediction -> h.svc.UpdatePrediction", err))
		return
	}

	ctx.JSON(http.StatusOK, prediction)
}
