package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/pronos-api/internal/api/handler/v1/response"
)

type StandingsHub interface {
	Serve(conn *websocket.Conn, poolID, userID uint)
}

type LiveHandler struct {
	hub      StandingsHub
	pSvc     PoolService
	uSvc     UserService
	upgrader websocket.Upgrader
}

// NewLiveHandler accepts upgrades from any origin listed in allowedOrigins, or from
// every origin when the list is empty.
func NewLiveHandler(hub StandingsHub, pSvc PoolService, uSvc UserService, allowedOrigins []string) *LiveHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &LiveHandler{
		hub:  hub,
		pSvc: pSvc,
		uSvc: uSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

// HandleLiveStandings godoc
// @Summary      Watch the standings of a pool
// @Description  Upgrades to a WebSocket. The current standings are sent on connect and again after every scored match.
// @Tags         standings
// @Produce      json
// @Param        poolID  path      int  true  "Pool ID"
// @Success      101     {string}  string  "Switching Protocols to WebSocket"
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Router       /pools/{poolID}/standings/live [get]
// @Security BearerAuth
func (h *LiveHandler) HandleLiveStandings(ctx *gin.Context) {
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

	if _, err := h.pSvc.GetPool(ctx.Request.Context(), poolID, user.ID); err != nil {
		response.RenderErr(ctx, response.FromError("HandleLiveStandings -> h.pSvc.GetPool", err))
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		zap.L().Debug("websocket upgrade failed", zap.Uint("pool_id", poolID), zap.Error(err))
		return
	}

	h.hub.Serve(conn, poolID, user.ID)
}
