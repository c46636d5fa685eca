package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/claimworks/reserving/pkg/reserving"
)

var badRequestSentinels = []error{
	reserving.ErrValidation,
	reserving.ErrInvalidAmount,
	reserving.ErrInvalidProjectID,
	reserving.ErrInvalidActorID,
	reserving.ErrInvalidReserveID,
	reserving.ErrInvalidDamageItemID,
	reserving.ErrInvalidHODCodeID,
	reserving.ErrInvalidPCSumID,
	reserving.ErrInvalidReserveType,
	reserving.ErrInvalidReserveStatus,
	reserving.ErrInvalidDamageStatus,
	reserving.ErrInvalidUrgency,
	reserving.ErrInvalidDamageExtent,
	reserving.ErrInvalidPCSumStatus,
}

var notFoundSentinels = []error{
	reserving.ErrUnknownReserve,
	reserving.ErrUnknownDamageItem,
	reserving.ErrUnknownHODCode,
	reserving.ErrUnknownPCSum,
}

// respondError maps a domain failure onto an HTTP status: caller mistakes are
// 400, unknown entities 404, lifecycle conflicts 409, everything else 502.
func (handler *httpHandler) respondError(ctx *gin.Context, err error) {
	for _, sentinel := range badRequestSentinels {
		if errors.Is(err, sentinel) {
			ctx.JSON(http.StatusBadRequest, errorResponse("invalid_request", err.Error()))
			return
		}
	}
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			ctx.JSON(http.StatusNotFound, errorResponse("not_found", err.Error()))
			return
		}
	}
	if errors.Is(err, reserving.ErrInvalidStateTransition) {
		ctx.JSON(http.StatusConflict, errorResponse("invalid_state", err.Error()))
		return
	}
	handler.logger.Error("reserving request failed", zap.Error(err))
	ctx.JSON(http.StatusBadGateway, errorResponse("store_error", err.Error()))
}

func errorResponse(code string, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}
