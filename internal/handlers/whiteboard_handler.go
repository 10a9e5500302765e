package handlers

import (
	"context"
	"errors"
	"net/http"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/msgs"
	"nodeBoard/internal/utils"

	"github.com/gin-gonic/gin"
)

// CreateWhiteboard godoc
// @Summary      Create a whiteboard
// @Tags         whiteboards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.CreateWhiteboardRequest  true  "Whiteboard"
// @Success      200   {object}  models.Response{data=models.Whiteboard}
// @Failure      400   {object}  models.Response
// @Router       /whiteboards [post]
func (rh *RestHandler) CreateWhiteboard(ctx *gin.Context) {
	var request models.CreateWhiteboardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, errs.ErrInvalidRequestBody)
		return
	}

	whiteboard, errors := rh.whiteboardService.CreateWhiteboard(utils.GetUserIdFromContext(ctx), &request)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors...)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, whiteboard)
}

// GetWhiteboards godoc
// @Summary      List the caller's whiteboards
// @Tags         whiteboards
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  models.Response{data=models.PaginatedResponse}
// @Router       /whiteboards [get]
func (rh *RestHandler) GetWhiteboards(ctx *gin.Context) {
	page, size := utils.GetPagination(ctx)
	whiteboards, err := rh.whiteboardService.GetUserWhiteboards(utils.GetUserIdFromContext(ctx), page, size)
	if err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, whiteboards)
}

// GetWhiteboard godoc
// @Summary      Get one whiteboard with its nodes and edges
// @Tags         whiteboards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Whiteboard ID"
// @Success      200  {object}  models.Response{data=models.Whiteboard}
// @Failure      404  {object}  models.Response
// @Router       /whiteboards/{id} [get]
func (rh *RestHandler) GetWhiteboard(ctx *gin.Context) {
	whiteboardID, ok := rh.whiteboardIDParam(ctx)
	if !ok {
		return
	}
	whiteboard, err := rh.whiteboardService.GetWhiteboard(utils.GetUserIdFromContext(ctx), whiteboardID)
	if err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, whiteboard)
}

// UpdateWhiteboard godoc
// @Summary      Rename a whiteboard or replace its graph
// @Tags         whiteboards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                             true  "Whiteboard ID"
// @Param        body  body      models.UpdateWhiteboardRequest  true  "Changes"
// @Success      200   {object}  models.Response{data=models.Whiteboard}
// @Failure      400   {object}  models.Response
// @Failure      404   {object}  models.Response
// @Router       /whiteboards/{id} [put]
func (rh *RestHandler) UpdateWhiteboard(ctx *gin.Context) {
	whiteboardID, ok := rh.whiteboardIDParam(ctx)
	if !ok {
		return
	}
	var request models.UpdateWhiteboardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, errs.ErrInvalidRequestBody)
		return
	}

	whiteboard, errors := rh.whiteboardService.UpdateWhiteboard(ctx.Request.Context(), utils.GetUserIdFromContext(ctx), whiteboardID, &request)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors...)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, whiteboard)
}

// DeleteWhiteboard godoc
// @Summary      Delete a whiteboard and its generated files
// @Tags         whiteboards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Whiteboard ID"
// @Success      200  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /whiteboards/{id} [delete]
func (rh *RestHandler) DeleteWhiteboard(ctx *gin.Context) {
	whiteboardID, ok := rh.whiteboardIDParam(ctx)
	if !ok {
		return
	}
	if err := rh.whiteboardService.DeleteWhiteboard(ctx.Request.Context(), utils.GetUserIdFromContext(ctx), whiteboardID); err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgWhiteboardDeleted, nil)
}

// GetWhiteboardAssets godoc
// @Summary      List generated images, speeches and websites of a whiteboard
// @Tags         whiteboards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Whiteboard ID"
// @Success      200  {object}  models.Response{data=models.WhiteboardAssets}
// @Failure      404  {object}  models.Response
// @Router       /whiteboards/{id}/assets [get]
func (rh *RestHandler) GetWhiteboardAssets(ctx *gin.Context) {
	whiteboardID, ok := rh.whiteboardIDParam(ctx)
	if !ok {
		return
	}
	assets, err := rh.whiteboardService.GetWhiteboardAssets(utils.GetUserIdFromContext(ctx), whiteboardID)
	if err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, assets)
}

// ExecuteWhiteboard godoc
// @Summary      Run the graph from a node
// @Description  Walks the graph depth first from node_id and runs every node it can.
// @Description  A run that stops early still returns the partial result.
// @Tags         whiteboards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Whiteboard ID"
// @Param        body  body      models.ExecuteRequest  true  "Start node"
// @Success      200   {object}  models.Response{data=execution.Result}
// @Failure      404   {object}  models.Response
// @Failure      409   {object}  models.Response
// @Failure      429   {object}  models.Response
// @Router       /whiteboards/{id}/execute [post]
func (rh *RestHandler) ExecuteWhiteboard(ctx *gin.Context) {
	whiteboardID, ok := rh.whiteboardIDParam(ctx)
	if !ok {
		return
	}
	var request models.ExecuteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, errs.ErrInvalidRequestBody)
		return
	}

	result, err := rh.executionService.Execute(ctx.Request.Context(), utils.GetUserIdFromContext(ctx), whiteboardID, request.NodeID)
	if err != nil {
		if result == nil {
			abortWithErrors(ctx, err)
			return
		}
		status := statusForError(err)
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		if status == http.StatusInternalServerError {
			abortWithErrors(ctx, err)
			return
		}
		ctx.JSON(status, models.Response{
			Success: false,
			Message: msgs.MsgExecutionStopped,
			Errors:  []error{err},
			Data:    result,
		})
		return
	}
	respondOK(ctx, msgs.MsgExecutionFinished, result)
}

func (rh *RestHandler) whiteboardIDParam(ctx *gin.Context) (uint, bool) {
	whiteboardID, ok := utils.ParseUintParam(ctx, "id")
	if !ok {
		abortWithErrors(ctx, errs.ErrInvalidWhiteboardId)
		return 0, false
	}
	return whiteboardID, true
}
