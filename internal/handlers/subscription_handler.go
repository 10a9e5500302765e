package handlers

import (
	"nodeBoard/internal/msgs"
	"nodeBoard/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetSubscription godoc
// @Summary      Mirrored subscription of the caller
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Response{data=models.Subscription}
// @Router       /subscription [get]
func (rh *RestHandler) GetSubscription(ctx *gin.Context) {
	subscription, err := rh.subscriptionService.Get(utils.GetUserIdFromContext(ctx))
	if err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, subscription)
}

// SyncSubscription godoc
// @Summary      Pull the caller's subscription from the payment provider
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Response{data=models.Subscription}
// @Failure      503  {object}  models.Response
// @Router       /subscription/sync [post]
func (rh *RestHandler) SyncSubscription(ctx *gin.Context) {
	subscription, err := rh.subscriptionService.Sync(ctx.Request.Context(), utils.GetUserIdFromContext(ctx))
	if err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, subscription)
}
