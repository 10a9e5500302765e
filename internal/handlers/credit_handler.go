package handlers

import (
	"nodeBoard/internal/msgs"
	"nodeBoard/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetCredits godoc
// @Summary      Credit balance per credit type
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Response{data=[]models.CreditBalance}
// @Router       /credits [get]
func (rh *RestHandler) GetCredits(ctx *gin.Context) {
	balances, err := rh.creditService.Balances(utils.GetUserIdFromContext(ctx))
	if err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, balances)
}

// GetCreditTransactions godoc
// @Summary      Credit ledger, newest first
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  models.Response{data=models.PaginatedResponse}
// @Router       /credits/transactions [get]
func (rh *RestHandler) GetCreditTransactions(ctx *gin.Context) {
	page, size := utils.GetPagination(ctx)
	history, err := rh.creditService.History(utils.GetUserIdFromContext(ctx), page, size)
	if err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, history)
}
