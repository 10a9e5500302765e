package handlers

import (
	"net/http"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
	"nodeBoard/internal/msgs"
	"nodeBoard/internal/services"
	"nodeBoard/internal/utils"

	"github.com/gin-gonic/gin"
)

type RestHandler struct {
	authService         *services.AuthenticationService
	whiteboardService   *services.WhiteboardService
	executionService    *services.ExecutionService
	creditService       *services.CreditService
	subscriptionService *services.SubscriptionService
	limiter             interfaces.RateLimiter
	jwtKey              []byte
}

func NewRestHandler(
	authService *services.AuthenticationService,
	whiteboardService *services.WhiteboardService,
	executionService *services.ExecutionService,
	creditService *services.CreditService,
	subscriptionService *services.SubscriptionService,
	limiter interfaces.RateLimiter,
	jwtKey []byte,
) *RestHandler {
	return &RestHandler{
		authService:         authService,
		whiteboardService:   whiteboardService,
		executionService:    executionService,
		creditService:       creditService,
		subscriptionService: subscriptionService,
		limiter:             limiter,
		jwtKey:              jwtKey,
	}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.Response
// @Router       /health [get]
func (rh *RestHandler) Health(ctx *gin.Context) {
	respondOK(ctx, msgs.MsgOperationSuccessful, gin.H{"status": "ok"})
}

// Login godoc
// @Summary      Login user to account
// @Description  Exchange email and password for a JWT
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequestBody  true  "Credentials"
// @Success      200   {object}  models.Response{data=models.LoginResponse}
// @Failure      400   {object}  models.Response
// @Failure      401   {object}  models.Response
// @Router       /login [post]
func (rh *RestHandler) Login(ctx *gin.Context) {
	var loginData models.LoginRequestBody
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		abortWithErrors(ctx, errs.ErrInvalidRequestBody)
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  loginErrs,
		})
		return
	}

	respondOK(ctx, msgs.MsgOperationSuccessful, loginResponse)
}

// Register godoc
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      models.User  true  "Account"
// @Success      200   {object}  models.Response{data=models.ProfileResponse}
// @Failure      400   {object}  models.Response
// @Failure      409   {object}  models.Response
// @Router       /register [post]
func (rh *RestHandler) Register(ctx *gin.Context) {
	var user models.User
	if err := ctx.ShouldBindJSON(&user); err != nil {
		abortWithErrors(ctx, errs.ErrInvalidRequestBody)
		return
	}

	created, registerErrs := rh.authService.Register(&user)
	if len(registerErrs) > 0 {
		abortWithErrors(ctx, registerErrs...)
		return
	}

	respondOK(ctx, msgs.MsgUserCreatedSuccessfully, created.ToProfileResponse())
}

// Me godoc
// @Summary      Current user profile
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Response{data=models.ProfileResponse}
// @Failure      401  {object}  models.Response
// @Router       /me [get]
func (rh *RestHandler) Me(ctx *gin.Context) {
	profile, err := rh.authService.GetProfile(utils.GetUserIdFromContext(ctx))
	if err != nil {
		abortWithErrors(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, profile)
}
