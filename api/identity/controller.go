package identity

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles HTTP requests related to authentication.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.registerPlayer)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
}

// registerPlayer handles player registration.
func (c *IdentityServer) registerPlayer(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := c.authService.Register(ctx.Request.Context(), request.Username, request.Password)
	switch {
	case errors.Is(err, domain.ErrUsernameConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case isValidationError(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while registering player"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Player registered successfully", "id": player.ID.String()})
}

// login handles player login.
func (c *IdentityServer) login(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, token, err := c.authService.SignIn(ctx.Request.Context(), request.Username, request.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while signing in"})
		return
	}

	response := &AuthResponse{
		ID:       player.ID.String(),
		Username: player.Username,
		Token:    token,
	}
	ctx.JSON(http.StatusOK, response)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrUsernameTooShort,
		domain.ErrUsernameTooLong,
		domain.ErrInvalidUsername,
		domain.ErrWeakPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
