package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"twitterclone/internal/app"
	"twitterclone/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	err := h.authService.Register(app.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Gender:   req.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserExists):
			response.BadRequest(c, response.MsgUserExists)
		case errors.Is(err, app.ErrPasswordTooShort):
			response.BadRequest(c, response.MsgPasswordShort)
		default:
			log.Printf("register failed: %v", err)
			response.InternalError(c)
		}
		return
	}

	response.Text(c, http.StatusOK, response.MsgUserCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	token, err := h.authService.Login(app.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUnknownUser):
			response.BadRequest(c, response.MsgInvalidUser)
		case errors.Is(err, app.ErrWrongPassword):
			response.BadRequest(c, response.MsgInvalidPassword)
		default:
			log.Printf("login failed: %v", err)
			response.InternalError(c)
		}
		return
	}

	response.OK(c, gin.H{"jwtToken": token})
}
