package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Client-visible messages. The API speaks plain text for outcomes and
// errors, and JSON for data payloads.
const (
	MsgUserCreated     = "User created successfully"
	MsgUserExists      = "User already exists"
	MsgPasswordShort   = "Password is too short"
	MsgInvalidUser     = "Invalid user"
	MsgInvalidPassword = "Invalid Password"
	MsgInvalidJWT      = "Invalid JWT Token"
	MsgInvalidRequest  = "Invalid Request"
	MsgTweetCreated    = "Tweet created successfully"
	MsgInternalError   = "Internal Server Error"
)

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Text(c *gin.Context, status int, message string) {
	c.String(status, message)
}

func BadRequest(c *gin.Context, message string) {
	c.String(http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	c.String(http.StatusUnauthorized, message)
}

func InternalError(c *gin.Context) {
	c.String(http.StatusInternalServerError, MsgInternalError)
}
