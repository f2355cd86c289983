package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	res, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.fail(c, err, "User")
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", res.User.ID)

	out := toUser(res.User)
	out.Token = res.Token
	c.JSON(http.StatusCreated, out)
}

func (s *HTTPServer) login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Message{Message: "Invalid email or password"})
			return
		}
		s.fail(c, err, "User")
		return
	}

	out := toUser(res.User)
	out.Token = res.Token
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) me(c *gin.Context) {
	u, err := s.users.Profile(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, toUser(u))
}

func (s *HTTPServer) avatar(c *gin.Context) {
	up, err := s.users.RequestAvatarUpload(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, api.AvatarUpload{UploadURL: up.UploadURL, User: toUser(up.User)})
}
