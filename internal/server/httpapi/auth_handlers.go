package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		badPayload(c)
		return
	}

	u, err := s.accounts.Register(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": u.ID, "username": u.UserName})
}

// login issues tokens and warms the user's session. A failed warm-up is
// only logged: the session loads lazily on the next item request.
func (s *Server) login(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		badPayload(c)
		return
	}

	ctx := c.Request.Context()
	pair, err := s.accounts.Login(ctx, body.Username, body.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.sessions.SignedIn(ctx, pair.UserID); err != nil {
		s.logger.Warn(ctx, "session warm-up failed", "user_id", pair.UserID, "error", err)
	}
	c.JSON(http.StatusOK, pair)
}

func (s *Server) refresh(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
		badPayload(c)
		return
	}

	pair, err := s.accounts.RefreshToken(c.Request.Context(), body.RefreshToken)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (s *Server) logout(c *gin.Context) {
	userID := currentUser(c)
	if err := s.accounts.Logout(c.Request.Context(), userID); err != nil {
		s.writeError(c, err)
		return
	}
	s.sessions.SignedOut(userID)
	c.Status(http.StatusNoContent)
}
