package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) listChallenges(c *gin.Context) {
	list, err := s.challenges.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err, "Challenge")
		return
	}

	out := make([]api.Challenge, 0, len(list))
	for _, v := range list {
		out = append(out, toChallenge(v))
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) getChallenge(c *gin.Context) {
	v, err := s.challenges.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.fail(c, err, "Challenge")
		return
	}
	c.JSON(http.StatusOK, toChallenge(v))
}

func (s *HTTPServer) challengeEntries(c *gin.Context) {
	list, err := s.challenges.Entries(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.fail(c, err, "Challenge")
		return
	}
	c.JSON(http.StatusOK, toEntries(list))
}

func (s *HTTPServer) createChallenge(c *gin.Context) {
	var req api.ChallengeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	v, err := s.challenges.Create(c.Request.Context(), currentUser(c).ID, challengeInput(req))
	if err != nil {
		s.fail(c, err, "Challenge")
		return
	}
	c.JSON(http.StatusCreated, toChallenge(v))
}

func (s *HTTPServer) updateChallenge(c *gin.Context) {
	var req api.ChallengeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	v, err := s.challenges.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), challengeInput(req))
	if err != nil {
		s.fail(c, err, "Challenge")
		return
	}
	c.JSON(http.StatusOK, toChallenge(v))
}

func (s *HTTPServer) deleteChallenge(c *gin.Context) {
	n, err := s.challenges.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.fail(c, err, "Challenge")
		return
	}
	c.JSON(http.StatusOK, api.DeleteChallengeResult{Message: "Challenge removed", EntriesRemoved: n})
}
