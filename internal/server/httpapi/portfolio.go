package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) getPortfolio(c *gin.Context) {
	p, err := s.portfolio.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.fail(c, err, "Portfolio")
		return
	}

	c.JSON(http.StatusOK, api.Portfolio{
		User:    api.PortfolioUser{ID: p.User.ID, Name: p.User.Name, Avatar: p.User.Avatar},
		Stats:   toStats(p.Stats),
		Entries: toEntries(p.Entries),
	})
}

func (s *HTTPServer) getPortfolioEntry(c *gin.Context) {
	e, err := s.portfolio.ViewEntry(c.Request.Context(), c.Param("userId"), c.Param("id"))
	if err != nil {
		s.fail(c, err, "Entry")
		return
	}
	c.JSON(http.StatusOK, toEntry(e))
}
