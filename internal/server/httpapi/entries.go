package httpapi

import (
	"bytes"
	"net/http"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/server/export"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) listEntries(c *gin.Context) {
	list, err := s.entries.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err, "Entry")
		return
	}
	c.JSON(http.StatusOK, toEntries(list))
}

func (s *HTTPServer) getEntry(c *gin.Context) {
	e, err := s.entries.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.fail(c, err, "Entry")
		return
	}
	c.JSON(http.StatusOK, toEntry(e))
}

func (s *HTTPServer) createEntry(c *gin.Context) {
	var req api.EntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	e, err := s.entries.Create(c.Request.Context(), currentUser(c).ID, entryInput(req))
	if err != nil {
		s.fail(c, err, "Entry")
		return
	}
	c.JSON(http.StatusCreated, toEntry(e))
}

func (s *HTTPServer) updateEntry(c *gin.Context) {
	var req api.EntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	e, err := s.entries.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), entryInput(req))
	if err != nil {
		s.fail(c, err, "Entry")
		return
	}
	c.JSON(http.StatusOK, toEntry(e))
}

func (s *HTTPServer) deleteEntry(c *gin.Context) {
	if err := s.entries.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		s.fail(c, err, "Entry")
		return
	}
	c.JSON(http.StatusOK, api.Message{Message: "Entry removed"})
}

func (s *HTTPServer) stats(c *gin.Context) {
	st, err := s.entries.Stats(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err, "Entry")
		return
	}
	c.JSON(http.StatusOK, toStats(st))
}

func (s *HTTPServer) exportEntries(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		s.fail(c, err, "Entry")
		return
	}

	list, err := s.entries.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err, "Entry")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, list); err != nil {
		s.fail(c, err, "Entry")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+format.Filename(s.now())+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
