package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/gin-gonic/gin"
)

// AI endpoints always answer 200: the assistant substitutes fallbacks for
// any failure, including an unreadable body.

func (s *HTTPServer) takeaway(c *gin.Context) {
	var req api.TakeawayRequest
	_ = c.ShouldBindJSON(&req)

	c.JSON(http.StatusOK, api.TakeawayResponse{Takeaway: s.ai.Takeaway(c.Request.Context(), req.Content)})
}

func (s *HTTPServer) suggestions(c *gin.Context) {
	var req api.SuggestionsRequest
	_ = c.ShouldBindJSON(&req)

	c.JSON(http.StatusOK, api.SuggestionsResponse{
		Suggestions: s.ai.Suggestions(c.Request.Context(), req.Topic, req.Category),
	})
}

func (s *HTTPServer) deepDive(c *gin.Context) {
	var req api.DeepDiveRequest
	_ = c.ShouldBindJSON(&req)

	res := s.ai.DeepDive(c.Request.Context(), req.Topic)
	out := api.DeepDiveResponse{Text: res.Text, Sources: make([]api.Source, 0, len(res.Sources))}
	for _, src := range res.Sources {
		out.Sources = append(out.Sources, api.Source{Title: src.Title, URI: src.URI})
	}
	c.JSON(http.StatusOK, out)
}
