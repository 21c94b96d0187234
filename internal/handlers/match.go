package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"companion-matcher/internal/apperr"
	"companion-matcher/internal/matching"
	"companion-matcher/internal/models"
)

type MatchHandler struct {
	engine *matching.Engine
}

func NewMatchHandler(engine *matching.Engine) *MatchHandler {
	return &MatchHandler{engine: engine}
}

// GetMatches returns the ranked candidates for a user, most compatible first.
// Results are recomputed from the directory on every call.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	username := c.Param("username")

	matches, err := h.engine.ComputeMatches(username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			logrus.WithError(err).Error("match computation failed")
		}
		c.JSON(apperr.StatusOf(err), models.GetMatchesResponse{
			Matches:      []models.UserMatch{},
			TotalMatches: 0,
		})
		return
	}

	c.JSON(http.StatusOK, models.GetMatchesResponse{
		Matches:      matches,
		TotalMatches: len(matches),
	})
}
