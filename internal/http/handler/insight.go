package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/insight"
)

type InsightHandler struct {
	detector    insight.Detector
	predictor   insight.Predictor
	recommender insight.Recommender
}

func NewInsightHandler(detector insight.Detector, predictor insight.Predictor, recommender insight.Recommender) *InsightHandler {
	return &InsightHandler{
		detector:    detector,
		predictor:   predictor,
		recommender: recommender,
	}
}

func (h *InsightHandler) ListAnomalies(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	anomalies, err := h.detector.ListOpen(ctx, projectID)
	if err != nil {
		respondError(c, ctx, err, "failed to list anomalies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"anomalies": dto.ToAnomalyResponses(anomalies)})
}

func (h *InsightHandler) ScanProject(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	anomalies, err := h.detector.ScanProject(ctx, projectID)
	if err != nil {
		respondError(c, ctx, err, "failed to scan project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"anomalies": dto.ToAnomalyResponses(anomalies)})
}

func (h *InsightHandler) ResolveAnomaly(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.detector.Resolve(ctx, id); err != nil {
		respondError(c, ctx, err, "failed to resolve anomaly")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InsightHandler) AnalyzeSprint(c *gin.Context) {
	ctx := c.Request.Context()

	sprintID, ok := pathID(c, "id")
	if !ok {
		return
	}

	anomalies, err := h.detector.AnalyzeSprint(ctx, sprintID)
	if err != nil {
		respondError(c, ctx, err, "failed to analyze sprint")
		return
	}

	c.JSON(http.StatusOK, gin.H{"anomalies": dto.ToAnomalyResponses(anomalies)})
}

func (h *InsightHandler) PredictEffort(c *gin.Context) {
	ctx := c.Request.Context()

	issueID, ok := pathID(c, "id")
	if !ok {
		return
	}

	prediction, err := h.predictor.PredictEffort(ctx, issueID)
	if err != nil {
		respondError(c, ctx, err, "failed to predict effort")
		return
	}

	c.JSON(http.StatusOK, dto.ToEffortPredictionResponse(prediction))
}

func (h *InsightHandler) RecommendAssignees(c *gin.Context) {
	ctx := c.Request.Context()

	issueID, ok := pathID(c, "id")
	if !ok {
		return
	}

	recommendations, err := h.recommender.RecommendAssignees(ctx, issueID)
	if err != nil {
		respondError(c, ctx, err, "failed to recommend assignees")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": dto.ToRecommendationResponses(recommendations)})
}
