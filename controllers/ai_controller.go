package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/models"
	"backend/services"
	"backend/utils"
)

type AIController struct {
	Coach    *services.CoachService
	Foods    *services.SpoonacularService
	Insights *services.InsightService
	Logs     *services.LogService
}

func NewAIController(coach *services.CoachService, foods *services.SpoonacularService, insights *services.InsightService, logs *services.LogService) *AIController {
	return &AIController{Coach: coach, Foods: foods, Insights: insights, Logs: logs}
}

func (ac *AIController) NutritionSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter required"})
		return
	}

	results, err := ac.Foods.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, utils.ErrUpstreamUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

type CoachInput struct {
	Baby            map[string]any `json:"baby"`
	Insights        []any          `json:"insights"`
	Recommendations map[string]any `json:"recommendations"`
}

func (ac *AIController) CoachMessage(c *gin.Context) {
	var input CoachInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ac.Coach.Coach(c.Request.Context(), input.Baby, input.Insights, input.Recommendations)
	if err != nil {
		if errors.Is(err, utils.ErrMissingInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if resp.Kind == models.ResponseRaw {
		c.JSON(http.StatusOK, gin.H{"result": resp.Raw, "parseError": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": resp.Structured})
}

type ChatInput struct {
	Baby         map[string]any         `json:"baby"`
	RecentLogs   []any                  `json:"recentLogs"`
	Conversation []services.ChatMessage `json:"conversation"`
	UserMessage  string                 `json:"userMessage"`
}

func (ac *AIController) Chat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.UserMessage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userMessage"})
		return
	}

	// Fiber ranking questions are answered from the catalog, not the model.
	if services.IsFiberRankingQuestion(input.UserMessage) {
		foods, err := ac.Insights.TopFiberFoods(5)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": services.FiberRankingReply(foods)})
		return
	}

	reply, err := ac.Coach.Chat(c.Request.Context(), input.Baby, input.RecentLogs, input.Conversation, input.UserMessage)
	if err != nil {
		if errors.Is(err, utils.ErrMissingInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if reply == "" {
		reply = "Sorry, I couldn't generate a response."
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (ac *AIController) childIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("childId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "childId query parameter required"})
		return 0, false
	}
	return uint(id), true
}

func (ac *AIController) Summary(c *gin.Context) {
	childID, ok := ac.childIDParam(c)
	if !ok {
		return
	}
	if _, ok := childForUser(c, childID); !ok {
		return
	}

	summary, err := ac.Insights.Summary(childID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (ac *AIController) DailyInsight(c *gin.Context) {
	childID, ok := ac.childIDParam(c)
	if !ok {
		return
	}
	if _, ok := childForUser(c, childID); !ok {
		return
	}

	insight, err := ac.Insights.DailyInsight(childID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, insight)
}

func (ac *AIController) Recommendations(c *gin.Context) {
	childID, ok := ac.childIDParam(c)
	if !ok {
		return
	}
	child, ok := childForUser(c, childID)
	if !ok {
		return
	}

	recs, err := ac.Insights.Recommendations(*child)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recs)
}
