package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/services"
	"backend/utils"
)

type LogController struct {
	Logs *services.LogService
}

func NewLogController(logs *services.LogService) *LogController {
	return &LogController{Logs: logs}
}

func (lc *LogController) CreateDailyLog(c *gin.Context) {
	var draft services.DailyLogDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := lc.Logs.SaveDailyLog(c.GetUint("userID"), draft)
	if err != nil {
		if mre := utils.AsMissingRequiredField(err); mre != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": mre.Error(), "missingFields": mre.Fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": entry, "totals": lc.Logs.DraftTotals(draft.Foods)})
}

func (lc *LogController) ListDailyLogs(c *gin.Context) {
	childID, err := strconv.ParseUint(c.Query("childId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "childId query parameter required"})
		return
	}

	logs, err := lc.Logs.ListLogs(c.GetUint("userID"), uint(childID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
