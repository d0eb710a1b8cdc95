package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/config"
	"backend/models"
)

type ChildInput struct {
	Name      string   `json:"name" binding:"required"`
	AgeMonths int      `json:"ageMonths" binding:"required"`
	WeightKg  float64  `json:"weightKg"`
	Allergies []string `json:"allergies"`
}

func CreateChild(c *gin.Context) {
	var input ChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	child := models.Child{
		ParentID:  c.GetUint("userID"),
		Name:      input.Name,
		AgeMonths: input.AgeMonths,
		WeightKg:  input.WeightKg,
		Allergies: strings.Join(input.Allergies, ","),
	}
	if err := config.DB.Create(&child).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"child": child})
}

func ListChildren(c *gin.Context) {
	var children []models.Child
	if err := config.DB.Where("parent_id = ?", c.GetUint("userID")).Find(&children).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"children": children})
}

// childForUser loads a child and enforces parent ownership.
func childForUser(c *gin.Context, childID uint) (*models.Child, bool) {
	var child models.Child
	if err := config.DB.Where("id = ? AND parent_id = ?", childID, c.GetUint("userID")).
		First(&child).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Child not found for this user"})
		return nil, false
	}
	return &child, true
}
