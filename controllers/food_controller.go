package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leiwu84/my-nutri/models"
	"github.com/leiwu84/my-nutri/services"
)

type FoodController struct {
	svc *services.FoodService
}

func NewFoodController(svc *services.FoodService) *FoodController {
	return &FoodController{svc: svc}
}

// POST /foods
func (ctl *FoodController) Create(c *gin.Context) {
	var body []models.FoodCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	res, err := ctl.svc.CreateFoods(body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"detail":  res.Detail("food items"),
		"created": res.Created,
		"skipped": res.Skipped,
	})
}

// GET /foods?offset=&limit=
func (ctl *FoodController) List(c *gin.Context) {
	offset, limit, ok := pagination(c)
	if !ok {
		return
	}
	foods, err := ctl.svc.ListFoods(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GET /foods/:id
func (ctl *FoodController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	food, err := ctl.svc.GetFood(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// GET /foods/by-name/:name?kind=
func (ctl *FoodController) FindByName(c *gin.Context) {
	foods, err := ctl.svc.FindFoodsByName(c.Param("name"), c.Query("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// PATCH /foods/:id
func (ctl *FoodController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.FoodPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	food, err := ctl.svc.UpdateFood(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// DELETE /foods/:id
func (ctl *FoodController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.svc.DeleteFood(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": fmt.Sprintf("Food with ID %d deleted.", id)})
}
