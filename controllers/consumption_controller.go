package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leiwu84/my-nutri/models"
	"github.com/leiwu84/my-nutri/services"
)

type ConsumptionController struct {
	svc *services.ConsumptionService
}

func NewConsumptionController(svc *services.ConsumptionService) *ConsumptionController {
	return &ConsumptionController{svc: svc}
}

// POST /consumptions
func (ctl *ConsumptionController) Create(c *gin.Context) {
	var body []models.ConsumptionCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	created, err := ctl.svc.CreateConsumptions(body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"detail":  fmt.Sprintf("%d consumptions created successfully.", created),
		"created": created,
	})
}

// GET /consumptions?offset=&limit=
func (ctl *ConsumptionController) List(c *gin.Context) {
	offset, limit, ok := pagination(c)
	if !ok {
		return
	}
	views, err := ctl.svc.ListConsumptions(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /consumptions/by-duration?start=&end=
func (ctl *ConsumptionController) ListByDuration(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required"})
		return
	}

	views, err := ctl.svc.ListConsumptionsByRange(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /consumptions/:id
func (ctl *ConsumptionController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := ctl.svc.GetConsumption(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PATCH /consumptions/:id
func (ctl *ConsumptionController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.ConsumptionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := ctl.svc.UpdateConsumption(id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": fmt.Sprintf("Consumption with ID %d updated.", id)})
}

// DELETE /consumptions/:id
func (ctl *ConsumptionController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.svc.DeleteConsumption(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": fmt.Sprintf("Consumption with ID %d deleted.", id)})
}
