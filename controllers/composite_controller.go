package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leiwu84/my-nutri/models"
	"github.com/leiwu84/my-nutri/services"
)

// CompositeController serves one composite catalog; the meal and
// recipe route groups are two instances over differently-labelled
// services.
type CompositeController struct {
	svc  *services.CompositeService
	noun string // "meals" / "recipes", for detail strings
}

func NewCompositeController(svc *services.CompositeService, noun string) *CompositeController {
	return &CompositeController{svc: svc, noun: noun}
}

// POST /meals, POST /recipes
func (ctl *CompositeController) Create(c *gin.Context) {
	var body []models.CompositeCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	res, err := ctl.svc.CreateComposites(body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"detail":  res.Detail(ctl.noun),
		"created": res.Created,
		"skipped": res.Skipped,
	})
}

func (ctl *CompositeController) List(c *gin.Context) {
	offset, limit, ok := pagination(c)
	if !ok {
		return
	}
	views, err := ctl.svc.ListComposites(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (ctl *CompositeController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := ctl.svc.GetComposite(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctl *CompositeController) FindByName(c *gin.Context) {
	views, err := ctl.svc.FindCompositesByName(c.Param("name"), c.Query("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (ctl *CompositeController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.CompositePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	view, err := ctl.svc.UpdateComposite(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctl *CompositeController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.svc.DeleteComposite(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": fmt.Sprintf("Item with ID %d deleted.", id)})
}
