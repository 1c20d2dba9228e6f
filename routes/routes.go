package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leiwu84/my-nutri/controllers"
	"github.com/leiwu84/my-nutri/middlewares"
	"github.com/leiwu84/my-nutri/models"
	"github.com/leiwu84/my-nutri/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	r.GET("/health", controllers.CheckHealth)

	foodCtl := controllers.NewFoodController(services.NewFoodService(db))
	foods := r.Group("/foods")
	{
		foods.POST("", foodCtl.Create)
		foods.GET("", foodCtl.List)
		foods.GET("/by-name/:name", foodCtl.FindByName)
		foods.GET("/:id", foodCtl.Get)
		foods.PATCH("/:id", foodCtl.Update)
		foods.DELETE("/:id", foodCtl.Delete)
	}

	// Meals and recipes are one implementation mounted twice.
	mealCtl := controllers.NewCompositeController(
		services.NewCompositeService(db, models.LabelMeal), "meals")
	registerComposite(r.Group("/meals"), mealCtl)

	recipeCtl := controllers.NewCompositeController(
		services.NewCompositeService(db, models.LabelRecipe), "recipes")
	registerComposite(r.Group("/recipes"), recipeCtl)

	consCtl := controllers.NewConsumptionController(services.NewConsumptionService(db))
	consumptions := r.Group("/consumptions")
	{
		consumptions.POST("", consCtl.Create)
		consumptions.GET("", consCtl.List)
		consumptions.GET("/by-duration", consCtl.ListByDuration)
		consumptions.GET("/:id", consCtl.Get)
		consumptions.PATCH("/:id", consCtl.Update)
		consumptions.DELETE("/:id", consCtl.Delete)
	}

	return r
}

func registerComposite(g *gin.RouterGroup, ctl *controllers.CompositeController) {
	g.POST("", ctl.Create)
	g.GET("", ctl.List)
	g.GET("/by-name/:name", ctl.FindByName)
	g.GET("/:id", ctl.Get)
	g.PATCH("/:id", ctl.Update)
	g.DELETE("/:id", ctl.Delete)
}
