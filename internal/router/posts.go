package router

import "github.com/gin-gonic/gin"

func (r *Router) postRoutes(api *gin.RouterGroup) {
	posts := api.Group("/posts")
	posts.Use(r.guard.RequireAuth())
	{
		posts.GET("", r.postHandler.List)
		posts.POST("", r.postHandler.Create)
		posts.PUT("/:id", r.postHandler.Update)
		posts.DELETE("/:id", r.postHandler.Delete)
	}
}
