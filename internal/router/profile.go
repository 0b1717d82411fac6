package router

import "github.com/gin-gonic/gin"

func (r *Router) profileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile")
	profile.Use(r.guard.RequireAuth())
	{
		profile.GET("/:id", r.profileHandler.Get)
		profile.POST("", r.profileHandler.Create)
		profile.PUT("/:id", r.profileHandler.Update)
		profile.POST("/:id/avatar", r.profileHandler.UpdateAvatar)
	}
}
