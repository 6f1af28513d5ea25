package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video-hosting/pkg/handlers"
	"video-hosting/pkg/realtime"
)

// Deps carries everything route registration needs.
type Deps struct {
	Categories *handlers.CategoryHandler
	Videos     *handlers.VideoHandler
	Users      *handlers.UserHandler
	Hub        *realtime.Hub
	Protect    gin.HandlerFunc
	Admin      gin.HandlerFunc
}

func Register(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Video Hosting API is running")
	})
	r.GET("/ws", d.Hub.HandleWS)

	api := r.Group("/api")

	categories := api.Group("/categories")
	{
		categories.POST("", d.Categories.Add)
		categories.GET("", d.Categories.List)
		categories.GET("/:id", d.Categories.Get)
		categories.PUT("/:id", d.Categories.Update)
		categories.DELETE("/:id", d.Categories.Delete)
	}

	videos := api.Group("/videos")
	{
		videos.POST("", d.Videos.Upload)
		videos.GET("", d.Videos.List)
		videos.GET("/:id", d.Videos.Get)
		videos.PUT("/:id", d.Videos.Update)
		videos.DELETE("/:id", d.Videos.Delete)
	}

	users := api.Group("/users")
	{
		users.POST("/register", d.Users.Register)
		users.POST("/login", d.Users.Login)
		users.GET("/profile", d.Protect, d.Users.Profile)
		users.GET("", d.Protect, d.Admin, d.Users.List)
	}
}
