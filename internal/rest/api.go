package rest

import "github.com/gin-gonic/gin"

// NewApi registers every route the server exposes.
func NewApi(router *gin.Engine, posts *PostsHandler, upload *UploadHandler) {
	blog := router.Group("/api/blog")
	{
		blog.GET("", posts.List)
		blog.POST("", posts.Create)
		blog.GET("/:slug", posts.Get)
		blog.PUT("/:slug", posts.Update)
		blog.DELETE("/:slug", posts.Delete)
	}

	router.POST("/api/upload", upload.Upload)
	router.Static("/uploads", upload.Dir())
}
