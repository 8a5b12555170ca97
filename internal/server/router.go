package server

import (
	"bbs/internal/handlers"
	"bbs/internal/like"
	"bbs/internal/middleware"
	"bbs/internal/post"
	"bbs/internal/reply"
	"bbs/internal/svc"
	"bbs/internal/user"

	"github.com/gin-gonic/gin"
)

const ServiceName = "college-bbs"

func NewRouter(s *svc.ServiceContext) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.TracingMiddleware(ServiceName))

	r.GET("/healthz", handlers.Health(s.DB))

	auth := middleware.JWTAuthMiddleware(s.Config, s.Cache)
	limit := func(action string) gin.HandlerFunc {
		return middleware.RateLimitMiddleware(s.Cache, action, s.Config.RateLimitWrites, s.Config.RateLimitWindow)
	}

	api := r.Group("/api")

	userHandler := user.NewUserHandler(s)
	users := api.Group("/user")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.GET("/info", auth, userHandler.GetInfo)
		users.POST("/logout", auth, userHandler.Logout)
		users.POST("/change-password", auth, userHandler.ChangePassword)
	}

	postHandler := post.NewPostHandler(s)
	posts := api.Group("/post")
	{
		posts.GET("/list", postHandler.GetList)
		posts.GET("/detail", postHandler.GetDetail)
		posts.POST("/create", auth, limit("post"), postHandler.CreatePost)
		posts.DELETE("/delete", auth, postHandler.DeletePost)
	}

	replyHandler := reply.NewReplyHandler(s)
	replies := api.Group("/reply")
	{
		replies.POST("/create", auth, limit("reply"), replyHandler.CreateReply)
		replies.DELETE("/delete", auth, replyHandler.DeleteReply)
	}

	likeHandler := like.NewLikeHandler(s)
	api.POST("/like/toggle", auth, limit("like"), likeHandler.Toggle)

	return r
}
