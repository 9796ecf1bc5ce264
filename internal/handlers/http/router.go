package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/socialnet-backend/docs" // registra a documentação swagger
	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/handlers/middleware"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/i18n"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/realtime"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// RouterDeps reúne o que o roteador precisa para montar as rotas
type RouterDeps struct {
	Env            string
	BaseURL        string
	AllowedOrigins string

	Logger ports.Logger
	I18n   *i18n.Service
	Tokens ports.TokenManager
	Hub    *realtime.Hub

	Auth       *services.AuthService
	Users      *services.UserService
	Social     *services.SocialService
	Posts      *services.PostService
	Activities *services.ActivityService
	Moderation *services.ModerationService
}

// NewRouter cria o engine Gin com middlewares e rotas da API
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	errs := NewErrorResponder(deps.Logger)
	auth := middleware.NewAuthMiddleware(deps.Tokens, deps.Users, errs.Respond, deps.Logger)

	authHandler := NewAuthHandler(deps.Auth, errs)
	userHandler := NewUserHandler(deps.Users, deps.Social, errs)
	postHandler := NewPostHandler(deps.Posts, errs)
	activityHandler := NewActivityHandler(deps.Activities, deps.Hub, errs)
	adminHandler := NewAdminHandler(deps.Moderation, errs)
	ownerHandler := NewOwnerHandler(deps.Moderation, errs)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))

	// Base URL das URIs de problema RFC 7807
	router.Use(func(c *gin.Context) {
		c.Set(dto.BaseURLContextKey, deps.BaseURL)
		c.Next()
	})

	router.Use(middleware.NewI18nMiddleware(deps.I18n).DetectLanguage())
	router.Use(middleware.CORS(deps.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NotFoundRouteResponseI18n(c))
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": dto.T(c, "api.running"),
			"env":     deps.Env,
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", auth.RequireAuth(), authHandler.Me)
	}

	// websocket: token também aceito em ?token=
	api.GET("/activities/stream", auth.RequireAuthOrQuery(), activityHandler.Stream)

	protected := api.Group("", auth.RequireAuth())

	activities := protected.Group("/activities")
	{
		activities.GET("", activityHandler.Wall)
		activities.GET("/user/:userId", activityHandler.UserActivities)
	}

	posts := protected.Group("/posts")
	{
		posts.GET("", postHandler.ListFeed)
		posts.POST("", postHandler.CreatePost)
		posts.GET("/user/:userId", postHandler.ListUserPosts)
		posts.GET("/:id", postHandler.GetPost)
		posts.PUT("/:id", postHandler.UpdatePost)
		posts.DELETE("/:id", postHandler.DeletePost)
		posts.POST("/:id/like", postHandler.LikePost)
		posts.DELETE("/:id/unlike", postHandler.UnlikePost)
	}

	users := protected.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.GET("/:id", userHandler.GetUser)
		users.POST("/:id/follow", userHandler.Follow)
		users.DELETE("/:id/unfollow", userHandler.Unfollow)
		users.POST("/:id/block", userHandler.Block)
		users.DELETE("/:id/unblock", userHandler.Unblock)
	}

	admin := protected.Group("/admin", auth.RequireRole(entities.RoleAdmin))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.GET("/posts", adminHandler.ListPosts)
		admin.DELETE("/posts/:id", adminHandler.DeletePost)
		admin.DELETE("/posts/:id/likes/:userId", adminHandler.RemoveLike)
	}

	owner := protected.Group("/owner", auth.RequireRole(entities.RoleOwner))
	{
		owner.GET("/admins", ownerHandler.ListAdmins)
		owner.POST("/admins", ownerHandler.Promote)
		owner.DELETE("/admins/:id", ownerHandler.Demote)
	}

	return router, nil
}
