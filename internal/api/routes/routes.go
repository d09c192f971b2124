package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nhatrovn/rental-backend/internal/api/handlers"
	"github.com/nhatrovn/rental-backend/internal/api/middleware"
	"github.com/nhatrovn/rental-backend/internal/config"
	"github.com/nhatrovn/rental-backend/internal/services"
	"github.com/nhatrovn/rental-backend/pkg/logger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg))

	var validationService *services.ValidationService
	if cfg.AbstractEmailAPIKey != "" || cfg.AbstractPhoneNumberAPIKey != "" {
		validationService = services.NewValidationService(
			cfg.AbstractEmailAPIKey,
			cfg.AbstractPhoneNumberAPIKey,
		)
	}

	var s3Service *services.S3Service
	if cfg.S3BucketName != "" {
		s3Service = services.NewS3Service(cfg.S3Region, cfg.S3BucketName, cfg.S3AccessKey, cfg.S3SecretKey)
	}

	// Initialize services
	emailService := services.NewEmailService(cfg)
	authService := services.NewAuthService(db, cfg.JWTSecret, validationService, emailService, s3Service, cfg.BaseURL)
	reviewService := services.NewReviewService(db)
	postService := services.NewPostService(db, s3Service)
	blogService := services.NewBlogService(db, s3Service)
	catalogService := services.NewCatalogService(db)
	lessorService := services.NewLessorService(db, s3Service, emailService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	passwordHandler := handlers.NewPasswordHandler(authService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	postHandler := handlers.NewPostHandler(postService)
	blogHandler := handlers.NewBlogHandler(blogService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	lessorHandler := handlers.NewLessorHandler(lessorService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// API routes
	api := router.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.GET("/profile", middleware.AuthMiddleware(cfg), authHandler.GetProfile)
		auth.PUT("/profile-update", middleware.AuthMiddleware(cfg), authHandler.UpdateProfile)
		auth.PUT("/avatar", middleware.AuthMiddleware(cfg), authHandler.UpdateAvatar)
	}

	// Password reset routes
	passwordGroup := api.Group("/password")
	{
		passwordGroup.POST("/forgot", passwordHandler.ForgotPassword)
		passwordGroup.GET("/validate-reset-token", passwordHandler.ValidateResetToken)
		passwordGroup.POST("/reset", passwordHandler.ResetPassword)
		passwordGroup.POST("/change", middleware.AuthMiddleware(cfg), passwordHandler.ChangePassword)
	}

	// Post routes
	posts := api.Group("/posts")
	{
		posts.GET("/", postHandler.GetPosts)
		posts.GET("/:id", postHandler.GetPostByID)
		posts.GET("/:id/reviews", reviewHandler.GetPostReviews)

		posts.POST("/", middleware.AuthMiddleware(cfg), middleware.LessorOrAdmin(), postHandler.CreatePost)
		posts.PUT("/:id", middleware.AuthMiddleware(cfg), middleware.LessorOrAdmin(), postHandler.UpdatePost)
		posts.DELETE("/:id", middleware.AuthMiddleware(cfg), middleware.LessorOrAdmin(), postHandler.DeletePost)

		posts.POST("/:id/reviews", middleware.AuthMiddleware(cfg), reviewHandler.CreateReview)
		posts.POST("/:id/save", middleware.AuthMiddleware(cfg), postHandler.SavePost)
		posts.DELETE("/:id/save", middleware.AuthMiddleware(cfg), postHandler.UnsavePost)
	}

	api.GET("/saved-posts", middleware.AuthMiddleware(cfg), postHandler.GetSavedPosts)
	api.GET("/my-posts", middleware.AuthMiddleware(cfg), middleware.LessorOrAdmin(), postHandler.GetMyPosts)

	// Review and reply routes
	reviews := api.Group("/reviews", middleware.AuthMiddleware(cfg))
	{
		reviews.POST("/:review_id/reply", reviewHandler.ReplyToReview)
		reviews.PUT("/:review_id", reviewHandler.UpdateReview)
		reviews.DELETE("/:review_id", reviewHandler.DeleteReview)
	}
	replies := api.Group("/replies", middleware.AuthMiddleware(cfg))
	{
		replies.POST("/:reply_id/reply", reviewHandler.ReplyToReply)
		replies.PUT("/:reply_id", reviewHandler.UpdateReply)
		replies.DELETE("/:reply_id", reviewHandler.DeleteReply)
	}

	// Catalog routes (public reads)
	api.GET("/categories", catalogHandler.GetCategories)
	api.GET("/amenities", catalogHandler.GetAmenities)

	// Blog routes (public reads)
	blogs := api.Group("/blogs")
	{
		blogs.GET("/", blogHandler.GetPublishedBlogs)
		blogs.GET("/:slug", blogHandler.GetBlogBySlug)
	}

	// Lessor upgrade routes
	lessor := api.Group("/lessor-requests", middleware.AuthMiddleware(cfg))
	{
		lessor.POST("/", lessorHandler.SubmitRequest)
		lessor.GET("/me", lessorHandler.GetOwnRequest)
	}

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.GET("/dashboard", adminHandler.GetDashboardStats)

		// User management
		admin.GET("/users", adminHandler.GetUsers)
		admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
		admin.POST("/users/:id/deactivate", adminHandler.DeactivateUser)

		// Post moderation
		admin.GET("/posts", postHandler.GetPostsForAdmin)
		admin.POST("/posts/:id/moderate", postHandler.ModeratePost)

		// Review moderation
		admin.POST("/reviews/:review_id/moderate", reviewHandler.ModerateReview)
		admin.POST("/replies/:reply_id/moderate", reviewHandler.ModerateReply)

		// Lessor request decisions
		admin.GET("/lessor-requests", lessorHandler.ListRequests)
		admin.POST("/lessor-requests/:id/approve", lessorHandler.ApproveRequest)
		admin.POST("/lessor-requests/:id/reject", lessorHandler.RejectRequest)

		// Catalog management
		admin.POST("/categories", catalogHandler.CreateCategory)
		admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
		admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
		admin.POST("/amenities", catalogHandler.CreateAmenity)
		admin.PUT("/amenities/:id", catalogHandler.UpdateAmenity)
		admin.DELETE("/amenities/:id", catalogHandler.DeleteAmenity)

		// Blog management
		admin.GET("/blogs", blogHandler.GetAllBlogs)
		admin.POST("/blogs", blogHandler.CreateBlog)
		admin.PUT("/blogs/:id", blogHandler.UpdateBlog)
		admin.DELETE("/blogs/:id", blogHandler.DeleteBlog)
	}

	logger.Info("Routes initialized successfully")
}
