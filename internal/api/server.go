package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/social-events-api/docs"
	v1 "github.com/vietanh2810/social-events-api/internal/api/handler/v1"
	"github.com/vietanh2810/social-events-api/internal/api/middleware"
	"github.com/vietanh2810/social-events-api/internal/cache"
	"github.com/vietanh2810/social-events-api/internal/config"
	"github.com/vietanh2810/social-events-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/social-events-api/internal/repository"
	"github.com/vietanh2810/social-events-api/internal/repository/dao"
	"github.com/vietanh2810/social-events-api/internal/service"
	"github.com/vietanh2810/social-events-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	tokens *jwthelper.Manager
	tr     v1.Translator
}

type handlers struct {
	auth         *v1.AuthHandler
	user         *v1.UserHandler
	category     *v1.CategoryHandler
	event        *v1.EventHandler
	registration *v1.RegistrationHandler
	comment      *v1.CommentHandler
	stream       *v1.CommentStreamHandler
}

// NewServer wires every layer on top of db and rdb. The comment stream runs until ctx is done.
func NewServer(ctx context.Context, conf *config.AppConfig, db *gorm.DB, rdb *redis.Client, tr v1.Translator) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		tokens: jwthelper.NewManager(conf.API.JWTSigningKey, conf.API.AccessTokenTTL, conf.API.RefreshTokenTTL),
		tr:     tr,
	}

	s.MountMiddlewares()

	eventSvc := s.initEventService(db)
	stream := v1.NewCommentStreamHandler(eventSvc)
	go stream.Run(ctx)

	s.MountHandlers(handlers{
		auth:         s.initAuthHandler(db, rdb),
		user:         s.initUserHandler(db),
		category:     s.initCategoryHandler(db),
		event:        v1.NewEventHandler(eventSvc, conf.Pagination, tr),
		registration: s.initRegistrationHandler(db, eventSvc),
		comment:      s.initCommentHandler(db, eventSvc, stream),
		stream:       stream,
	})

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB, rdb *redis.Client) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	blacklist := cache.NewTokenBlacklist(rdb, s.Config.Redis.Prefix)
	svc := service.NewAuthService(repo, s.tokens, blacklist)
	handler := v1.NewAuthHandler(svc, s.tr)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc, s.Config.Pagination, s.tr)

	return handler
}

func (s *Server) initCategoryHandler(db *gorm.DB) *v1.CategoryHandler {
	categoryDAO := dao.NewCategoryDAO(db)
	repo := repository.NewCategoryRepository(categoryDAO)
	svc := service.NewCategoryService(repo)
	handler := v1.NewCategoryHandler(svc, s.Config.Pagination)

	return handler
}

func (s *Server) initEventService(db *gorm.DB) *service.EventService {
	repo := repository.NewEventRepository(dao.NewEventDAO(db))
	categoryRepo := repository.NewCategoryRepository(dao.NewCategoryDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	images := storage.NewLocalStorage(s.Config.Media.Root, s.Config.Media.URLPrefix)

	return service.NewEventService(repo, categoryRepo, registrationRepo, images, s.Config.Media.MaxImageSize)
}

func (s *Server) initRegistrationHandler(db *gorm.DB, events *service.EventService) *v1.RegistrationHandler {
	registrationDAO := dao.NewRegistrationDAO(db)
	repo := repository.NewRegistrationRepository(registrationDAO)
	svc := service.NewRegistrationService(repo, events, s.Config.API.BaseURL)
	handler := v1.NewRegistrationHandler(svc, s.Config.Pagination, s.tr)

	return handler
}

func (s *Server) initCommentHandler(db *gorm.DB, events *service.EventService, stream *v1.CommentStreamHandler) *v1.CommentHandler {
	commentDAO := dao.NewCommentDAO(db)
	repo := repository.NewCommentRepository(commentDAO)
	svc := service.NewCommentService(repo, events, stream)
	handler := v1.NewCommentHandler(svc, s.Config.Pagination)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.tokens)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)
		public.POST("/auth/token/refresh", h.auth.HandleRefresh)

		public.GET("/categories", h.category.HandleListCategories)
		public.GET("/categories/:categoryID", h.category.HandleGetCategory)
	}

	optional := s.Router.Group(basePath, authenticator.OptionalJWT())
	{
		optional.GET("/events/search", h.event.HandleSearchEvents)
		optional.GET("/events/:eventRef", h.event.HandleGetEvent)
		optional.GET("/events/:eventRef/comments", h.comment.HandleListEventComments)
		optional.GET("/events/:eventRef/comments/stream", h.stream.HandleStream)
		optional.GET("/comments/:commentID/replies", h.comment.HandleListReplies)
	}

	private := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		private.POST("/auth/logout", h.auth.HandleLogout)

		private.GET("/users/me", h.user.HandleGetMe)
		private.PATCH("/users/me", h.user.HandleUpdateMe)
		private.GET("/users/:userID", h.user.HandleGetUser)
		private.POST("/users/:userID/follow", h.user.HandleToggleFollow)
		private.GET("/users/:userID/followers", h.user.HandleListFollowers)
		private.GET("/users/:userID/following", h.user.HandleListFollowing)
		private.GET("/preferences", h.user.HandleGetPreferences)
		private.PATCH("/preferences", h.user.HandleUpdatePreferences)

		private.POST("/categories", h.category.HandleCreateCategory)
		private.PATCH("/categories/:categoryID", h.category.HandleUpdateCategory)
		private.DELETE("/categories/:categoryID", h.category.HandleDeleteCategory)

		private.POST("/events", h.event.HandleCreateEvent)
		private.PATCH("/events/:eventRef", h.event.HandleUpdateEvent)
		private.DELETE("/events/:eventRef", h.event.HandleDeleteEvent)
		private.PUT("/events/:eventRef/image", h.event.HandleUploadImage)
		private.POST("/events/:eventRef/favorite", h.event.HandleToggleFavorite)
		private.GET("/events/:eventRef/registrations", h.event.HandleListRegistrations)

		private.POST("/registrations", h.registration.HandleCreateRegistration)
		private.GET("/registrations/mine", h.registration.HandleListMine)
		private.GET("/registrations/:registrationID", h.registration.HandleGetRegistration)
		private.POST("/registrations/:registrationID/confirm", h.registration.HandleConfirm)
		private.POST("/registrations/:registrationID/cancel", h.registration.HandleCancel)
		private.POST("/registrations/:registrationID/restore", h.registration.HandleRestore)
		private.GET("/registrations/:registrationID/qrcode", h.registration.HandleQRCode)

		private.POST("/comments", h.comment.HandleCreateComment)
		private.PATCH("/comments/:commentID", h.comment.HandleUpdateComment)
		private.DELETE("/comments/:commentID", h.comment.HandleDeleteComment)
		private.POST("/comments/:commentID/like", h.comment.HandleToggleLike)
	}

	s.Router.Static(s.Config.Media.URLPrefix, s.Config.Media.Root)
	s.Router.GET("/", v1.HandleHealthcheck(s.tr))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Social Events API"
	docs.SwaggerInfo.Description = "Events, registrations, comments and follows."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
