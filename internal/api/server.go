package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/resort-booking/docs"
	v1 "github.com/yizeng/gab/gin/gorm/resort-booking/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/repository/dao"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/service"
)

// Deps are the optional collaborators of the server. Nil fields fall back to
// no cache and log-only events.
type Deps struct {
	ResortCache service.ResortCache
	Publisher   service.EventPublisher
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth    *v1.AuthHandler
	user    *v1.UserHandler
	resort  *v1.ResortHandler
	booking *v1.BookingHandler
	review  *v1.ReviewHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, deps Deps) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db, deps))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, deps Deps) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	resortRepo := repository.NewResortRepository(dao.NewResortDAO(db))
	bookingRepo := repository.NewBookingRepository(dao.NewBookingDAO(db))
	reviewRepo := repository.NewReviewRepository(dao.NewReviewDAO(db))

	uSvc := service.NewUserService(userRepo)
	bookingSvc := service.NewBookingService(bookingRepo, resortRepo, deps.Publisher)

	return handlers{
		auth:    v1.NewAuthHandler(s.Config.API, service.NewAuthService(userRepo)),
		user:    v1.NewUserHandler(uSvc),
		resort:  v1.NewResortHandler(service.NewResortService(resortRepo, deps.ResortCache)),
		booking: v1.NewBookingHandler(bookingSvc, uSvc),
		review:  v1.NewReviewHandler(service.NewReviewService(reviewRepo), uSvc),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api"

	authn := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	limiter := middleware.NewIPRateLimiter(s.Config.RateLimit.RequestsPerSecond, s.Config.RateLimit.Burst)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	customerOnly := middleware.RequireRole(domain.RoleCustomer)

	public := s.Router.Group(basePath)
	{
		public.POST("/register", middleware.RateLimit(limiter), authn.IdentifyJWT(), h.auth.HandleRegister)
		public.POST("/login", middleware.RateLimit(limiter), h.auth.HandleLogin)
		public.GET("/resorts", h.resort.HandleGetResorts)
		public.GET("/resorts/:resortID", h.resort.HandleGetResort)
	}

	private := s.Router.Group(basePath, authn.VerifyJWT())
	{
		private.POST("/resorts", adminOnly, h.resort.HandleCreateResort)
		private.PUT("/resorts/:resortID", adminOnly, h.resort.HandleUpdateResort)
		private.DELETE("/resorts/:resortID", adminOnly, h.resort.HandleDeleteResort)

		private.POST("/bookings", customerOnly, h.booking.HandleCreateBooking)
		private.GET("/bookings", h.booking.HandleGetBookings)
		private.DELETE("/bookings/:bookingID", h.booking.HandleCancelBooking)

		private.POST("/reviews", customerOnly, h.review.HandleCreateReview)
		private.GET("/reviews", h.review.HandleGetReviews)
		private.DELETE("/reviews/:reviewID", h.review.HandleDeleteReview)

		private.GET("/users/:userID", h.user.HandleGetUser)
		private.DELETE("/users/:userID", adminOnly, h.user.HandleDeleteUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Resort Booking API"
	docs.SwaggerInfo.Description = "Users, resorts, bookings and reviews for the online resort booking app."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
