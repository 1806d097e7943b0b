package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/pronos-api/docs"
	v1 "github.com/vietanh2810/pronos-api/internal/api/handler/v1"
	"github.com/vietanh2810/pronos-api/internal/api/middleware"
	"github.com/vietanh2810/pronos-api/internal/config"
	"github.com/vietanh2810/pronos-api/internal/live"
	"github.com/vietanh2810/pronos-api/internal/repository"
	"github.com/vietanh2810/pronos-api/internal/repository/dao"
	"github.com/vietanh2810/pronos-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	// Hub must be started with Run before the router serves live standings.
	Hub *live.Hub
}

type repositories struct {
	users       *repository.UserRepository
	tournaments *repository.TournamentRepository
	matches     *repository.MatchRepository
	pools       *repository.PoolRepository
	predictions *repository.PredictionRepository
}

type handlers struct {
	auth       *v1.AuthHandler
	user       *v1.UserHandler
	tournament *v1.TournamentHandler
	match      *v1.MatchHandler
	pool       *v1.PoolHandler
	prediction *v1.PredictionHandler
	live       *v1.LiveHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(initRepositories(db)))

	return s
}

func initRepositories(db *gorm.DB) repositories {
	return repositories{
		users:       repository.NewUserRepository(dao.NewUserDAO(db)),
		tournaments: repository.NewTournamentRepository(dao.NewTournamentDAO(db)),
		matches:     repository.NewMatchRepository(dao.NewMatchDAO(db)),
		pools:       repository.NewPoolRepository(dao.NewPoolDAO(db)),
		predictions: repository.NewPredictionRepository(dao.NewPredictionDAO(db)),
	}
}

func (s *Server) initHandlers(repos repositories) handlers {
	uSvc := service.NewUserService(repos.users)
	tSvc := service.NewTournamentService(repos.tournaments)
	pSvc := service.NewPoolService(repos.pools, repos.tournaments, repos.matches, repos.predictions)
	prSvc := service.NewPredictionService(repos.predictions, repos.users, repos.pools, repos.matches)

	s.Hub = live.NewHub(pSvc, zap.L().Named("live"))
	mSvc := service.NewMatchService(repos.matches, repos.tournaments, repos.predictions, repos.pools, s.Hub)

	return handlers{
		auth:       v1.NewAuthHandler(s.Config.API, service.NewAuthService(repos.users)),
		user:       v1.NewUserHandler(uSvc),
		tournament: v1.NewTournamentHandler(tSvc, uSvc),
		match:      v1.NewMatchHandler(mSvc, uSvc),
		pool:       v1.NewPoolHandler(pSvc, uSvc),
		prediction: v1.NewPredictionHandler(prSvc, uSvc),
		live:       v1.NewLiveHandler(s.Hub, pSvc, uSvc, s.Config.API.AllowedCORSDomains),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	limiter := middleware.NewRateLimiter(s.Config.API.AuthRateLimit, s.Config.API.AuthRateBurst)
	auth := s.Router.Group(basePath, limiter.Limit())
	{
		auth.POST("/auth/signup", h.auth.HandleSignup)
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	api := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		api.GET("/users/:userID", h.user.HandleGetUser)
		api.GET("/me/standings", h.pool.HandleGetMyStandings)

		api.GET("/tournaments", h.tournament.HandleListTournaments)
		api.POST("/tournaments", h.tournament.HandleCreateTournament)
		api.GET("/tournaments/:tournamentID", h.tournament.HandleGetTournament)
		api.GET("/tournaments/:tournamentID/matches", h.match.HandleListTournamentMatches)
		api.GET("/teams", h.tournament.HandleListTeams)
		api.POST("/teams", h.tournament.HandleCreateTeam)

		api.POST("/matches", h.match.HandleCreateMatch)
		api.GET("/matches/:matchID", h.match.HandleGetMatch)
		api.PATCH("/matches/:matchID", h.match.HandleUpdateMatch)

		api.GET("/pools", h.pool.HandleListMyPools)
		api.POST("/pools", h.pool.HandleCreatePool)
		api.GET("/pools/:poolID", h.pool.HandleGetPool)
		api.POST("/pools/:poolID/join", h.pool.HandleJoinPool)
		api.GET("/pools/:poolID/participants", h.pool.HandleListParticipants)
		api.DELETE("/pools/:poolID/participants/me", h.pool.HandleLeavePool)
		api.GET("/pools/:poolID/standings", h.pool.HandleGetStandings)
		api.GET("/pools/:poolID/standings/live", h.live.HandleLiveStandings)
		api.GET("/pools/:poolID/predictions", h.prediction.HandleListMyPredictions)
		api.POST("/pools/:poolID/predictions", h.prediction.HandleCreatePrediction)

		api.GET("/predictions/:predictionID", h.prediction.HandleGetPrediction)
		api.PATCH("/predictions/:predictionID", h.prediction.HandleUpdatePrediction)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Pronos API"
	docs.SwaggerInfo.Description = "Prediction pools for football tournaments."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
