package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
)

// InitRouter wires repositories, services and controllers and registers every
// route under /api. The board service is returned so the caller can start the
// background refresh loop with its own lifecycle context.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) *services.BoardService {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	secureGroup := api.Group("", authMW.Auth)

	// Repositories.
	userRepo := repositories.NewUserRepository(dbConn, logger)
	teamRepo := repositories.NewTeamRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Services.
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	teamService := services.NewTeamService(teamRepo, userRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, logger)
	importService := services.NewEquipmentImportService(equipmentService, logger)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, equipmentRepo, teamRepo, logger)
	boardService := services.NewBoardService(maintenanceService, cfg.Board.MoveTimeout, logger)
	dashboardService := services.NewDashboardService(maintenanceRepo, dashboardRepo, cacheRepo, cfg.Dashboard.StatsCacheTTL, logger)
	reportService := services.NewReportService(maintenanceRepo, logger)

	runAuthRouter(api, authService, logger)
	runMaintenanceRouter(secureGroup, maintenanceService, dashboardService, logger)
	runBoardRouter(secureGroup, boardService, logger)
	runEquipmentRouter(secureGroup, equipmentService, importService, logger)
	runTeamRouter(secureGroup, teamService, logger)
	runDashboardRouter(secureGroup, dashboardService, logger)
	runReportRouter(secureGroup, reportService, logger)

	logger.Info("routes registered")
	return boardService
}
