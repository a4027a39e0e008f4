package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workshop-system/internal/catalog"
	"workshop-system/internal/controllers"
	"workshop-system/internal/listeners"
	"workshop-system/internal/repositories"
	"workshop-system/internal/services"
	"workshop-system/pkg/config"
	"workshop-system/pkg/eventbus"
	"workshop-system/pkg/mailer"
	"workshop-system/pkg/middleware"
	"workshop-system/pkg/pdf"
	"workshop-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей: репозитории, сервисы,
// контроллеры, слушатели событий - и вешает маршруты.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	cfg *config.Config,
	logger *zap.Logger,
) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)
	exerciseCatalog := catalog.New()
	mailerService := mailer.NewService(cfg.SMTP)
	workOrderGen := pdf.NewWorkOrderGenerator(cfg.PDF)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	processRepo := repositories.NewProcessRepository(dbConn, logger)
	workshopRepo := repositories.NewWorkshopRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	summaryRepo := repositories.NewWorkshopSummaryRepository(dbConn, logger)
	reportRepo := repositories.NewMonthlyReportRepository(dbConn, logger)
	prefsRepo := repositories.NewNotificationPreferencesRepository(dbConn, logger)
	contactRepo := repositories.NewClientContactRepository(dbConn, logger)
	settingRepo := repositories.NewSettingRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger)
	userService := services.NewUserService(userRepo, prefsRepo, logger)
	processService := services.NewProcessService(processRepo, userRepo, bus, logger)
	workshopService := services.NewWorkshopService(
		workshopRepo, equipmentRepo, summaryRepo, userRepo, exerciseCatalog, txManager, bus, logger)
	equipmentService := services.NewEquipmentService(
		equipmentRepo, workshopRepo, userRepo, txManager, bus, logger)
	reportService := services.NewMonthlyReportService(reportRepo, workshopRepo, userRepo, bus, logger)
	prefsService := services.NewNotificationPreferencesService(prefsRepo, logger)
	contactService := services.NewClientContactService(contactRepo, logger)
	dashboardService := services.NewDashboardService(
		processRepo, workshopRepo, equipmentRepo, userRepo, cacheRepo, cfg.Cache.DashboardTTL, logger)
	settingService := services.NewSettingService(settingRepo)

	// --- СЛУШАТЕЛИ СОБЫТИЙ ---
	notificationListener := listeners.NewNotificationListener(mailerService, userRepo, prefsRepo, logger)
	notificationListener.Register(bus)
	dashboardService.Register(bus)

	// --- КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, userService, logger)
	userController := controllers.NewUserController(userService, logger)
	processController := controllers.NewProcessController(processService, logger)
	workshopController := controllers.NewWorkshopController(workshopService, equipmentService, workOrderGen, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	exerciseController := controllers.NewExerciseController(exerciseCatalog, logger)
	reportController := controllers.NewReportController(reportService, logger)
	prefsController := controllers.NewNotificationPreferencesController(prefsService, logger)
	contactController := controllers.NewClientContactController(contactService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	settingController := controllers.NewSettingController(settingService, logger)

	// --- МАРШРУТЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController)
	runUserRouter(secureGroup, userController, authMW)
	runProcessRouter(secureGroup, processController)
	runWorkshopRouter(secureGroup, workshopController)
	runEquipmentRouter(secureGroup, equipmentController)
	runExerciseRouter(secureGroup, exerciseController)
	runReportRouter(secureGroup, reportController, authMW)
	runNotificationPreferencesRouter(secureGroup, prefsController)
	runClientContactRouter(secureGroup, contactController)
	runDashboardRouter(secureGroup, dashboardController)
	runSettingRouter(secureGroup, settingController, authMW)

	logger.Info("InitRouter: маршруты собраны")
}
