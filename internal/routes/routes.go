package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BelezaApps/salon-agenda/internal/audit"
	"github.com/BelezaApps/salon-agenda/internal/cache"
	"github.com/BelezaApps/salon-agenda/internal/config"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/handlers"
	infraRepo "github.com/BelezaApps/salon-agenda/internal/infra/repository"
	"github.com/BelezaApps/salon-agenda/internal/mail"
	"github.com/BelezaApps/salon-agenda/internal/middleware"
	"github.com/BelezaApps/salon-agenda/internal/notify"
	"github.com/BelezaApps/salon-agenda/internal/storage"
	ucAppointment "github.com/BelezaApps/salon-agenda/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	pageCache := cache.NewPublicPageCache(cfg)
	imageStore := storage.NewImageStore(cfg)
	mailer := mail.NewFromConfig(cfg)

	var notifier notify.Notifier = notify.NewConsole()
	if cfg.ExpoPushURL != "" {
		notifier = notify.NewExpo(cfg.ExpoPushURL)
	}
	pushDispatcher := notify.NewDispatcher(notifier)

	flow := domain.ParseFlow(cfg.StatusFlow)
	fromTomorrow := cfg.FutureFrom == "tomorrow"

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	extendTimeUC := ucAppointment.NewExtendTime(
		appointmentRepo,
		auditDispatcher,
		pushDispatcher,
	)

	listByDayUC := ucAppointment.NewListByDay(appointmentRepo, flow)
	listByMonthUC := ucAppointment.NewListByMonth(appointmentRepo)
	listFutureUC := ucAppointment.NewListFuture(appointmentRepo, flow, fromTomorrow)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	reassignAppointmentUC := ucAppointment.NewReassignAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	publicLookupUC := ucAppointment.NewPublicLookup(appointmentRepo, flow)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db, pageCache)

	serviceHandler := handlers.NewServiceHandler(db, pageCache)
	employeeHandler := handlers.NewEmployeeHandler(db, pageCache)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		extendTimeUC,
		listByDayUC,
		listByMonthUC,
		listFutureUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		reassignAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
	)

	galleryHandler := handlers.NewGalleryHandler(db, imageStore)
	deviceTokenHandler := handlers.NewDeviceTokenHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, pageCache, createAppointmentUC, publicLookupUC)

	// ======================================================
	// 📈 METRICS
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.SalonPage)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:slug/appointments/:code", publicHandler.LookupAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.Get)
			secured.PATCH("/me/salon", salonHandler.Update)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.DELETE("/me/clients/:id", clientHandler.Delete)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/employees", employeeHandler.List)
			secured.POST("/me/employees", employeeHandler.Create)
			secured.PATCH("/me/employees/:id", employeeHandler.Update)
			secured.DELETE("/me/employees/:id", employeeHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDay)
			secured.GET("/me/appointments/future", appointmentHandler.ListFuture)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/extend", appointmentHandler.ExtendTime)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/reassign", appointmentHandler.Reassign)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// GALLERY / DEVICES / AUDIT
			// ------------------------------
			secured.GET("/me/gallery", galleryHandler.List)
			secured.POST("/me/gallery", galleryHandler.Upload)
			secured.DELETE("/me/gallery/:id", galleryHandler.Delete)

			secured.POST("/me/device-tokens", deviceTokenHandler.Register)
			secured.DELETE("/me/device-tokens", deviceTokenHandler.Unregister)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
