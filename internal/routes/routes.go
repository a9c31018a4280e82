package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
	ucPayment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// Deps are the storage-backed collaborators; postgres and memory both
// provide all of them.
type Deps struct {
	Availability availability.Repository
	Appointments appointment.Repository
	Clients      client.Repository
	People       appointment.PersonDirectory
	Accounts     account.Repository
	Payments     payment.Repository
	AuditStore   audit.Store

	Audit *audit.Dispatcher
	Cache cache.SlotCache

	// Nil disables checkout.
	Gateway ucPayment.Gateway
}

func RegisterRoutes(r *gin.Engine, d Deps, cfg *config.Config) error {

	if err := validators.Register(); err != nil {
		return err
	}

	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		logger.AccessLog(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	// ======================================================
	// USE CASES - AVAILABILITY
	// ======================================================
	setDayUC := ucAvailability.NewSetDay(d.Availability, d.Cache, d.Audit)
	getDayUC := ucAvailability.NewGetDay(d.Availability)
	listRangeUC := ucAvailability.NewListRange(d.Availability)
	summaryUC := ucAvailability.NewSummary(d.Availability, d.Appointments, d.Cache)
	listSlotsUC := ucAvailability.NewListSlots(d.Availability, d.Appointments, d.Cache)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	bookUC, err := ucAppointment.NewBook(
		d.Availability,
		d.Appointments,
		d.People,
		d.Cache,
		d.Audit,
		cfg.BookingInitialStatus,
	)
	if err != nil {
		return fmt.Errorf("BOOKING_INITIAL_STATUS %q: %w", cfg.BookingInitialStatus, err)
	}

	updateStatusUC := ucAppointment.NewUpdateStatus(d.Appointments, d.Cache, d.Audit)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(d.Appointments, d.People)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(d.Appointments, d.People)
	listMineUC := ucAppointment.NewListMine(d.Appointments, d.People)

	// ======================================================
	// USE CASES - PAYMENTS
	// ======================================================
	checkoutUC := ucPayment.NewCheckout(
		d.Payments,
		d.Appointments,
		d.Gateway,
		ucPayment.Pricing{
			Amount:   cfg.AppointmentPrice,
			Currency: cfg.PaymentCurrency,
			BackURL:  cfg.PaymentBackURL,
		},
		d.Audit,
	)
	confirmUC := ucPayment.NewConfirm(d.Payments, d.Appointments, d.Cache, d.Audit)
	listPaymentsUC := ucPayment.NewListByClient(d.Payments)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		d.Accounts,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpireHours)*time.Hour,
	)
	meHandler := handlers.NewMeHandler(d.Clients)
	clientHandler := handlers.NewClientHandler(d.Clients)

	availabilityHandler := handlers.NewAvailabilityHandler(
		setDayUC,
		getDayUC,
		listRangeUC,
		summaryUC,
		listSlotsUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		updateStatusUC,
		listByDateUC,
		listByMonthUC,
		listMineUC,
		checkoutUC,
	)

	paymentHandler := handlers.NewPaymentHandler(confirmUC, listPaymentsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register-client", authHandler.RegisterClient)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))

		admin := secured.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))

		clientOnly := secured.Group("/")
		clientOnly.Use(middleware.RequireRole(models.RoleClient))

		admin.POST("/auth/register", authHandler.Register)

		secured.GET("/me", meHandler.GetMe)

		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		secured.GET("/availability", availabilityHandler.ListRange)
		secured.GET("/availability/summary", availabilityHandler.Summary)
		secured.GET("/availability/:date", availabilityHandler.Get)
		secured.GET("/availability/:date/slots", availabilityHandler.Slots)
		admin.PUT("/availability/:date", availabilityHandler.Put)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		admin.GET("/appointments", appointmentHandler.List)
		clientOnly.GET("/appointments/me", appointmentHandler.ListMine)
		secured.POST("/appointments", appointmentHandler.Create)
		secured.PATCH("/appointments/:id", appointmentHandler.UpdateStatus)
		secured.POST("/appointments/:id/checkout", appointmentHandler.Checkout)

		// ------------------------------
		// CLIENTS / PAYMENTS
		// ------------------------------
		admin.GET("/clients", clientHandler.List)
		admin.POST("/clients", clientHandler.Create)
		admin.GET("/clients/:id", clientHandler.Get)
		admin.PATCH("/clients/:id", clientHandler.Update)
		admin.DELETE("/clients/:id", clientHandler.Delete)
		admin.GET("/clients/:id/payments", paymentHandler.ListByClient)

		admin.POST("/payments/:id/confirm", paymentHandler.Confirm)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}

	return nil
}
