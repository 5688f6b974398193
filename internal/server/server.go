package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/aquacoop/aquacoop/internal/alert"
	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	"github.com/aquacoop/aquacoop/internal/auth"
	authdomain "github.com/aquacoop/aquacoop/internal/auth/domain"
	"github.com/aquacoop/aquacoop/internal/bill"
	billdomain "github.com/aquacoop/aquacoop/internal/bill/domain"
	"github.com/aquacoop/aquacoop/internal/config"
	"github.com/aquacoop/aquacoop/internal/expense"
	expensedomain "github.com/aquacoop/aquacoop/internal/expense/domain"
	"github.com/aquacoop/aquacoop/internal/meterreading"
	meterreadingdomain "github.com/aquacoop/aquacoop/internal/meterreading/domain"
	"github.com/aquacoop/aquacoop/internal/organization"
	organizationdomain "github.com/aquacoop/aquacoop/internal/organization/domain"
	"github.com/aquacoop/aquacoop/internal/payment"
	paymentdomain "github.com/aquacoop/aquacoop/internal/payment/domain"
	"github.com/aquacoop/aquacoop/internal/profile"
	profiledomain "github.com/aquacoop/aquacoop/internal/profile/domain"
	"github.com/aquacoop/aquacoop/internal/setting"
	settingdomain "github.com/aquacoop/aquacoop/internal/setting/domain"
	"github.com/aquacoop/aquacoop/internal/subscriber"
	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(NewEngine),
	auth.Module,
	profile.Module,
	organization.Module,
	subscriber.Module,
	meterreading.Module,
	bill.Module,
	payment.Module,
	expense.Module,
	alert.Module,
	setting.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	authSvc         authdomain.Service
	profileSvc      profiledomain.Service
	organizationSvc organizationdomain.Service
	subscriberSvc   subscriberdomain.Service
	meterReadingSvc meterreadingdomain.Service
	billSvc         billdomain.Service
	paymentSvc      paymentdomain.Service
	expenseSvc      expensedomain.Service
	alertSvc        alertdomain.Service
	settingSvc      settingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	AuthSvc         authdomain.Service
	ProfileSvc      profiledomain.Service
	OrganizationSvc organizationdomain.Service
	SubscriberSvc   subscriberdomain.Service
	MeterReadingSvc meterreadingdomain.Service
	BillSvc         billdomain.Service
	PaymentSvc      paymentdomain.Service
	ExpenseSvc      expensedomain.Service
	AlertSvc        alertdomain.Service
	SettingSvc      settingdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		authSvc:         p.AuthSvc,
		profileSvc:      p.ProfileSvc,
		organizationSvc: p.OrganizationSvc,
		subscriberSvc:   p.SubscriberSvc,
		meterReadingSvc: p.MeterReadingSvc,
		billSvc:         p.BillSvc,
		paymentSvc:      p.PaymentSvc,
		expenseSvc:      p.ExpenseSvc,
		alertSvc:        p.AlertSvc,
		settingSvc:      p.SettingSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAuthRoutes() {
	g := s.engine.Group("/auth")
	g.POST("/signup", s.Signup)
	g.POST("/login", s.Login)
	g.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired(), s.OrgContext())

	api.GET("/profile", s.GetProfile)
	api.PATCH("/profile", s.UpdateProfile)

	api.POST("/organizations", s.CreateOrganization)
	api.GET("/organizations", s.ListOrganizations)
	api.GET("/organizations/:id", s.GetOrganization)
	api.PATCH("/organizations/:id", s.UpdateOrganization)

	api.POST("/subscribers", s.CreateSubscriber)
	api.GET("/subscribers", s.ListSubscribers)
	api.GET("/subscribers/:id", s.GetSubscriber)
	api.PATCH("/subscribers/:id", s.UpdateSubscriber)
	api.DELETE("/subscribers/:id", s.DeleteSubscriber)
	api.GET("/subscribers/:id/readings", s.ListMeterReadings)

	api.POST("/readings", s.CreateMeterReading)
	api.GET("/readings", s.ListAllMeterReadings)

	api.POST("/bills", s.CreateBill)
	api.GET("/bills", s.ListBills)
	api.GET("/bills/:id", s.GetBill)
	api.PATCH("/bills/:id/status", s.UpdateBillStatus)

	api.POST("/payments", s.CreatePayment)
	api.GET("/payments", s.ListPayments)
	api.GET("/payments/:id", s.GetPayment)

	api.POST("/expenses", s.CreateExpense)
	api.GET("/expenses", s.ListExpenses)
	api.GET("/expenses/:id", s.GetExpense)
	api.PATCH("/expenses/:id", s.UpdateExpense)
	api.DELETE("/expenses/:id", s.DeleteExpense)

	api.POST("/alerts", s.CreateAlert)
	api.GET("/alerts", s.ListAlerts)
	api.POST("/alerts/:id/read", s.MarkAlertRead)
	api.POST("/alerts/read-all", s.MarkAllAlertsRead)

	api.GET("/settings", s.ListSettings)
	api.GET("/settings/:key", s.GetSetting)
	api.PUT("/settings/:key", s.UpsertSetting)

	api.GET("/i18n/:lang", s.GetTranslations)
}
