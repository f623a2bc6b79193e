package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/app"
	appdomain "github.com/collectpay/collectpay/internal/app/domain"
	"github.com/collectpay/collectpay/internal/auth"
	authdomain "github.com/collectpay/collectpay/internal/auth/domain"
	"github.com/collectpay/collectpay/internal/auth/token"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/internal/collection"
	collectiondomain "github.com/collectpay/collectpay/internal/collection/domain"
	"github.com/collectpay/collectpay/internal/config"
	"github.com/collectpay/collectpay/internal/dashboard"
	dashboarddomain "github.com/collectpay/collectpay/internal/dashboard/domain"
	obslogger "github.com/collectpay/collectpay/internal/observability/logger"
	obsmetrics "github.com/collectpay/collectpay/internal/observability/metrics"
	"github.com/collectpay/collectpay/internal/payment"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/collectpay/collectpay/internal/providers/pdf"
	"github.com/collectpay/collectpay/internal/spend"
	spenddomain "github.com/collectpay/collectpay/internal/spend/domain"
	"github.com/collectpay/collectpay/internal/user"
	userdomain "github.com/collectpay/collectpay/internal/user/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	fx.Provide(NewEngine),
	auth.Module,
	user.Module,
	app.Module,
	payment.Module,
	collection.Module,
	spend.Module,
	dashboard.Module,
	pdf.Module,
	access.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Log:             log.Named("http"),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine         *gin.Engine
	cfg            config.Config
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	issuer         *token.Issuer
	accessResolver *access.Resolver
	metrics        *obsmetrics.HTTPMetrics

	authSvc       authdomain.Service
	userSvc       userdomain.Service
	appSvc        appdomain.Service
	paymentSvc    paymentdomain.Service
	collectionSvc collectiondomain.Service
	spendSvc      spenddomain.Service
	dashboardSvc  dashboarddomain.Service
	pdfProvider   pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Log            *zap.Logger
	GenID          *snowflake.Node
	Clock          clock.Clock
	Issuer         *token.Issuer
	AccessResolver *access.Resolver
	Metrics        *obsmetrics.HTTPMetrics

	AuthSvc       authdomain.Service
	UserSvc       userdomain.Service
	AppSvc        appdomain.Service
	PaymentSvc    paymentdomain.Service
	CollectionSvc collectiondomain.Service
	SpendSvc      spenddomain.Service
	DashboardSvc  dashboarddomain.Service
	PDFProvider   pdf.Provider
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		log:            p.Log.Named("server"),
		genID:          p.GenID,
		clock:          p.Clock,
		issuer:         p.Issuer,
		accessResolver: p.AccessResolver,
		metrics:        p.Metrics,
		authSvc:        p.AuthSvc,
		userSvc:        p.UserSvc,
		appSvc:         p.AppSvc,
		paymentSvc:     p.PaymentSvc,
		collectionSvc:  p.CollectionSvc,
		spendSvc:       p.SpendSvc,
		dashboardSvc:   p.DashboardSvc,
		pdfProvider:    p.PDFProvider,
	}

	s.registerAuthRoutes()
	s.registerWebhookRoutes()
	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")
	authGroup.POST("/login", s.Login)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
}

// registerWebhookRoutes wires the gateway-facing surface. The gateway does
// not authenticate, matching the integration contract.
func (s *Server) registerWebhookRoutes() {
	hook := s.engine.Group("/coinCollect")
	hook.POST("", s.PaymentWebhook)
	hook.GET("", s.ListWebhookPayments)
	hook.GET("/:uuid", s.GetWebhookPayment)
}

func (s *Server) registerAPIRoutes() {
	apps := s.engine.Group("/apps", s.AuthRequired())
	apps.POST("", s.AdminRequired(), s.CreateApp)
	apps.GET("", s.ListApps)
	apps.GET("/:appId", s.GetApp)
	apps.PUT("/:appId", s.UpdateApp)
	apps.DELETE("/:appId", s.DeleteApp)

	users := s.engine.Group("/users", s.AuthRequired(), s.AdminRequired())
	users.POST("", s.CreateUser)
	users.GET("", s.ListUsers)
	users.GET("/:userId", s.GetUser)
	users.PUT("/:userId", s.UpdateUser)
	users.DELETE("/:userId", s.DeleteUser)
	users.PUT("/:userId/assign-apps", s.AssignApps)

	collections := s.engine.Group("/collections", s.AuthRequired())
	collections.POST("", s.BatchUpsertCollections)
	collections.GET("", s.ListCollections)
	collections.GET("/app/:appId", s.ListCollectionsByApp)
	collections.GET("/sc", s.PickPrimaryCollection)
	collections.GET("/rt", s.PickRetryCollection)
	collections.DELETE("/:collectionId", s.DeleteCollection)

	spends := s.engine.Group("/spends", s.AuthRequired())
	spends.POST("", s.UpsertSpend)
	spends.GET("", s.ListSpends)
	spends.GET("/reconciliation", s.ReconcileSpends)
	spends.DELETE("/:spendId", s.DeleteSpend)

	dash := s.engine.Group("/dashboard", s.AuthRequired())
	dash.GET("/overview", s.DashboardOverview)
	dash.GET("/transactions", s.DashboardTransactions)
	dash.GET("/daily-sales", s.DashboardDailySales)
	dash.GET("/performance", s.DashboardPerformance)
	dash.GET("/performance/hourly", s.DashboardPerformanceHourly)

	pdfGroup := s.engine.Group("/pdf", s.AuthRequired())
	pdfGroup.GET("/payments", s.PaymentsPDF)
}
