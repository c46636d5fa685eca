package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/claimworks/reserving/pkg/reserving"
)

// Run boots the HTTP facade over the reserving service and blocks until the
// context is cancelled or the listener fails.
func Run(ctx context.Context, cfg Config, service *reserving.Service, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	handler := &httpHandler{
		service: service,
		logger:  logger,
	}

	router := setupRouter(cfg, handler)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("reservingd listening", zap.String("addr", cfg.ListenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("server shutdown error", zap.Error(shutdownErr))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func setupRouter(cfg Config, handler *httpHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Origin", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(bearerAuth([]byte(cfg.SessionSigningKey), cfg.SessionIssuer))

	api.GET("/hod-codes", handler.handleListHODCodes)

	project := api.Group("/projects/:projectID")

	project.GET("/reserves", handler.handleListReserves)
	project.POST("/reserves", handler.handleCreateReserve)
	project.GET("/reserves/current", handler.handleCurrentReserve)
	project.POST("/reserves/:reserveID/revise", handler.handleReviseReserve)
	project.POST("/reserves/:reserveID/submit", handler.handleSubmitReserve)
	project.POST("/reserves/:reserveID/approve", handler.handleApproveReserve)
	project.POST("/reserves/:reserveID/supersede", handler.handleSupersedeReserve)

	project.GET("/damage-items", handler.handleListDamageItems)
	project.POST("/damage-items", handler.handleCreateDamageItem)
	project.GET("/damage-items/summary", handler.handleDamageSummary)
	project.PATCH("/damage-items/:itemID", handler.handleUpdateDamageItem)
	project.POST("/damage-items/:itemID/advance", handler.handleAdvanceDamageItem)

	project.GET("/pc-sums", handler.handleListPCSums)
	project.POST("/pc-sums", handler.handleAllocatePCSum)
	project.POST("/pc-sums/:pcSumID/spend", handler.handleRecordPCSumSpend)
	project.POST("/pc-sums/:pcSumID/complete", handler.handleCompletePCSum)
	project.POST("/pc-sums/:pcSumID/cancel", handler.handleCancelPCSum)

	project.GET("/survey-forms", handler.handleListSurveyForms)
	project.POST("/survey-forms", handler.handleRecordSurveyForm)
	project.GET("/scope-variations", handler.handleListScopeVariations)
	project.POST("/scope-variations", handler.handleRecordScopeVariation)
	project.GET("/contractor-assessments", handler.handleListContractorAssessments)
	project.POST("/contractor-assessments", handler.handleRecordContractorAssessment)

	return router
}
