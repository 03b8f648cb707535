package api

import (
	"Statistics/internal/api/middleware"
	"Statistics/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, service string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r, service)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		statsGroup := apiGroup.Group("/statistics")
		{
			reportGroup := statsGroup.Group("/reports")
			{
				reportGroup.GET("", group.DailyReportHandler.GetReportsByRange)
				reportGroup.GET("/recent", group.DailyReportHandler.GetRecentReports)
				reportGroup.GET("/metrics", group.DailyReportHandler.GetMetricValues)
				reportGroup.GET("/:date", group.DailyReportHandler.GetReport)
				reportGroup.PUT("/:date", group.DailyReportHandler.UpsertReport)
				reportGroup.DELETE("/:date", group.DailyReportHandler.DeleteReport)
				reportGroup.POST("/:date/generate", group.DailyReportHandler.GenerateReport)
			}

			statsGroup.GET("/providers", group.DailyReportHandler.GetProviders)

			tableGroup := statsGroup.Group("/tables")
			{
				tableGroup.GET("", group.StatsTableHandler.GetTables)
				tableGroup.POST("/run", group.StatsTableHandler.RunTables)
			}
		}
	}

	return r
}
