package router

import (
	"time"

	"accountit/api"
	"accountit/config"
	"accountit/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// API v1 路由组（供安卓 App 使用）
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)

			// 安全问题找回密码
			auth.GET("/security-question", authHandler.GetSecurityQuestion)
			auth.POST("/verify-answer", middleware.LoginRateLimit(10, time.Minute), authHandler.VerifySecurityAnswer)
			auth.POST("/password/reset", authHandler.ResetPassword)
		}

		// 支持的货币列表（无需登录）
		v1.GET("/currencies", authHandler.ListCurrencies)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)
			authorized.GET("/auth/currency", authHandler.GetCurrency)
			authorized.PUT("/auth/currency", authHandler.UpdateCurrency)

			// 预算相关
			budgetHandler := api.NewBudgetHandler()
			budget := authorized.Group("/budget")
			{
				budget.GET("", budgetHandler.GetSummary)
				budget.PUT("", budgetHandler.SetBudget)
				budget.POST("/income", budgetHandler.AddIncome)
				budget.POST("/income/reset", budgetHandler.ResetIncome)
			}

			// 消费类别相关
			categoryHandler := api.NewCategoryHandler()
			categories := authorized.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", categoryHandler.Create)
				categories.DELETE("/:name", categoryHandler.Delete)
				categories.POST("/:name/expenses", categoryHandler.AddExpense)
				categories.POST("/:name/pin", categoryHandler.TogglePin)
			}

			// 存款目标相关
			savingsHandler := api.NewSavingsHandler()
			savings := authorized.Group("/savings")
			{
				savings.GET("/goals", savingsHandler.ListGoals)
				savings.POST("/goals", savingsHandler.CreateGoal)
				savings.POST("/deposits", savingsHandler.CreateDeposit)
				savings.GET("/total", savingsHandler.GetTotal)
				savings.GET("/transactions", savingsHandler.ListTransactions)
			}

			// 导出相关
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/savings/csv", exportHandler.ExportSavingsCSV)
				export.GET("/savings/excel", exportHandler.ExportSavingsExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
