package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/upac/carnet-backend/internal/app/controllers"
	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/middleware"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	staffController *controllers.StaffController,
	loanController *controllers.LoanController,
	cardController *controllers.CardController,
	exportController *controllers.ExportController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.NoRoute(func(c *gin.Context) {
		middleware.HandleAPIError(c, apperrors.NewResourceNotFoundError("The requested endpoint does not exist"))
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", healthController.Health)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.PUT("/auth/password", authController.ChangePassword)

		// Student routes: reads are self-or-staff, writes are staff only.
		students := authenticated.Group("/students")
		{
			students.GET("/:code", authMiddleware.SelfOrStaff("code"), studentController.GetStudent)
			students.GET("/:code/loans/active", authMiddleware.SelfOrStaff("code"), loanController.ActiveLoansForStudent)
			students.GET("/:code/card/download", authMiddleware.SelfOrStaff("code"), cardController.CardDownloadPermission)

			studentsStaffOnly := students.Group("")
			studentsStaffOnly.Use(authMiddleware.RoleRequired(models.RoleStaff))
			{
				studentsStaffOnly.GET("", studentController.ListStudents)
				studentsStaffOnly.POST("", studentController.CreateStudent)
				studentsStaffOnly.PUT("/:code", studentController.UpdateStudent)
				studentsStaffOnly.DELETE("/:code", studentController.DeleteStudent)
				studentsStaffOnly.POST("/:code/password/reset", authController.ResetStudentPassword)
			}
		}

		// Card scans come from staffed service points.
		cards := authenticated.Group("/cards")
		cards.Use(authMiddleware.RoleRequired(models.RoleStaff))
		{
			cards.GET("/validate/:payload", cardController.ValidateCard)
		}

		// Loan ledger routes
		loans := authenticated.Group("/loans")
		{
			loans.GET("/catalog", loanController.GetCatalog)
			loans.GET("/:id", loanController.GetLoan)

			loansStaffOnly := loans.Group("")
			loansStaffOnly.Use(authMiddleware.RoleRequired(models.RoleStaff))
			{
				loansStaffOnly.GET("", loanController.ListLoans)
				loansStaffOnly.POST("", loanController.RegisterLoan)
				loansStaffOnly.POST("/:id/return", loanController.ReturnLoan)
			}
		}

		// Staff management, dashboard and exports are staff only.
		staffOnly := authenticated.Group("")
		staffOnly.Use(authMiddleware.RoleRequired(models.RoleStaff))
		{
			staff := staffOnly.Group("/staff")
			{
				staff.GET("", staffController.ListStaff)
				staff.POST("", staffController.CreateStaff)
				staff.GET("/:email", staffController.GetStaff)
				staff.PUT("/:email", staffController.UpdateStaff)
				staff.DELETE("/:email", staffController.DeleteStaff)
			}

			staffOnly.GET("/dashboard", cardController.Dashboard)
			staffOnly.GET("/exports/students.json", exportController.ExportStudentsJSON)
			staffOnly.GET("/exports/students.csv", exportController.ExportStudentsCSV)
		}
	}
}
