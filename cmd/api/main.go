package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/config"
	appHTTP "github.com/gajihub/payroll-backend-go/internal/handler/http"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/gajihub/payroll-backend-go/internal/pkg/jwt"
	"github.com/gajihub/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/gajihub/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.Payroll.Timezone)
	if err != nil {
		fmt.Println("Error loading payroll timezone:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	payrollSvc := payrollService.NewPayrollService(
		employeeRepo,
		scheduleRepo,
		attendanceRepo,
		requestRepo,
		payrollRepo,
		loc,
		payrollService.Options{BatchWorkers: cfg.Payroll.BatchWorkers},
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
