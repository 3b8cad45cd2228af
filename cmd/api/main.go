package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/daksa-hr/hrops-backend-go/internal/config"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/attendance"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/payroll"
	appHTTP "github.com/daksa-hr/hrops-backend-go/internal/handler/http"
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/database"
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/jwt"
	"github.com/daksa-hr/hrops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/daksa-hr/hrops-backend-go/internal/service/attendance"
	payrollService "github.com/daksa-hr/hrops-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	location, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	rules := attendance.Rules{
		ShiftStart:         cfg.Attendance.ShiftStart,
		ShiftEnd:           cfg.Attendance.ShiftEnd,
		StandardShiftHours: cfg.Attendance.StandardShiftHours,
		LateGraceMinutes:   cfg.Attendance.LateGraceMinutes,
		Location:           location,
	}
	rates := payroll.Rates{
		StandardMonthlyHours: cfg.Payroll.StandardMonthlyHours,
		OvertimeMultiplier:   cfg.Payroll.OvertimeMultiplier,
		TaxRate:              cfg.Payroll.TaxRate,
		SocialSecurityRate:   cfg.Payroll.SocialSecurityRate,
		HealthInsuranceRate:  cfg.Payroll.HealthInsuranceRate,
	}

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, rules)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, attendanceRepo, employeeRepo, rates, location, cfg.Payroll.BatchWorkers)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)

	router := appHTTP.NewRouter(jwtService, attendanceHandler, payrollHandler, employeeHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
