package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/employee"
	"github.com/daksa-hr/hrops-backend-go/internal/handler/http/response"
)

// EmployeeHandler exposes the read-only employee directory. Employee records
// are mastered in a separate system and only consumed here.
type EmployeeHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeHandler(employeeRepo employee.EmployeeRepository) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeRepo: employeeRepo,
	}
}

type employeeResponse struct {
	ID               string          `json:"id"`
	EmployeeCode     string          `json:"employee_code"`
	FullName         string          `json:"full_name"`
	Department       string          `json:"department"`
	Position         *string         `json:"position,omitempty"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	MonthlyAllowance decimal.Decimal `json:"monthly_allowance"`
	HireDate         string          `json:"hire_date"`
	EmploymentStatus string          `json:"employment_status"`
}

func mapEmployeeToResponse(emp employee.Employee) employeeResponse {
	return employeeResponse{
		ID:               emp.ID,
		EmployeeCode:     emp.EmployeeCode,
		FullName:         emp.FullName,
		Department:       emp.Department,
		Position:         emp.Position,
		BaseSalary:       emp.BaseSalary,
		MonthlyAllowance: emp.MonthlyAllowance,
		HireDate:         emp.HireDate.Format("2006-01-02"),
		EmploymentStatus: string(emp.EmploymentStatus),
	}
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.employeeRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapEmployeeToResponse(emp))
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{Page: 1, Limit: 20}

	if v := r.URL.Query().Get("department"); v != "" {
		filter.Department = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := employee.EmploymentStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	employees, total, err := h.employeeRepo.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	response.SuccessWithMeta(w, responses, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}
