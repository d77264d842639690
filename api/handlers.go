/*
handlers.go - HTTP API handlers for the leave management engine

PURPOSE:
  Exposes the engine via REST. Handlers parse HTTP, validate through the
  policy engine BEFORE anything is persisted, delegate to the request
  store, and serialize responses.

ENDPOINTS:
  Employees:
    GET  /api/employees                      List the roster
    GET  /api/employees/{id}                 Employee details
    GET  /api/employees/{id}/balance         Balance pools
    GET  /api/employees/{id}/transactions    Balance audit trail
    POST /api/employees/{id}/requests        Submit leave request
    POST /api/employees/{id}/encashments     Submit encashment request
    GET  /api/employees/{id}/encashments/quote  What could be encashed

  Requests:
    GET  /api/requests                       List leave requests
    POST /api/requests/{id}/approve          Approve (deducts balance)
    POST /api/requests/{id}/reject           Reject (metadata only)

  Encashments:
    GET  /api/encashments
    POST /api/encashments/{id}/approve
    POST /api/encashments/{id}/reject

  Session / misc:
    GET  /api/session                        Current acting user
    POST /api/session/switch                 Switch acting user
    GET  /api/policy                         Active policy ruleset
    POST /api/days/count                     Chargeable-day calculator

ERROR HANDLING:
  Domain errors map to HTTP status codes:
  - 400: malformed input, reversed date ranges
  - 404: unknown employee or request
  - 409: transition on an already-settled request
  - 422: policy violation (response carries the human-readable reason)
  - 500: internal errors

SECURITY NOTE:
  The session endpoints are a development stand-in for authentication.
  A production deployment puts a real auth layer in front of this API.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/warp/leave-engine/directory"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
)

// =============================================================================
// HANDLER
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Directory *directory.Directory
	Engine    *leave.Engine
	Requests  *store.RequestStore
	Ledger    *store.BalanceLedger
	Log       *logrus.Logger
}

func NewHandler(dir *directory.Directory, engine *leave.Engine, requests *store.RequestStore, ledger *store.BalanceLedger, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		Directory: dir,
		Engine:    engine,
		Requests:  requests,
		Ledger:    ledger,
		Log:       log,
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the roster in insertion order.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees := h.Directory.List()
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.Directory.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// GetBalance returns the employee's balance pools.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.Directory.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTO(emp.Balance))
}

// GetTransactions returns the employee's balance audit trail.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Directory.Get(id); !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	txs, err := h.Ledger.Transactions(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load transactions", err)
		return
	}

	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// LEAVE REQUEST HANDLERS
// =============================================================================

// SubmitLeave validates a leave request against the policy engine and,
// if eligible, persists it as pending.
func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	emp, ok := h.Directory.Get(employeeID)
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	var body SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	leaveType := leave.LeaveType(body.LeaveType)
	if !leaveType.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown leave type", nil)
		return
	}
	start, err := leave.ParseDate(body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := leave.ParseDate(body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}
	if body.Reason == "" {
		writeError(w, http.StatusBadRequest, "Reason is required", nil)
		return
	}

	// CL charges weekends per policy; all other types skip them.
	includeWeekends := leaveType == leave.TypeCL && h.Engine.Policy.CL.IncludeWeekends
	totalDays, err := leave.CountChargeableDays(start, end, includeWeekends)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Start date must not be after end date", err)
		return
	}

	if decision := h.Engine.CanApply(&emp, leaveType, totalDays); !decision.Allowed {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: decision.Reason,
			Code:  "policy_violation",
		})
		return
	}

	stored := h.Requests.SubmitLeave(leave.LeaveRequest{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		LeaveType:    leaveType,
		StartDate:    start,
		EndDate:      end,
		TotalDays:    totalDays,
		Reason:       body.Reason,
	})

	h.Log.WithFields(logrus.Fields{
		"request_id":  stored.ID,
		"employee_id": emp.ID,
		"leave_type":  leaveType,
		"total_days":  totalDays,
	}).Info("leave request submitted")

	writeJSON(w, http.StatusCreated, toLeaveRequestDTO(stored))
}

// ListLeaveRequests returns leave requests, optionally filtered by
// employee_id and/or status query parameters.
func (h *Handler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	status := r.URL.Query().Get("status")

	var out []leave.LeaveRequest
	for _, req := range h.Requests.ListLeave() {
		if employeeID != "" && req.EmployeeID != employeeID {
			continue
		}
		if status != "" && string(req.Status) != status {
			continue
		}
		out = append(out, req)
	}
	writeJSON(w, http.StatusOK, toLeaveRequestDTOs(out))
}

// ApproveLeave approves a pending request and deducts the balance.
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.ApproverID == "" {
		writeError(w, http.StatusBadRequest, "approver_id is required", nil)
		return
	}

	if err := h.Requests.ApproveLeave(r.Context(), id, body.ApproverID, body.Comments); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.Log.WithFields(logrus.Fields{"request_id": id, "approver_id": body.ApproverID}).Info("leave request approved")
	req, _ := h.Requests.GetLeave(id)
	writeJSON(w, http.StatusOK, toLeaveRequestDTO(req))
}

// RejectLeave rejects a pending request. Balances are untouched.
func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.ApproverID == "" {
		writeError(w, http.StatusBadRequest, "approver_id is required", nil)
		return
	}

	if err := h.Requests.RejectLeave(id, body.ApproverID, body.Comments); err != nil {
		h.writeDomainError(w, err)
		return
	}

	req, _ := h.Requests.GetLeave(id)
	writeJSON(w, http.StatusOK, toLeaveRequestDTO(req))
}

// =============================================================================
// ENCASHMENT HANDLERS
// =============================================================================

// GetEncashmentQuote reports what the employee could encash right now for
// a leave type (defaults to EL).
func (h *Handler) GetEncashmentQuote(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.Directory.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	leaveType := leave.LeaveType(r.URL.Query().Get("leave_type"))
	if leaveType == "" {
		leaveType = leave.TypeEL
	}
	if !h.Engine.Policy.Encashment.Eligible(leaveType) {
		writeError(w, http.StatusBadRequest, "Leave type not eligible for encashment", nil)
		return
	}

	balance, _ := emp.Balance.Remaining(leaveType)
	writeJSON(w, http.StatusOK, EncashmentQuoteDTO{
		LeaveType:         string(leaveType),
		CurrentBalance:    balance,
		MaxEncashableDays: h.Engine.MaxEncashableDays(balance),
		MinBalance:        h.Engine.Policy.Encashment.MinBalance,
		DailyRate:         h.Engine.Policy.Encashment.DailyRate.Float64(),
	})
}

// SubmitEncashment validates and persists a pending encashment request.
// The payout amount is computed from the policy's daily rate at
// submission time.
func (h *Handler) SubmitEncashment(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.Directory.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	var body SubmitEncashmentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.DaysToEncash <= 0 {
		writeError(w, http.StatusBadRequest, "days_to_encash must be positive", nil)
		return
	}

	leaveType := leave.LeaveType(body.LeaveType)
	if decision := h.Engine.CanEncash(&emp, leaveType, body.DaysToEncash); !decision.Allowed {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: decision.Reason,
			Code:  "policy_violation",
		})
		return
	}

	stored := h.Requests.SubmitEncashment(leave.LeaveEncashment{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		LeaveType:    leaveType,
		DaysToEncash: body.DaysToEncash,
		Amount:       h.Engine.QuoteEncashment(body.DaysToEncash),
	})

	h.Log.WithFields(logrus.Fields{
		"request_id":  stored.ID,
		"employee_id": emp.ID,
		"leave_type":  leaveType,
		"days":        body.DaysToEncash,
	}).Info("encashment request submitted")

	writeJSON(w, http.StatusCreated, toEncashmentDTO(stored))
}

// ListEncashments returns encashment requests, optionally filtered by
// employee_id and/or status.
func (h *Handler) ListEncashments(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	status := r.URL.Query().Get("status")

	var out []leave.LeaveEncashment
	for _, req := range h.Requests.ListEncashments() {
		if employeeID != "" && req.EmployeeID != employeeID {
			continue
		}
		if status != "" && string(req.Status) != status {
			continue
		}
		out = append(out, req)
	}
	writeJSON(w, http.StatusOK, toEncashmentDTOs(out))
}

// ApproveEncashment approves a pending encashment and deducts the days.
func (h *Handler) ApproveEncashment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.ApproverID == "" {
		writeError(w, http.StatusBadRequest, "approver_id is required", nil)
		return
	}

	if err := h.Requests.ApproveEncashment(r.Context(), id, body.ApproverID); err != nil {
		h.writeDomainError(w, err)
		return
	}

	req, _ := h.Requests.GetEncashment(id)
	writeJSON(w, http.StatusOK, toEncashmentDTO(req))
}

// RejectEncashment rejects a pending encashment. Balances are untouched.
func (h *Handler) RejectEncashment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.ApproverID == "" {
		writeError(w, http.StatusBadRequest, "approver_id is required", nil)
		return
	}

	if err := h.Requests.RejectEncashment(id, body.ApproverID); err != nil {
		h.writeDomainError(w, err)
		return
	}

	req, _ := h.Requests.GetEncashment(id)
	writeJSON(w, http.StatusOK, toEncashmentDTO(req))
}

// =============================================================================
// SESSION / POLICY / CALENDAR HANDLERS
// =============================================================================

// GetSession returns the acting user, or a null user when none.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	var dto SessionDTO
	if emp, ok := h.Directory.CurrentUser(); ok {
		d := toEmployeeDTO(emp)
		dto.User = &d
	}
	writeJSON(w, http.StatusOK, dto)
}

// SwitchUser changes the acting user. An unknown id clears the session
// rather than failing, matching the directory contract.
func (h *Handler) SwitchUser(w http.ResponseWriter, r *http.Request) {
	var body SwitchUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.Directory.SwitchUser(body.EmployeeID)
	h.GetSession(w, r)
}

// GetPolicy returns the active policy ruleset.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toPolicyDTO(h.Engine.Policy))
}

// CountDays computes the chargeable day count for a range. Date pickers
// call this so the client never re-implements the calendar rules.
func (h *Handler) CountDays(w http.ResponseWriter, r *http.Request) {
	var body CountDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := leave.ParseDate(body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := leave.ParseDate(body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	total, err := leave.CountChargeableDays(start, end, body.IncludeWeekends)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Start date must not be after end date", err)
		return
	}
	writeJSON(w, http.StatusOK, CountDaysResponse{TotalDays: total})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case leave.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, leave.ErrTerminalState):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, leave.ErrPolicyViolation):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.Log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
