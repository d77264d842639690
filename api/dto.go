/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
)

// =============================================================================
// EMPLOYEE / SESSION TYPES
// =============================================================================

// BalanceDTO represents the remaining days per leave type.
type BalanceDTO struct {
	CL        int  `json:"cl"`
	EL        int  `json:"el"`
	ML        int  `json:"ml"`
	UEL       int  `json:"uel"`
	Maternity *int `json:"maternity_leave,omitempty"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	ManagerID    string     `json:"manager_id,omitempty"`
	ServiceYears int        `json:"service_years"`
	Gender       string     `json:"gender"`
	Balance      BalanceDTO `json:"leave_balance"`
}

// SessionDTO is the current acting user, or null when none.
type SessionDTO struct {
	User *EmployeeDTO `json:"user"`
}

// SwitchUserRequest selects the acting employee.
type SwitchUserRequest struct {
	EmployeeID string `json:"employee_id"`
}

// =============================================================================
// LEAVE REQUEST TYPES
// =============================================================================

// SubmitLeaveRequest is the body for submitting a leave request.
type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// LeaveRequestDTO represents a leave request in API responses.
type LeaveRequestDTO struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AppliedDate  string  `json:"applied_date"`
	ApprovedDate *string `json:"approved_date,omitempty"`
	ApprovedBy   string  `json:"approved_by,omitempty"`
	Comments     string  `json:"comments,omitempty"`
}

// ReviewRequest is the body for approving or rejecting a request.
type ReviewRequest struct {
	ApproverID string `json:"approver_id"`
	Comments   string `json:"comments,omitempty"`
}

// =============================================================================
// ENCASHMENT TYPES
// =============================================================================

// SubmitEncashmentRequest is the body for submitting an encashment.
type SubmitEncashmentRequest struct {
	LeaveType    string `json:"leave_type"`
	DaysToEncash int    `json:"days_to_encash"`
}

// EncashmentDTO represents an encashment request in API responses.
type EncashmentDTO struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	LeaveType    string  `json:"leave_type"`
	DaysToEncash int     `json:"days_to_encash"`
	Amount       float64 `json:"amount"`
	AppliedDate  string  `json:"applied_date"`
	Status       string  `json:"status"`
	ApprovedBy   string  `json:"approved_by,omitempty"`
}

// EncashmentQuoteDTO describes what an employee could encash right now.
type EncashmentQuoteDTO struct {
	LeaveType         string  `json:"leave_type"`
	CurrentBalance    int     `json:"current_balance"`
	MaxEncashableDays int     `json:"max_encashable_days"`
	MinBalance        int     `json:"min_balance"`
	DailyRate         float64 `json:"daily_rate"`
}

// =============================================================================
// CALENDAR / AUDIT / POLICY TYPES
// =============================================================================

// CountDaysRequest asks how many chargeable days a range represents.
type CountDaysRequest struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	IncludeWeekends bool   `json:"include_weekends"`
}

type CountDaysResponse struct {
	TotalDays int `json:"total_days"`
}

// TransactionDTO represents one audit-trail entry.
type TransactionDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Days       int    `json:"days"`
	Reference  string `json:"reference,omitempty"`
	Reason     string `json:"reason,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// PolicyDTO mirrors the policy shape exposed to clients.
type PolicyDTO struct {
	CL struct {
		Annual          int  `json:"annual"`
		MaxConsecutive  int  `json:"max_consecutive"`
		IncludeWeekends bool `json:"include_weekends"`
	} `json:"cl"`
	EL struct {
		Annual     int `json:"annual"`
		FirstHalf  int `json:"first_half"`
		SecondHalf int `json:"second_half"`
		ExpiryDays int `json:"expiry_days"`
	} `json:"el"`
	ML struct {
		Monthly     int  `json:"monthly"`
		Accumulates bool `json:"accumulates"`
		ExpiryDays  int  `json:"expiry_days"`
	} `json:"ml"`
	UEL struct {
		LessThan10Years int `json:"less_than_10_years"`
		MoreThan10Years int `json:"more_than_10_years"`
	} `json:"uel"`
	Maternity struct {
		Annual int `json:"annual"`
	} `json:"maternity"`
	Encashment struct {
		MaxDays       int      `json:"max_days"`
		EligibleTypes []string `json:"eligible_types"`
		MinBalance    int      `json:"min_balance"`
		DailyRate     float64  `json:"daily_rate"`
	} `json:"encashment"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toBalanceDTO(b leave.LeaveBalance) BalanceDTO {
	dto := BalanceDTO{CL: b.CL, EL: b.EL, ML: b.ML, UEL: b.UEL}
	if b.Maternity != nil {
		v := *b.Maternity
		dto.Maternity = &v
	}
	return dto
}

func toEmployeeDTO(e leave.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Role:         string(e.Role),
		ManagerID:    e.ManagerID,
		ServiceYears: e.ServiceYears,
		Gender:       string(e.Gender),
		Balance:      toBalanceDTO(e.Balance),
	}
}

func toLeaveRequestDTO(r leave.LeaveRequest) LeaveRequestDTO {
	dto := LeaveRequestDTO{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    string(r.LeaveType),
		StartDate:    r.StartDate.String(),
		EndDate:      r.EndDate.String(),
		TotalDays:    r.TotalDays,
		Reason:       r.Reason,
		Status:       string(r.Status),
		AppliedDate:  r.AppliedDate.Format(time.RFC3339),
		ApprovedBy:   r.ApprovedBy,
		Comments:     r.Comments,
	}
	if r.ApprovedDate != nil {
		s := r.ApprovedDate.Format(time.RFC3339)
		dto.ApprovedDate = &s
	}
	return dto
}

func toLeaveRequestDTOs(reqs []leave.LeaveRequest) []LeaveRequestDTO {
	dtos := make([]LeaveRequestDTO, len(reqs))
	for i, r := range reqs {
		dtos[i] = toLeaveRequestDTO(r)
	}
	return dtos
}

func toEncashmentDTO(r leave.LeaveEncashment) EncashmentDTO {
	return EncashmentDTO{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    string(r.LeaveType),
		DaysToEncash: r.DaysToEncash,
		Amount:       r.Amount.Float64(),
		AppliedDate:  r.AppliedDate.Format(time.RFC3339),
		Status:       string(r.Status),
		ApprovedBy:   r.ApprovedBy,
	}
}

func toEncashmentDTOs(reqs []leave.LeaveEncashment) []EncashmentDTO {
	dtos := make([]EncashmentDTO, len(reqs))
	for i, r := range reqs {
		dtos[i] = toEncashmentDTO(r)
	}
	return dtos
}

func toTransactionDTO(tx store.BalanceTx) TransactionDTO {
	return TransactionDTO{
		ID:         tx.ID,
		EmployeeID: tx.EmployeeID,
		LeaveType:  string(tx.LeaveType),
		Days:       tx.Days,
		Reference:  tx.Reference,
		Reason:     tx.Reason,
		CreatedBy:  tx.CreatedBy,
		CreatedAt:  tx.CreatedAt.Format(time.RFC3339),
	}
}

func toPolicyDTO(p leave.LeavePolicy) PolicyDTO {
	var dto PolicyDTO
	dto.CL.Annual = p.CL.Annual
	dto.CL.MaxConsecutive = p.CL.MaxConsecutive
	dto.CL.IncludeWeekends = p.CL.IncludeWeekends
	dto.EL.Annual = p.EL.Annual
	dto.EL.FirstHalf = p.EL.FirstHalf
	dto.EL.SecondHalf = p.EL.SecondHalf
	dto.EL.ExpiryDays = p.EL.ExpiryDays
	dto.ML.Monthly = p.ML.Monthly
	dto.ML.Accumulates = p.ML.Accumulates
	dto.ML.ExpiryDays = p.ML.ExpiryDays
	dto.UEL.LessThan10Years = p.UEL.LessThan10Years
	dto.UEL.MoreThan10Years = p.UEL.MoreThan10Years
	dto.Maternity.Annual = p.Maternity.Annual
	dto.Encashment.MaxDays = p.Encashment.MaxDays
	for _, t := range p.Encashment.EligibleTypes {
		dto.Encashment.EligibleTypes = append(dto.Encashment.EligibleTypes, string(t))
	}
	dto.Encashment.MinBalance = p.Encashment.MinBalance
	dto.Encashment.DailyRate = p.Encashment.DailyRate.Float64()
	return dto
}
