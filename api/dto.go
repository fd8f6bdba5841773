/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  DTOs are pure data carriers; validation happens in handlers via the
  credit package, which aggregates field-level violations.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/credit-engine/credit"
	"github.com/warp/credit-engine/store/sqlite"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ParamsDTO carries credit parameters over the wire. Dates travel as
// ISO-8601 strings and are parsed at the boundary.
type ParamsDTO struct {
	Principal      decimal.Decimal `json:"principal"`
	AnnualRatePct  float64         `json:"annualRatePct"`
	TermYears      float64         `json:"termYears"`
	PeriodsPerYear int             `json:"periodsPerYear"`
	StartDate      string          `json:"startDate"`
	SkipWeekends   bool            `json:"skipWeekends"`
	Mode           string          `json:"mode"`
}

func (d ParamsDTO) toParams() (credit.Params, error) {
	start, err := credit.ParseDate(d.StartDate)
	if err != nil {
		return credit.Params{}, err
	}
	return credit.Params{
		Principal:      d.Principal,
		AnnualRatePct:  d.AnnualRatePct,
		TermYears:      d.TermYears,
		PeriodsPerYear: d.PeriodsPerYear,
		StartDate:      start,
		SkipWeekends:   d.SkipWeekends,
		Mode:           credit.Mode(d.Mode),
	}, nil
}

func paramsDTO(p credit.Params) ParamsDTO {
	return ParamsDTO{
		Principal:      p.Principal,
		AnnualRatePct:  p.AnnualRatePct,
		TermYears:      p.TermYears,
		PeriodsPerYear: p.PeriodsPerYear,
		StartDate:      p.StartDate.Format("2006-01-02"),
		SkipWeekends:   p.SkipWeekends,
		Mode:           string(p.Mode),
	}
}

// EventDTO carries one early-repayment event.
type EventDTO struct {
	ID       string          `json:"id,omitempty"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Strategy string          `json:"strategy"`
}

func (d EventDTO) toEvent() (credit.Event, error) {
	date, err := credit.ParseDate(d.Date)
	if err != nil {
		return credit.Event{}, err
	}
	return credit.Event{
		ID:       d.ID,
		Date:     date,
		Amount:   d.Amount,
		Strategy: credit.Strategy(d.Strategy),
	}, nil
}

func eventDTO(e credit.Event) EventDTO {
	return EventDTO{
		ID:       e.ID,
		Date:     e.Date.Format("2006-01-02"),
		Amount:   e.Amount,
		Strategy: string(e.Strategy),
	}
}

// ComputeRequest is the stateless compute payload: parameters plus
// optional inline events.
type ComputeRequest struct {
	Params ParamsDTO  `json:"params"`
	Events []EventDTO `json:"events,omitempty"`
}

// CreatePlanRequest names a set of parameters for persistence.
type CreatePlanRequest struct {
	Name   string    `json:"name"`
	Params ParamsDTO `json:"params"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ScheduleResponse pairs a schedule with its derived summary.
type ScheduleResponse struct {
	Schedule credit.Schedule `json:"schedule"`
	Summary  credit.Summary  `json:"summary"`
}

// PlanDTO represents a stored plan in API responses.
type PlanDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Params    ParamsDTO  `json:"params"`
	Events    []EventDTO `json:"events,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func planDTO(p sqlite.Plan, events []credit.Event) PlanDTO {
	dto := PlanDTO{
		ID:        p.ID,
		Name:      p.Name,
		Params:    paramsDTO(p.Params),
		CreatedAt: p.CreatedAt,
	}
	for _, ev := range events {
		dto.Events = append(dto.Events, eventDTO(ev))
	}
	return dto
}

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error  string             `json:"error"`
	Fields []credit.FieldError `json:"fields,omitempty"`
}
