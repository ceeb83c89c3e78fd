package schedule

import (
	"context"
	"errors"
	"time"

	"solarops/internal/repository"
)

// Date renderings expected by existing consumers.
const (
	dateSortable = "2006-01-02"
	dateHuman    = "Jan 02, 2006"
)

// EstimateProjectDuration maps system capacity to an installation
// duration in business days. Brackets are contiguous and
// upper-inclusive.
func EstimateProjectDuration(kwCapacity float64) int {
	switch {
	case kwCapacity <= 5:
		return 7
	case kwCapacity <= 10:
		return 15
	case kwCapacity <= 15:
		return 25
	default:
		return 35
	}
}

// AddBusinessDays advances one calendar day at a time, counting only
// Monday through Friday toward daysToAdd. The result is always a
// weekday.
func AddBusinessDays(start time.Time, daysToAdd int) time.Time {
	d := start
	for added := 0; added < daysToAdd; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return d
}

// ProjectDateInfo is the expected work window for a project, derived
// from its first settled installment and its capacity estimate.
type ProjectDateInfo struct {
	StartDate     string `json:"start_date"`
	StartDateText string `json:"start_date_text"`
	EndDate       string `json:"end_date"`
	EndDateText   string `json:"end_date_text"`
	FacilitatorID int64  `json:"facilitator_id"`
}

// DateInfo locates the earliest acknowledged payment and the assigned
// facilitator; without both there is no window and ErrNotFound is
// returned. Cash settlements anchor on the recorded cash timestamp,
// gateway settlements on the intent's creation time.
func (s *Service) DateInfo(ctx context.Context, projectID int64) (*ProjectDateInfo, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	payment, err := s.payments.EarliestAcknowledged(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	facilitator, err := s.workLogs.GetFacilitator(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var start time.Time
	if payment.CashPayment && payment.CashPaidAt != nil {
		start = *payment.CashPaidAt
	} else {
		start, err = s.oracle.IntentCreatedAt(ctx, payment.ID)
		if err != nil {
			return nil, ErrExternalService
		}
	}

	end := AddBusinessDays(start, EstimateProjectDuration(project.KWCapacity))

	return &ProjectDateInfo{
		StartDate:     start.Format(dateSortable),
		StartDateText: start.Format(dateHuman),
		EndDate:       end.Format(dateSortable),
		EndDateText:   end.Format(dateHuman),
		FacilitatorID: facilitator.UserID,
	}, nil
}
