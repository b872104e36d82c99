package orders

import (
	"fmt"
	"time"

	"evaluo/server/internal/models"
)

// note is a pending user notification produced by a transition. Notes
// are appended to the notification store only after the order mutation
// is committed.
type note struct {
	title   string
	message string
	typ     models.NotificationType
	url     string
}

// statusRank orders the coarse statuses so regressions can be rejected
var statusRank = map[string]int{
	models.StatusPending:           0,
	models.StatusEvaluatorAssigned: 1,
	models.StatusInProgress:        2,
	models.StatusReportReady:       3,
}

// StatusForStep projects a fine-grained step onto its coarse status.
// Keeping the projection pure is what prevents the two fields from
// drifting apart between the advance and admin mutation paths.
func StatusForStep(step models.Step) string {
	switch step {
	case models.StepPendingMatch:
		return models.StatusPending
	case models.StepOutreachInitiated, models.StepOutreachScheduling, models.StepOutreachScheduled:
		return models.StatusEvaluatorAssigned
	case models.StepEnRoute, models.StepArrived, models.StepEvaluating, models.StepCompleted:
		return models.StatusInProgress
	case models.StepReportReady:
		return models.StatusReportReady
	default:
		return models.StatusPending
	}
}

// stepForStatus maps a directly-set coarse status to the step that
// opens that phase
func stepForStatus(status string) models.Step {
	switch status {
	case models.StatusEvaluatorAssigned:
		return models.StepOutreachInitiated
	case models.StatusInProgress:
		return models.StepEnRoute
	case models.StatusReportReady:
		return models.StepReportReady
	default:
		return models.StepPendingMatch
	}
}

// advanceOrder moves the order forward by exactly one step and returns
// the notifications a user would expect for that transition. The order
// is mutated in place; callers pass a copy and commit it afterwards.
func advanceOrder(o *models.Order, pick func() models.Evaluator, now time.Time) ([]note, error) {
	orderURL := "/orders/" + o.ID

	switch o.CurrentStep {
	case models.StepPendingMatch:
		if o.Evaluator == nil {
			evaluator := pick()
			o.Evaluator = &evaluator
		}
		o.Status = models.StatusEvaluatorAssigned
		o.CurrentPropertyIndex = 0
		o.CurrentStep = models.StepOutreachInitiated
		return []note{
			{
				title:   "Evaluator Assigned",
				message: fmt.Sprintf("%s will handle your evaluation order.", o.Evaluator.Name),
				typ:     models.NotificationSuccess,
				url:     orderURL,
			},
			{
				title:   "Outreach Started",
				message: fmt.Sprintf("We are contacting the landlord for %s.", o.Properties[0].Address),
				typ:     models.NotificationInfo,
				url:     orderURL,
			},
		}, nil

	case models.StepOutreachInitiated:
		o.CurrentStep = models.StepOutreachScheduling
		return []note{{
			title:   "Scheduling in Progress",
			message: fmt.Sprintf("Working out a viewing time for %s.", o.CurrentProperty().Address),
			typ:     models.NotificationInfo,
			url:     orderURL,
		}}, nil

	case models.StepOutreachScheduling:
		o.CurrentStep = models.StepOutreachScheduled
		viewing := now.Add(24*time.Hour).Format("Monday, Jan 2") + " at 10:00 AM"
		return []note{{
			title:   "Viewing Scheduled",
			message: fmt.Sprintf("Viewing of %s booked for %s.", o.CurrentProperty().Address, viewing),
			typ:     models.NotificationSuccess,
			url:     orderURL,
		}}, nil

	case models.StepOutreachScheduled:
		o.Status = models.StatusInProgress
		o.CurrentStep = models.StepEnRoute
		return []note{{
			title:   "Evaluator En Route",
			message: fmt.Sprintf("%s is on the way to %s.", o.Evaluator.Name, o.CurrentProperty().Address),
			typ:     models.NotificationInfo,
			url:     orderURL,
		}}, nil

	case models.StepEnRoute:
		o.CurrentStep = models.StepArrived
		return []note{{
			title:   "Evaluator Arrived",
			message: fmt.Sprintf("%s has arrived at %s.", o.Evaluator.Name, o.CurrentProperty().Address),
			typ:     models.NotificationInfo,
			url:     orderURL,
		}}, nil

	case models.StepArrived:
		o.CurrentStep = models.StepEvaluating
		return []note{{
			title:   "Evaluation in Progress",
			message: fmt.Sprintf("The walkthrough of %s is underway.", o.CurrentProperty().Address),
			typ:     models.NotificationInfo,
			url:     orderURL,
		}}, nil

	case models.StepEvaluating:
		o.CurrentStep = models.StepCompleted
		return []note{{
			title:   "Property Evaluated",
			message: fmt.Sprintf("Evaluation of %s is finished.", o.CurrentProperty().Address),
			typ:     models.NotificationSuccess,
			url:     orderURL,
		}}, nil

	case models.StepCompleted:
		if o.CurrentPropertyIndex < len(o.Properties)-1 {
			o.CurrentPropertyIndex++
			o.CurrentStep = models.StepOutreachInitiated
			return []note{{
				title:   "Starting Next Property",
				message: fmt.Sprintf("Moving on to %s.", o.CurrentProperty().Address),
				typ:     models.NotificationInfo,
				url:     orderURL,
			}}, nil
		}
		o.CurrentStep = models.StepReportReady
		o.Status = models.StatusReportReady
		return []note{{
			title:   "Evaluation Complete",
			message: "All properties evaluated. Your report is ready.",
			typ:     models.NotificationSuccess,
			url:     orderURL,
		}}, nil

	case models.StepReportReady:
		return nil, ErrOrderComplete

	default:
		return nil, fmt.Errorf("unknown lifecycle step: %s", o.CurrentStep)
	}
}
