package forecast

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const monthLayout = "2006-01"

// DateRange is an inclusive calendar-day range
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ReportRequest enumerates every option a report computation accepts.
// Month is "YYYY-MM"; when empty it is derived from Period, then from the clock.
// Period narrows the current window inside that month and sets the as-of day.
type ReportRequest struct {
	WorkspaceID string     `json:"workspaceId"`
	Month       string     `json:"month,omitempty"`
	Period      *DateRange `json:"period,omitempty"`
}

// Period is a resolved reporting month. All dates are midnight in the engine location.
type Period struct {
	Month       string
	Start       time.Time // first day of the month
	End         time.Time // last day of the month
	AsOf        time.Time // last day counted as elapsed
	WindowStart time.Time // first day of the current window
	WindowEnd   time.Time // last day of the current window; before WindowStart when nothing elapsed
	DaysInMonth int
	DaysPassed  int
	DaysLeft    int
	Complete    bool
}

// Request option names accepted by ParseRequest
const (
	OptionMonth = "month"
	OptionStart = "start"
	OptionEnd   = "end"
)

// ParseRequest builds a ReportRequest from string options such as URL query values or
// CLI flags. Dates are YYYY-MM-DD in loc; start and end must be given together.
// Any other option is rejected with ErrUnknownOption.
func ParseRequest(workspaceID string, options map[string]string, loc *time.Location) (ReportRequest, error) {
	if loc == nil {
		loc = time.UTC
	}
	req := ReportRequest{WorkspaceID: strings.TrimSpace(workspaceID)}

	var unknown []string
	for key := range options {
		switch key {
		case OptionMonth, OptionStart, OptionEnd:
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ReportRequest{}, fmt.Errorf("%w: %s", ErrUnknownOption, strings.Join(unknown, ", "))
	}

	req.Month = strings.TrimSpace(options[OptionMonth])

	start := strings.TrimSpace(options[OptionStart])
	end := strings.TrimSpace(options[OptionEnd])
	if start == "" && end == "" {
		return req, nil
	}
	if start == "" || end == "" {
		return ReportRequest{}, fmt.Errorf("%w: start and end must be given together", ErrInvalidPeriod)
	}

	s, err := time.ParseInLocation(time.DateOnly, start, loc)
	if err != nil {
		return ReportRequest{}, fmt.Errorf("%w: start %q must be YYYY-MM-DD", ErrInvalidPeriod, start)
	}
	e, err := time.ParseInLocation(time.DateOnly, end, loc)
	if err != nil {
		return ReportRequest{}, fmt.Errorf("%w: end %q must be YYYY-MM-DD", ErrInvalidPeriod, end)
	}
	req.Period = &DateRange{Start: s, End: e}
	return req, nil
}

// ParseWorkspaceID rejects empty, malformed and nil workspace ids.
func ParseWorkspaceID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: empty", ErrInvalidWorkspace)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidWorkspace, raw)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: nil uuid", ErrInvalidWorkspace)
	}
	return id, nil
}

// ResolvePeriod turns a request into a Period relative to now.
// A fully past month counts every day as elapsed; a future month counts none.
func ResolvePeriod(req ReportRequest, now time.Time, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	today := dayOf(now, loc)

	var monthStart time.Time
	switch {
	case req.Month != "":
		t, err := time.ParseInLocation(monthLayout, strings.TrimSpace(req.Month), loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: month %q must be YYYY-MM", ErrInvalidPeriod, req.Month)
		}
		monthStart = t
	case req.Period != nil:
		s := dayOf(req.Period.Start, loc)
		monthStart = time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, loc)
	default:
		monthStart = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	}

	p := Period{
		Month:       monthStart.Format(monthLayout),
		Start:       monthStart,
		End:         monthStart.AddDate(0, 1, -1),
		WindowStart: monthStart,
	}
	p.DaysInMonth = p.End.Day()

	asOf := today
	if req.Period != nil {
		start := dayOf(req.Period.Start, loc)
		end := dayOf(req.Period.End, loc)
		if end.Before(start) {
			return Period{}, fmt.Errorf("%w: period end %s is before start %s", ErrInvalidPeriod,
				end.Format(time.DateOnly), start.Format(time.DateOnly))
		}
		if start.Before(p.Start) || end.After(p.End) {
			return Period{}, fmt.Errorf("%w: period %s..%s is not within month %s", ErrInvalidPeriod,
				start.Format(time.DateOnly), end.Format(time.DateOnly), p.Month)
		}
		p.WindowStart = start
		if end.Before(asOf) {
			asOf = end
		}
	}

	switch {
	case asOf.Before(p.Start):
		p.DaysPassed = 0
		p.AsOf = p.Start.AddDate(0, 0, -1)
	case !asOf.Before(p.End):
		p.DaysPassed = p.DaysInMonth
		p.AsOf = p.End
		p.Complete = true
	default:
		p.DaysPassed = asOf.Day()
		p.AsOf = asOf
	}
	p.WindowEnd = p.AsOf
	p.DaysLeft = p.DaysInMonth - p.DaysPassed
	return p, nil
}

// MonthsBack returns the first day of the month n months before the period's month.
func (p Period) MonthsBack(n int) time.Time {
	return p.Start.AddDate(0, -n, 0)
}

// FetchRange is the inclusive day range the storage collaborator must return.
func (p Period) FetchRange(s Settings) DateRange {
	return DateRange{Start: p.MonthsBack(s.fetchMonths()), End: p.End}
}

// dayOf truncates t to midnight of its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func monthEnd(monthStart time.Time) time.Time {
	return monthStart.AddDate(0, 1, -1)
}

func inDays(t, start, end time.Time) bool {
	d := dayOf(t, start.Location())
	return !d.Before(start) && !d.After(end)
}
