package reasoning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
	"github.com/Rugbydude80/localops-ai-sub001/internal/scheduler"
	"github.com/Rugbydude80/localops-ai-sub001/internal/utils"
)

// Engine generates human-readable justification for an assignment. The
// deterministic local portion is always computed; an optional external
// text-generation call may enrich it, and any failure there degrades
// silently back to the local result.
type Engine struct {
	client InsightClient
	cache  InsightCache
}

func NewEngine(client InsightClient, cache InsightCache) *Engine {
	return &Engine{client: client, cache: cache}
}

// GenerateAssignmentReasoning builds the reasoning record for one draft
// assignment. aiEnabled gates the external augmentation; the returned
// value is complete either way.
func (e *Engine) GenerateAssignmentReasoning(
	ctx context.Context,
	shift *domain.Shift,
	staff *domain.Staff,
	assignment *domain.DraftShiftAssignment,
	sc *scheduler.SchedulingContext,
	aiEnabled bool,
) *domain.AssignmentReasoning {
	reasoning := &domain.AssignmentReasoning{
		PrimaryReasons:  []string{},
		Considerations:  []string{},
		RiskFactors:     []string{},
		ConfidenceScore: assignment.ConfidenceScore,
	}

	reasoning.PrimaryReasons = append(reasoning.PrimaryReasons,
		fmt.Sprintf("%s holds the %q skill this shift requires", staff.Name, shift.RequiredSkill))
	reasoning.PrimaryReasons = append(reasoning.PrimaryReasons,
		fmt.Sprintf("%s reliability (%.1f/10)", ReliabilityBand(staff.ReliabilityScore), staff.ReliabilityScore))

	e.availabilityNotes(shift, staff, reasoning)
	e.workloadNote(staff, sc, reasoning)
	e.costNote(shift, staff, reasoning)

	// historical performance estimate, monotonic in reliability
	onTime := 50.0 + staff.ReliabilityScore*5.0
	reasoning.Considerations = append(reasoning.Considerations,
		fmt.Sprintf("estimated %.0f%% on-time attendance based on reliability history", onTime))

	if aiEnabled && e.client != nil {
		e.augment(ctx, shift, staff, assignment, reasoning)
	}

	return reasoning
}

func (e *Engine) availabilityNotes(shift *domain.Shift, staff *domain.Staff, reasoning *domain.AssignmentReasoning) {
	windows := staff.Availability[utils.WeekdayName(shift.Date)]
	best := 0.0
	for _, w := range windows {
		frac := utils.OverlapFraction(shift.StartTime, shift.EndTime, w.StartTime, w.EndTime)
		if frac > best {
			best = frac
		}
	}
	switch {
	case best >= 1.0:
		reasoning.PrimaryReasons = append(reasoning.PrimaryReasons,
			"fully available for the entire shift window")
	case best > 0:
		reasoning.Considerations = append(reasoning.Considerations,
			fmt.Sprintf("availability covers %.0f%% of the shift window", best*100))
	default:
		reasoning.RiskFactors = append(reasoning.RiskFactors,
			"shift falls outside recorded availability")
	}
}

func (e *Engine) workloadNote(staff *domain.Staff, sc *scheduler.SchedulingContext, reasoning *domain.AssignmentReasoning) {
	if len(sc.Staff) == 0 {
		return
	}
	counts := make(map[int64]int)
	for _, a := range sc.ExistingAssignments {
		counts[a.StaffID]++
	}
	total := 0
	for _, s := range sc.Staff {
		total += counts[s.ID]
	}
	mean := float64(total) / float64(len(sc.Staff))
	mine := float64(counts[staff.ID])

	switch {
	case mine < mean:
		reasoning.Considerations = append(reasoning.Considerations,
			"assignment improves workload balance across the team")
	case mine > mean+1:
		reasoning.RiskFactors = append(reasoning.RiskFactors,
			fmt.Sprintf("%s already carries more shifts than the team average", staff.Name))
	}
}

func (e *Engine) costNote(shift *domain.Shift, staff *domain.Staff, reasoning *domain.AssignmentReasoning) {
	if staff.HourlyRate == nil || shift.HourlyRate == nil || *shift.HourlyRate == 0 {
		return
	}
	if *staff.HourlyRate <= *shift.HourlyRate {
		reasoning.Considerations = append(reasoning.Considerations,
			fmt.Sprintf("hourly rate £%.2f is within the shift's £%.2f budget", *staff.HourlyRate, *shift.HourlyRate))
	} else {
		reasoning.RiskFactors = append(reasoning.RiskFactors,
			fmt.Sprintf("hourly rate £%.2f exceeds the shift's £%.2f budget", *staff.HourlyRate, *shift.HourlyRate))
	}
}

// augment asks the external text-generation service for extra insight.
// Every failure path is swallowed: the deterministic reasoning above must
// survive a dead, slow, or misbehaving service.
func (e *Engine) augment(ctx context.Context, shift *domain.Shift, staff *domain.Staff, assignment *domain.DraftShiftAssignment, reasoning *domain.AssignmentReasoning) {
	key := fmt.Sprintf("insight_shift_%d_staff_%d", shift.ID, staff.ID)

	if e.cache != nil {
		if insights, ok := e.cache.Get(ctx, key); ok {
			reasoning.Considerations = append(reasoning.Considerations, insights.Considerations...)
			reasoning.RiskFactors = append(reasoning.RiskFactors, insights.RiskFactors...)
			return
		}
	}

	req := &InsightRequest{
		ShiftDate:        shift.Date.Format("2006-01-02"),
		ShiftStart:       shift.StartTime,
		ShiftEnd:         shift.EndTime,
		RequiredSkill:    shift.RequiredSkill,
		StaffName:        staff.Name,
		Skills:           staff.Skills,
		ReliabilityScore: staff.ReliabilityScore,
		ConfidenceScore:  assignment.ConfidenceScore,
	}

	insights, err := e.client.GenerateInsights(ctx, req)
	if err != nil {
		slog.Warn("external reasoning call failed, using local reasoning only", "error", err)
		return
	}

	reasoning.Considerations = append(reasoning.Considerations, insights.Considerations...)
	reasoning.RiskFactors = append(reasoning.RiskFactors, insights.RiskFactors...)

	if e.cache != nil {
		e.cache.Set(ctx, key, insights)
	}
}

// ReliabilityBand maps a 0-10 reliability score to a qualitative band.
func ReliabilityBand(score float64) string {
	switch {
	case score >= 8.0:
		return "Expert"
	case score >= 5.0:
		return "Intermediate"
	default:
		return "Basic"
	}
}
