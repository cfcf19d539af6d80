/* audit.go
 * Contains the reconciliation engine: pattern discovery on a signal participant,
 * pool wide propagation, a verification pass and the batch correction step. Every
 * divergence is reported, a failed participant never aborts the run
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"survivor-pool/api/logic"
	"survivor-pool/api/shared"
	"survivor-pool/api/store"
)

// correctionWriteInterval spaces corrective writes so a large batch does not
// hammer the persistence layer
const correctionWriteInterval = 250 * time.Millisecond

// VerificationResults splits flagged matches by the outcome of the second check
type VerificationResults struct {
	Verified []logic.DriftMatch `json:"verified"`
	Failed   []logic.DriftMatch `json:"failed"`
}

// AuditReport is the full output of one reconciliation run
type AuditReport struct {
	Pool                string              `json:"pool"`
	SignalParticipant   string              `json:"signalParticipant"`
	BugPatterns         []logic.DriftMatch  `json:"bugPatterns"`
	AffectedUsers       []logic.DriftMatch  `json:"affectedUsers"`
	VerificationResults VerificationResults `json:"verificationResults"`
	Recommendations     []string            `json:"recommendations"`
	Errors              []string            `json:"errors,omitempty"`
	GeneratedAt         time.Time           `json:"generatedAt"`
}

// CorrectionOutcome summarises one batch correction run
type CorrectionOutcome struct {
	Corrected int      `json:"corrected"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// auditInputs recomputes ground truth and fetches the persisted status for one
// participant. A missing status record reads as persisted-alive
// Preconditions: Receives the participant id, aggregated results and the evaluable weeks
// Postconditions: Returns the computed record and persisted status, or an error
// when picks or status could not be read
func (a *API) auditInputs(participantID string, results map[int]shared.GameResult, weeks []int) (shared.SurvivorRecord, shared.PersistedStatus, error) {
	var picks map[int]shared.WeeklyPick

	sheet, err := a.Store.FetchPickSheet(participantID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return shared.SurvivorRecord{}, shared.PersistedStatus{}, fmt.Errorf("fetching picks for %s: %w", participantID, err)
	}
	if err == nil {
		picks = sheet.ToWeeklyPicks()
	}

	record := logic.ComputeSurvivorRecord(picks, results, weeks)

	statusRecord, err := a.Store.FetchStatusRecord(participantID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return record, shared.PersistedStatus{}, nil
		}
		return shared.SurvivorRecord{}, shared.PersistedStatus{}, fmt.Errorf("fetching status for %s: %w", participantID, err)
	}

	return record, statusRecord.ToPersistedStatus(), nil
}

// RunAudit recomputes ground truth for the signal participant, classifies the
// drift, propagates every discovered pattern kind across the enrolled roster and
// verifies each flagged participant a second time. No writes happen here,
// corrections are a separate explicit step
// Preconditions: Receives the signal participant id
// Postconditions: Returns the full audit report, or an error when the signal
// participant or a whole stage could not be processed
func (a *API) RunAudit(signalID string) (*AuditReport, error) {
	now := a.Now()
	results, _, weeks, err := a.loadResults(now)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{
		Pool:              a.Store.GetPool(),
		SignalParticipant: signalID,
		GeneratedAt:       now,
	}

	// Pattern discovery on the signal participant
	signalRecord, signalStatus, err := a.auditInputs(signalID, results, weeks)
	if err != nil {
		return nil, err
	}
	if signalRecord.Status == shared.StatusNotParticipating {
		return nil, fmt.Errorf("signal participant %s has no picks to audit", signalID)
	}
	report.BugPatterns = logic.ClassifyDrift(signalID, signalRecord, signalStatus)

	if len(report.BugPatterns) == 0 {
		report.Recommendations = append(report.Recommendations, fmt.Sprintf("no drift detected for signal participant %s, persisted status matches computed truth", signalID))
		return report, nil
	}

	// A discovered bug class is assumed systemic, test the same kinds pool wide
	kinds := make(map[logic.PatternKind]bool)
	for _, match := range report.BugPatterns {
		kinds[match.Kind] = true
	}

	roster, err := a.Store.FetchRoster()
	if err != nil {
		return nil, fmt.Errorf("roster stage failed: %w", err)
	}

	for _, doc := range roster {
		if !doc.Enrolled || doc.ParticipantID == signalID {
			continue
		}
		record, status, err := a.auditInputs(doc.ParticipantID, results, weeks)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		if record.Status == shared.StatusNotParticipating {
			continue
		}
		matches := logic.FilterKinds(logic.ClassifyDrift(doc.ParticipantID, record, status), kinds)
		report.AffectedUsers = append(report.AffectedUsers, matches...)
	}

	// Verification pass: re-check every flagged participant with fresh inputs
	// immediately before any fix is considered
	flagged := append(append([]logic.DriftMatch{}, report.BugPatterns...), report.AffectedUsers...)
	for _, match := range flagged {
		record, status, err := a.auditInputs(match.ParticipantID, results, weeks)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			report.VerificationResults.Failed = append(report.VerificationResults.Failed, match)
			continue
		}
		if logic.HasKind(logic.ClassifyDrift(match.ParticipantID, record, status), match.Kind) {
			report.VerificationResults.Verified = append(report.VerificationResults.Verified, match)
		} else {
			report.VerificationResults.Failed = append(report.VerificationResults.Failed, match)
		}
	}

	report.Recommendations = buildRecommendations(report.VerificationResults.Verified)
	return report, nil
}

// buildRecommendations turns the verified matches into operator guidance
// Preconditions: Receives the verified drift matches
// Postconditions: Returns one recommendation per pattern kind present
func buildRecommendations(verified []logic.DriftMatch) []string {
	counts := make(map[logic.PatternKind]int)
	for _, match := range verified {
		counts[match.Kind]++
	}

	var recommendations []string
	if n := counts[logic.PatternIncorrectEliminationWeek]; n > 0 {
		recommendations = append(recommendations, fmt.Sprintf("restore %d wrongly eliminated participant(s) to alive", n))
	}
	if n := counts[logic.PatternMissingElimination]; n > 0 {
		recommendations = append(recommendations, fmt.Sprintf("mark %d participant(s) eliminated with the computed week and cause", n))
	}
	if n := counts[logic.PatternDelayedElimination]; n > 0 {
		recommendations = append(recommendations, fmt.Sprintf("%d delayed elimination(s) detected, review manually before adjusting weeks", n))
	}
	return recommendations
}

// ApplyCorrections writes the corrective status updates for every verified match
// in the report. Writes are paced by a rate limiter and each carries a uuid
// tagged audit trail. Re-running against already corrected participants yields
// no further writes
// Preconditions: Receives an audit report from RunAudit and the acting operator name
// Postconditions: Returns the correction outcome. Per participant write failures
// are collected, not fatal
func (a *API) ApplyCorrections(report *AuditReport, actor string) (*CorrectionOutcome, error) {
	if report == nil {
		return nil, fmt.Errorf("audit report is required")
	}

	limiter := rate.NewLimiter(rate.Every(correctionWriteInterval), 1)
	outcome := &CorrectionOutcome{}

	for _, match := range report.VerificationResults.Verified {
		if err := limiter.Wait(context.TODO()); err != nil {
			return outcome, err
		}

		correction := store.Correction{
			ID:    uuid.NewString(),
			Actor: actor,
			At:    a.Now().Unix(),
			Note:  fmt.Sprintf("audit verified %s", match.Kind),
		}

		var err error
		switch match.Kind {
		case logic.PatternIncorrectEliminationWeek:
			err = a.Store.ClearElimination(match.ParticipantID, correction)
		case logic.PatternMissingElimination:
			err = a.Store.MarkEliminated(match.ParticipantID, match.ComputedWeek, match.ComputedBy, correction)
		case logic.PatternDelayedElimination:
			// Reported only, week adjustments need operator review
			outcome.Skipped++
			continue
		}
		if err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", match.ParticipantID, err))
			continue
		}
		outcome.Corrected++
	}

	return outcome, nil
}
