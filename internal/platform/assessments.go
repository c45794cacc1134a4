package platform

import (
	"context"
	"time"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

type wireAssessor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireAssessment struct {
	ID           string       `json:"id"`
	SemesterID   string       `json:"semesterId"`
	ModuleID     string       `json:"moduleId"`
	Style        string       `json:"assessmentStyle"`
	Type         string       `json:"assessmentType"`
	Grade        *float64     `json:"grade"`
	Published    bool         `json:"published"`
	SubmittedOn  *time.Time   `json:"submittedOn"`
	ProposedDate *time.Time   `json:"proposedDate"`
	Assessor     wireAssessor `json:"assessor"`
}

type assessmentsResponse struct {
	Assessments []wireAssessment `json:"assessments"`
}

// FetchAssessmentHistory returns every assessment record of the viewer. A
// record carrying an unknown style or type aborts the fetch; history must not
// be silently truncated.
func (c *Client) FetchAssessmentHistory(ctx context.Context, token string) ([]models.AssessmentRecord, error) {
	var resp assessmentsResponse
	if err := c.getJSON(ctx, token, "/api/assessments", nil, &resp); err != nil {
		return nil, upstream(err, "assessment history")
	}

	records := make([]models.AssessmentRecord, 0, len(resp.Assessments))
	for _, a := range resp.Assessments {
		style, err := models.ParseAssessmentStyle(a.Style)
		if err != nil {
			return nil, err
		}
		typ, err := models.ParseAssessmentType(a.Type)
		if err != nil {
			return nil, err
		}
		records = append(records, models.AssessmentRecord{
			ID:               a.ID,
			SemesterRemoteID: a.SemesterID,
			ModuleID:         a.ModuleID,
			Style:            style,
			Type:             typ,
			Grade:            a.Grade,
			Published:        a.Published,
			SubmittedOn:      a.SubmittedOn,
			ProposedDate:     a.ProposedDate,
			AssessorID:       a.Assessor.ID,
			AssessorName:     a.Assessor.Name,
		})
	}
	return records, nil
}
