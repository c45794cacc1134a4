package platform

import (
	"context"
	"time"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

type wireWindow struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

type wireSemester struct {
	ID                 string     `json:"id"`
	IsActive           bool       `json:"isActive"`
	StartDate          time.Time  `json:"startDate"`
	EarlyWindow        wireWindow `json:"earlyAssessmentWindow"`
	StandardWindow     wireWindow `json:"standardAssessmentWindow"`
	AlternativeWindow  wireWindow `json:"alternativeAssessmentWindow"`
	ReassessmentWindow wireWindow `json:"reassessmentWindow"`
}

type semestersResponse struct {
	Semesters []wireSemester `json:"semesters"`
}

func (w wireWindow) toModel() models.RegistrationWindow {
	return models.RegistrationWindow{Start: w.Start, End: w.End}
}

// FetchSemesters returns the remote semester calendar for the viewer's
// curriculum, ordered by start date ascending.
func (c *Client) FetchSemesters(ctx context.Context, token string) ([]models.PlatformSemester, error) {
	var resp semestersResponse
	if err := c.getJSON(ctx, token, "/api/semesters", nil, &resp); err != nil {
		return nil, upstream(err, "semesters")
	}

	semesters := make([]models.PlatformSemester, 0, len(resp.Semesters))
	for _, s := range resp.Semesters {
		semesters = append(semesters, models.PlatformSemester{
			RemoteID:  s.ID,
			IsActive:  s.IsActive,
			StartDate: s.StartDate,
			RegistrationWindows: models.RegistrationWindows{
				Early:        s.EarlyWindow.toModel(),
				Standard:     s.StandardWindow.toModel(),
				Alternative:  s.AlternativeWindow.toModel(),
				Reassessment: s.ReassessmentWindow.toModel(),
			},
		})
	}
	return semesters, nil
}
