package platform

import (
	"context"
	"net/http"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

type viewerResponse struct {
	Viewer struct {
		ID       string `json:"id"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	} `json:"viewer"`
}

// FetchViewer resolves the identity behind a platform access token. An
// unauthorized answer maps to the auth error so login can reject the token
// without surfacing a gateway failure.
func (c *Client) FetchViewer(ctx context.Context, token string) (*models.PlatformViewer, error) {
	var resp viewerResponse
	if err := c.getJSON(ctx, token, "/api/viewer", nil, &resp); err != nil {
		if herr, ok := err.(*HTTPError); ok &&
			(herr.StatusCode == http.StatusUnauthorized || herr.StatusCode == http.StatusForbidden) {
			return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "platform rejected access token")
		}
		return nil, upstream(err, "viewer")
	}
	return &models.PlatformViewer{
		ID:       resp.Viewer.ID,
		FullName: resp.Viewer.FullName,
		Email:    resp.Viewer.Email,
	}, nil
}
