package platform

import (
	"context"
	"net/url"
	"strconv"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

type wireModule struct {
	ID                          string `json:"id"`
	Identifier                  string `json:"identifier"`
	Title                       string `json:"title"`
	Credits                     int    `json:"ects"`
	AllowsEarlyAssessment       bool   `json:"allowEarlyAssessment"`
	AllowsAlternativeAssessment bool   `json:"allowAlternativeAssessment"`
}

type modulesPage struct {
	Modules    []wireModule `json:"modules"`
	TotalCount int          `json:"totalCount"`
}

func (m wireModule) toModel() models.Module {
	return models.Module{
		ID:                          m.ID,
		Identifier:                  m.Identifier,
		Title:                       m.Title,
		Credits:                     m.Credits,
		AllowsEarlyAssessment:       m.AllowsEarlyAssessment,
		AllowsAlternativeAssessment: m.AllowsAlternativeAssessment,
	}
}

// FetchModulesInScope pages through the module catalog visible to the viewer
// and returns the flattened list. Page boundaries are an implementation
// detail of the platform; callers always see the whole scope.
func (c *Client) FetchModulesInScope(ctx context.Context, token string) ([]models.Module, error) {
	var all []models.Module
	offset := 0
	for {
		query := url.Values{}
		query.Set("offset", strconv.Itoa(offset))
		query.Set("limit", strconv.Itoa(c.pageSize))

		var page modulesPage
		if err := c.getJSON(ctx, token, "/api/modules", query, &page); err != nil {
			return nil, upstream(err, "modules")
		}
		for _, m := range page.Modules {
			all = append(all, m.toModel())
		}

		offset += len(page.Modules)
		if len(page.Modules) < c.pageSize || offset >= page.TotalCount {
			break
		}
	}
	return all, nil
}
