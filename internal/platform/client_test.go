package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplan-dev/study-planner-api/pkg/config"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.PlatformConfig{
		BaseURL:      srv.URL,
		Timeout:      2 * time.Second,
		MaxRetries:   3,
		RetryBackoff: time.Millisecond,
		PageSize:     2,
	}, nil)
	return client, srv
}

func TestFetchSemesters(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/semesters", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"semesters":[
			{"id":"sem-1","isActive":true,"startDate":"2026-02-01T00:00:00Z",
			 "standardAssessmentWindow":{"start":"2026-02-01T00:00:00Z","end":"2026-06-01T00:00:00Z"}},
			{"id":"sem-2","isActive":false,"startDate":"2026-08-01T00:00:00Z"}
		]}`))
	}))

	semesters, err := client.FetchSemesters(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, semesters, 2)
	assert.Equal(t, "sem-1", semesters[0].RemoteID)
	assert.True(t, semesters[0].IsActive)
	assert.NotNil(t, semesters[0].RegistrationWindows.Standard.Start)
	assert.Nil(t, semesters[1].RegistrationWindows.Early.Start)
}

func TestFetchModulesInScopePaginates(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("offset") {
		case "0":
			w.Write([]byte(`{"totalCount":3,"modules":[
				{"id":"m1","identifier":"CS101","title":"Algorithms","ects":5,"allowEarlyAssessment":true},
				{"id":"m2","identifier":"CS102","title":"Databases","ects":5}
			]}`))
		case "2":
			w.Write([]byte(`{"totalCount":3,"modules":[
				{"id":"m3","identifier":"CS103","title":"Networks","ects":10,"allowAlternativeAssessment":true}
			]}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))

	modules, err := client.FetchModulesInScope(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "CS103", modules[2].Identifier)
	assert.True(t, modules[2].AllowsAlternativeAssessment)
}

func TestFetchAssessmentHistoryRejectsUnknownStyle(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"assessments":[
			{"id":"a1","semesterId":"sem-1","moduleId":"m1","assessmentStyle":"ORAL","assessmentType":"REGULAR"}
		]}`))
	}))

	_, err := client.FetchAssessmentHistory(context.Background(), "tok")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnmappedValue.Code, appErr.Code)
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"semesters":[]}`))
	}))

	semesters, err := client.FetchSemesters(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, semesters)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchSemesters(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchViewerMapsUnauthorized(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.FetchViewer(context.Background(), "bad")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
