package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fuzumoe/url-insight-dashboard/internal/gateway/mocks"
	"github.com/fuzumoe/url-insight-dashboard/internal/models"
	"github.com/fuzumoe/url-insight-dashboard/internal/selection"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupStore(t *testing.T, opts ...Option) (*Store, *mocks.MockJobGateway) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockJobGateway(ctrl)
	opts = append([]Option{WithLogger(discardLogger())}, opts...)
	return New(gw, opts...), gw
}

func testPage(jobs ...models.Job) *models.JobPage {
	return &models.JobPage{
		Data: jobs,
		Pagination: models.Pagination{
			Page:       1,
			PageSize:   DefaultPageSize,
			TotalItems: len(jobs),
			TotalPages: 1,
		},
	}
}

func testJob(id string, status models.JobStatus) models.Job {
	return models.Job{
		ID:        id,
		URL:       "https://example.com/" + id,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_FetchAll(t *testing.T) {
	t.Run("ReplacesCollectionOnSuccess", func(t *testing.T) {
		s, gw := setupStore(t)
		gw.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(testPage(testJob("1", models.JobStatusDone), testJob("2", models.JobStatusRunning)), nil)

		err := s.FetchAll(context.Background(), models.ListQuery{Page: 1, PageSize: DefaultPageSize})

		require.NoError(t, err)
		assert.Len(t, s.Jobs(), 2)
		assert.False(t, s.Loading())
		assert.Empty(t, s.Err())
	})

	t.Run("StoresErrorMessageOnFailure", func(t *testing.T) {
		s, gw := setupStore(t)
		gw.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		err := s.FetchAll(context.Background(), models.ListQuery{Page: 1})

		require.Error(t, err)
		assert.Equal(t, "connection refused", s.Err())
		assert.Empty(t, s.Jobs())
		assert.False(t, s.Loading())
	})

	t.Run("NormalizesPageAndPageSize", func(t *testing.T) {
		s, gw := setupStore(t)
		gw.EXPECT().List(gomock.Any(), models.ListQuery{Page: 1, PageSize: DefaultPageSize}).
			Return(testPage(), nil)

		err := s.FetchAll(context.Background(), models.ListQuery{Page: 0, PageSize: 0})

		require.NoError(t, err)
	})

	t.Run("ClearsPreviousError", func(t *testing.T) {
		s, gw := setupStore(t)
		gw.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
		gw.EXPECT().List(gomock.Any(), gomock.Any()).Return(testPage(), nil)

		_ = s.FetchAll(context.Background(), models.ListQuery{})
		require.NotEmpty(t, s.Err())

		require.NoError(t, s.FetchAll(context.Background(), models.ListQuery{}))
		assert.Empty(t, s.Err())
	})
}

func TestStore_FetchAll_DiscardsStaleResponse(t *testing.T) {
	s, gw := setupStore(t)

	staleEntered := make(chan struct{})
	staleRelease := make(chan struct{})

	// The first fetch blocks inside the gateway until the second, more
	// recent fetch has completed.
	gw.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, q models.ListQuery) (*models.JobPage, error) {
			close(staleEntered)
			<-staleRelease
			return testPage(testJob("stale", models.JobStatusDone)), nil
		})
	gw.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(testPage(testJob("fresh", models.JobStatusDone)), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.FetchAll(context.Background(), models.ListQuery{})
	}()

	<-staleEntered
	require.NoError(t, s.FetchAll(context.Background(), models.ListQuery{}))

	close(staleRelease)
	wg.Wait()

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "fresh", jobs[0].ID, "stale response must not overwrite a newer one")
	assert.False(t, s.Loading())
}

func TestStore_AnalyzeURL(t *testing.T) {
	t.Run("EmptyURLMakesNoGatewayCall", func(t *testing.T) {
		s, _ := setupStore(t)

		job, err := s.AnalyzeURL(context.Background(), "   ")

		require.ErrorIs(t, err, ErrEmptyURL)
		assert.Nil(t, job)
		assert.Empty(t, s.Jobs())
		assert.Equal(t, "url is required", s.Err())
	})

	t.Run("InsertsJobAtFrontAfterCreateGetStart", func(t *testing.T) {
		s, gw := setupStore(t)
		gw.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(testPage(testJob("old", models.JobStatusDone)), nil)
		require.NoError(t, s.FetchAll(context.Background(), models.ListQuery{}))

		created := testJob("new", models.JobStatusQueued)
		gomock.InOrder(
			gw.EXPECT().Create(gomock.Any(), "https://example.com").Return("new", nil),
			gw.EXPECT().Get(gomock.Any(), "new").Return(&created, nil),
			gw.EXPECT().StartAnalysis(gomock.Any(), "new").Return(nil),
		)

		job, err := s.AnalyzeURL(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Equal(t, models.JobStatusRunning, job.Status, "optimistic flip until next refresh")

		jobs := s.Jobs()
		require.Len(t, jobs, 2)
		assert.Equal(t, "new", jobs[0].ID)
		assert.Equal(t, "old", jobs[1].ID)
	})

	t.Run("GetFailureAfterCreateInsertsNothing", func(t *testing.T) {
		s, gw := setupStore(t)
		gomock.InOrder(
			gw.EXPECT().Create(gomock.Any(), gomock.Any()).Return("new", nil),
			gw.EXPECT().Get(gomock.Any(), "new").Return(nil, errors.New("fetch failed")),
		)

		job, err := s.AnalyzeURL(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Nil(t, job)
		assert.Empty(t, s.Jobs(), "no partial entry for a job created remotely but never fetched")
		assert.Equal(t, "fetch failed", s.Err())
	})

	t.Run("StartFailureInsertsNothing", func(t *testing.T) {
		s, gw := setupStore(t)
		created := testJob("new", models.JobStatusQueued)
		gomock.InOrder(
			gw.EXPECT().Create(gomock.Any(), gomock.Any()).Return("new", nil),
			gw.EXPECT().Get(gomock.Any(), "new").Return(&created, nil),
			gw.EXPECT().StartAnalysis(gomock.Any(), "new").Return(errors.New("start failed")),
		)

		_, err := s.AnalyzeURL(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Empty(t, s.Jobs())
	})
}

func TestStore_StartStopAnalysis(t *testing.T) {
	preload := func(t *testing.T, s *Store, gw *mocks.MockJobGateway, job models.Job) {
		gw.EXPECT().List(gomock.Any(), gomock.Any()).Return(testPage(job), nil)
		require.NoError(t, s.FetchAll(context.Background(), models.ListQuery{}))
	}

	t.Run("StartFlipsStatusToRunning", func(t *testing.T) {
		s, gw := setupStore(t)
		preload(t, s, gw, testJob("1", models.JobStatusError))
		gw.EXPECT().StartAnalysis(gomock.Any(), "1").Return(nil)

		require.NoError(t, s.StartAnalysis(context.Background(), "1"))
		assert.Equal(t, models.JobStatusRunning, s.Jobs()[0].Status)
	})

	t.Run("StopFlipsStatusToStopped", func(t *testing.T) {
		s, gw := setupStore(t)
		preload(t, s, gw, testJob("1", models.JobStatusRunning))
		gw.EXPECT().StopAnalysis(gomock.Any(), "1").Return(nil)

		require.NoError(t, s.StopAnalysis(context.Background(), "1"))
		assert.Equal(t, models.JobStatusStopped, s.Jobs()[0].Status)
	})

	t.Run("RemoteFailureLeavesStatusUntouched", func(t *testing.T) {
		s, gw := setupStore(t)
		preload(t, s, gw, testJob("1", models.JobStatusQueued))
		gw.EXPECT().StartAnalysis(gomock.Any(), "1").Return(errors.New("remote error"))

		err := s.StartAnalysis(context.Background(), "1")

		require.Error(t, err)
		assert.Equal(t, models.JobStatusQueued, s.Jobs()[0].Status)
		assert.Equal(t, "remote error", s.Err())
	})
}

func TestStore_DeleteOne(t *testing.T) {
	tracker := selection.NewTracker()
	s, gw := setupStore(t, WithRemovalHook(tracker.Drop))

	gw.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(testPage(testJob("1", models.JobStatusDone), testJob("2", models.JobStatusDone)), nil)
	require.NoError(t, s.FetchAll(context.Background(), models.ListQuery{}))

	tracker.ToggleOne("1")
	tracker.ToggleOne("2")

	gw.EXPECT().Delete(gomock.Any(), "1").Return(nil)
	require.NoError(t, s.DeleteOne(context.Background(), "1"))

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "2", jobs[0].ID)
	assert.Equal(t, []string{"2"}, tracker.Selected(), "deleted id leaves the selection in the same step")
}

func TestStore_DeleteMany_PartialFailure(t *testing.T) {
	tracker := selection.NewTracker()
	s, gw := setupStore(t, WithRemovalHook(tracker.Drop))

	gw.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(testPage(
			testJob("1", models.JobStatusDone),
			testJob("2", models.JobStatusDone),
			testJob("3", models.JobStatusDone),
		), nil)
	require.NoError(t, s.FetchAll(context.Background(), models.ListQuery{}))

	tracker.ToggleAll([]string{"1", "2", "3"})

	gw.EXPECT().Delete(gomock.Any(), "1").Return(nil)
	gw.EXPECT().Delete(gomock.Any(), "2").Return(errors.New("delete rejected"))
	gw.EXPECT().Delete(gomock.Any(), "3").Return(nil)

	result, err := s.DeleteMany(context.Background(), []string{"1", "2", "3"})

	require.Error(t, err, "aggregate error surfaces the partial failure")
	assert.ElementsMatch(t, []string{"1", "3"}, result.Deleted)
	require.Contains(t, result.Failed, "2")

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "2", jobs[0].ID, "failed id stays in the collection")
	assert.Equal(t, []string{"2"}, tracker.Selected(), "failed id stays selected, successes are dropped")
	assert.NotEmpty(t, s.Err())
}

func TestStore_DeleteMany_AllSucceed(t *testing.T) {
	s, gw := setupStore(t)

	gw.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(testPage(testJob("1", models.JobStatusDone), testJob("2", models.JobStatusDone)), nil)
	require.NoError(t, s.FetchAll(context.Background(), models.ListQuery{}))

	gw.EXPECT().Delete(gomock.Any(), "1").Return(nil)
	gw.EXPECT().Delete(gomock.Any(), "2").Return(nil)

	result, err := s.DeleteMany(context.Background(), []string{"1", "2"})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, result.Deleted)
	assert.Empty(t, result.Failed)
	assert.Empty(t, s.Jobs())
}

func TestStore_Refresh_ReusesActiveQuery(t *testing.T) {
	s, gw := setupStore(t)

	status := models.JobStatusRunning
	q := models.ListQuery{
		Page:     2,
		PageSize: 5,
		Filters:  models.JobFilters{Status: &status},
	}

	gw.EXPECT().List(gomock.Any(), q).Return(testPage(), nil).Times(2)

	require.NoError(t, s.FetchAll(context.Background(), q))
	require.NoError(t, s.Refresh(context.Background()))
}

func TestStore_HasActiveJobs(t *testing.T) {
	testCases := []struct {
		name     string
		statuses []models.JobStatus
		active   bool
	}{
		{"AllTerminal", []models.JobStatus{models.JobStatusDone, models.JobStatusStopped, models.JobStatusError}, false},
		{"OneRunning", []models.JobStatus{models.JobStatusDone, models.JobStatusRunning}, true},
		{"OneQueued", []models.JobStatus{models.JobStatusQueued}, true},
		{"Empty", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, gw := setupStore(t)

			jobs := make([]models.Job, len(tc.statuses))
			for i, status := range tc.statuses {
				jobs[i] = testJob(string(rune('a'+i)), status)
			}
			gw.EXPECT().List(gomock.Any(), gomock.Any()).Return(testPage(jobs...), nil)
			require.NoError(t, s.FetchAll(context.Background(), models.ListQuery{}))

			assert.Equal(t, tc.active, s.HasActiveJobs())
		})
	}
}

func TestStore_LoadResults(t *testing.T) {
	s, gw := setupStore(t)

	detail := &models.AnalysisDetail{
		Job: testJob("1", models.JobStatusDone),
		BrokenLinks: []models.BrokenLink{
			{ID: "bl-1", URL: "https://example.com/missing", StatusCode: 404},
		},
	}
	gw.EXPECT().Results(gomock.Any(), "1").Return(detail, nil)

	got, err := s.LoadResults(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, detail, got)
}

func TestNormalizeURL(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"PlainDomain", "example.com", "https://example.com", false},
		{"KeepsHTTP", "http://example.com", "http://example.com", false},
		{"TrimsWhitespace", "  https://example.com  ", "https://example.com", false},
		{"Empty", "", "", true},
		{"WhitespaceOnly", "   ", "", true},
		{"UnsupportedScheme", "ftp://example.com", "", true},
		{"MissingHost", "https://", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeURL(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
