package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/JonMunkholm/brfss/internal/codebook"
	"github.com/JonMunkholm/brfss/internal/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const cleanAggregatedCSV = `year,locationabbr,locationdesc,topic,question,data_value
2023,CA,California,Obesity,Adults who have obesity,25.5
2023,TX,Texas,Obesity,Adults who have obesity,31.0
2023,NY,New York,Obesity,Adults who have obesity,27.1
2023,FL,Florida,Obesity,Adults who have obesity,28.4
2023,GA,Georgia,Obesity,Adults who have obesity,33.9
`

func newTestService(opts ServiceOptions) *Service {
	engine := validation.NewEngine(codebook.Default(), validation.Options{})
	return NewService(NewMemoryStore(), engine, opts)
}

func TestService_SubmitPasses(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(ServiceOptions{})

	res, err := svc.Submit(ctx, "CA_submission_2023.csv", strings.NewReader(cleanAggregatedCSV))
	require.NoError(t, err)

	assert.Len(t, res.SubmissionID, 8)
	assert.Equal(t, validation.StatusPassed, res.Status)
	assert.Equal(t, 5, res.RowCount)
	assert.Equal(t, 5, res.ValidRows)
	assert.Empty(t, res.Errors)

	stored, err := svc.Get(ctx, res.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, res.Info, stored.Info)
}

func TestService_SubmitFewRows(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(cleanAggregatedCSV), "\n")
	csv := strings.Join(lines[:3], "\n") + "\n"

	res, err := newTestService(ServiceOptions{}).Submit(context.Background(), "few.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, validation.StatusFailed, res.Status)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, validation.Finding{
		Row:      0,
		Field:    "file",
		Message:  "File contains only 2 rows. BRFSS submissions typically contain more data.",
		Severity: validation.SeverityError,
	}, res.Errors[0])
	// Validation still ran.
	assert.Contains(t, res.Info, "Detected format: Aggregated prevalence data")
	assert.Equal(t, 2, res.ValidRows)
}

func TestService_SubmitFileLevelFailures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		body     string
		want     string
	}{
		{"zero bytes", "empty.csv", "", "File is empty. Please upload a file with data rows."},
		{"header only", "header.csv", "year,topic\n", "File is empty. Please upload a file with data rows."},
		{"empty json array", "empty.json", "[]", "File is empty. Please upload a file with data rows."},
		{"ragged csv", "bad.csv", "year,topic\n2023,Obesity,extra\n", "Failed to parse file: invalid csv: expected 2 fields in line 2, saw 3"},
		{"broken json", "bad.json", `[{"year": `, "Failed to parse file: invalid json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(ServiceOptions{})
			res, err := svc.Submit(context.Background(), tt.filename, strings.NewReader(tt.body))
			require.NoError(t, err)

			assert.Equal(t, validation.StatusFailed, res.Status)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, 0, res.Errors[0].Row)
			assert.Equal(t, "file", res.Errors[0].Field)
			assert.True(t, strings.HasPrefix(res.Errors[0].Message, tt.want), "message %q", res.Errors[0].Message)

			_, err = svc.Get(context.Background(), res.SubmissionID)
			assert.NoError(t, err, "failed reports are stored too")
		})
	}
}

func TestService_SubmitRejected(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		body     string
		want     error
	}{
		{"no filename", "", "x", ErrNoFileSelected},
		{"excel", "TX_submission_2023.xlsx", "x", ErrExcelFile},
		{"text", "notes.txt", "x", ErrUnsupportedFormat},
		{"too large", "big.csv", "year,topic\n" + strings.Repeat("2023,Obesity\n", 20), ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(ServiceOptions{MaxFileSize: 64})
			res, err := svc.Submit(context.Background(), tt.filename, strings.NewReader(tt.body))
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)

			list, err := svc.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list, "rejected uploads are not stored")
		})
	}
}

func TestService_SubmitBusy(t *testing.T) {
	svc := newTestService(ServiceOptions{MaxConcurrent: 1, MaxWait: 20 * time.Millisecond})
	require.True(t, svc.limiter.TryAcquire())
	defer svc.limiter.Release()

	_, err := svc.Submit(context.Background(), "a.csv", strings.NewReader(cleanAggregatedCSV))
	assert.True(t, errors.Is(err, ErrTooManyUploads), "got %v", err)
	assert.Equal(t, 1, svc.UploadLimiterStatus().Active)
}

func TestService_DashboardAndClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(ServiceOptions{})

	_, err := svc.Submit(ctx, "CA_submission_2023.csv", strings.NewReader(cleanAggregatedCSV))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "TX_submission_2023.csv", strings.NewReader("year,topic\n"))
	require.NoError(t, err)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalSubmissions)
	assert.Equal(t, 1, sum.Passed)
	assert.Equal(t, 50.0, sum.PassRate)
	assert.Equal(t, map[string]int{"file": 1}, sum.ErrorTypes)

	states, err := svc.StateStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, validation.StatusPassed, states["CA"].Status)
	assert.Equal(t, validation.StatusFailed, states["TX"].Status)

	n, err := svc.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sum, err = svc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.TotalSubmissions)
}

func TestService_RawSubmissionAttributedByData(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(ServiceOptions{})

	csv := "_STATE,SEQNO,GENHLTH\n6,1,2\n6,2,3\n6,3,1\n6,4,5\n6,5,4\n"
	res, err := svc.Submit(ctx, "GA_submission_2023.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"California"}, res.DataSummary.StateNames)

	states, err := svc.StateStatus(ctx)
	require.NoError(t, err)
	assert.Contains(t, states, "CA")
	assert.NotContains(t, states, "GA")
}

func TestService_Prune(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(ServiceOptions{})

	old := report("old00001", "a.csv", time.Now().Add(-72*time.Hour).Truncate(time.Second), validation.StatusPassed)
	require.NoError(t, svc.store.Save(ctx, old))
	_, err := svc.Submit(ctx, "b.csv", strings.NewReader(cleanAggregatedCSV))
	require.NoError(t, err)

	n, err := svc.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_RetentionSchedulerStops(t *testing.T) {
	svc := newTestService(ServiceOptions{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.StartRetentionScheduler(ctx, RetentionConfig{MaxAge: time.Hour, CheckInterval: 10 * time.Millisecond})
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
