package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"brokerage/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVerifier struct{ mock.Mock }

func (m *MockVerifier) Handle(ctx context.Context, q queries.VerifyHistoryQuery) (queries.VerifyHistoryQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.VerifyHistoryQueryResponse), args.Error(1)
}

type MockGauge struct{ mock.Mock }

func (m *MockGauge) SetHistoryDrifts(n int) { m.Called(n) }

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestHistoryConsistencyJob_ReportsDrifts(t *testing.T) {
	drifts := []queries.HistoryDrift{{RequestID: "r-1", Reason: "commercial history replays to Pending, stored Accepted"}}
	verifier := new(MockVerifier)
	verifier.On("Handle", mock.Anything, mock.Anything).
		Return(queries.VerifyHistoryQueryResponse{Checked: 3, Drifts: drifts}, nil)
	gauge := new(MockGauge)
	gauge.On("SetHistoryDrifts", 1).Once()

	job := NewHistoryConsistencyJob(verifier, gauge, "", discard())

	assert.Equal(t, drifts, job.Run(context.Background()))
	gauge.AssertExpectations(t)
}

func TestHistoryConsistencyJob_FailureLeavesGaugeUntouched(t *testing.T) {
	verifier := new(MockVerifier)
	verifier.On("Handle", mock.Anything, mock.Anything).
		Return(queries.VerifyHistoryQueryResponse{}, errors.New("store down"))
	gauge := new(MockGauge)

	job := NewHistoryConsistencyJob(verifier, gauge, "", discard())

	assert.Nil(t, job.Run(context.Background()))
	gauge.AssertNotCalled(t, "SetHistoryDrifts", mock.Anything)
}

func TestHistoryConsistencyJob_DefaultSchedule(t *testing.T) {
	job := NewHistoryConsistencyJob(new(MockVerifier), nil, "", discard())
	assert.Equal(t, DefaultHistorySchedule, job.schedule)
}

func TestHistoryConsistencyJob_InvalidSchedule(t *testing.T) {
	job := NewHistoryConsistencyJob(new(MockVerifier), nil, "every tuesday", discard())
	require.Error(t, job.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	jm := NewJobManager(new(MockVerifier), nil, "0 0 3 * * *", discard())
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
