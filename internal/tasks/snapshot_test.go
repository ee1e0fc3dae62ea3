package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/services"
)

type fakeRecorder struct {
	sessions []ledger.Session
	err      error
}

func (f *fakeRecorder) RecordSnapshot(ctx context.Context, session ledger.Session) (*services.Snapshot, error) {
	f.sessions = append(f.sessions, session)
	if f.err != nil {
		return nil, f.err
	}
	return &services.Snapshot{Metrics: map[string]float64{models.MetricTotalOrders: 3}}, nil
}

func snapshotConfig(token string, enabled bool) *config.Config {
	return &config.Config{
		Ledger:   config.LedgerConfig{ServiceToken: token},
		Snapshot: config.SnapshotConfig{Enabled: enabled, CronSpec: "0 0 * * * *"},
	}
}

func TestSnapshotTaskUsesServiceSession(t *testing.T) {
	recorder := &fakeRecorder{}
	task := NewSnapshotTask(snapshotConfig("svc-token", true), recorder)

	snapshot := task.Run(context.Background())

	require.NotNil(t, snapshot)
	assert.Equal(t, float64(3), snapshot.Metrics[models.MetricTotalOrders])
	require.Len(t, recorder.sessions, 1)
	assert.Equal(t, "svc-token", recorder.sessions[0].Token)
	assert.True(t, recorder.sessions[0].IsAdmin())
}

func TestSnapshotTaskDisabledWithoutToken(t *testing.T) {
	assert.False(t, NewSnapshotTask(snapshotConfig("", true), &fakeRecorder{}).Enabled())
	assert.False(t, NewSnapshotTask(snapshotConfig("svc-token", false), &fakeRecorder{}).Enabled())
	assert.True(t, NewSnapshotTask(snapshotConfig("svc-token", true), &fakeRecorder{}).Enabled())

	recorder := &fakeRecorder{}
	task := NewSnapshotTask(snapshotConfig("", true), recorder)
	require.NoError(t, task.Start())
	task.Stop(context.Background())
	assert.Empty(t, recorder.sessions)
}

func TestSnapshotTaskFailureIsSwallowed(t *testing.T) {
	recorder := &fakeRecorder{err: ledger.ErrUnavailable}
	task := NewSnapshotTask(snapshotConfig("svc-token", true), recorder)
	assert.Nil(t, task.Run(context.Background()))

	recorder.err = errors.New("boom")
	assert.Nil(t, task.Run(context.Background()))
	assert.Len(t, recorder.sessions, 2)
}

func TestSnapshotTaskRejectsBadSchedule(t *testing.T) {
	cfg := snapshotConfig("svc-token", true)
	cfg.Snapshot.CronSpec = "not a schedule"

	task := NewSnapshotTask(cfg, &fakeRecorder{})
	assert.Error(t, task.Start())
}
