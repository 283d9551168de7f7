package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/infrastructure/scheduler"
)

type rolloverCall struct{ from, to time.Time }

type stubStockRepo struct {
	calls []rolloverCall
	n     int
	err   error
}

func (s *stubStockRepo) GetStockSnapshot(context.Context, time.Time) ([]entity.StockSnapshot, error) {
	return nil, nil
}
func (s *stubStockRepo) UpsertSnapshot(context.Context, entity.StockSnapshot) error { return nil }
func (s *stubStockRepo) RecordStockMovement(context.Context, *entity.StockMovement) error {
	return nil
}
func (s *stubStockRepo) GetConsumptionHistory(context.Context, string, time.Time) ([]entity.DailyConsumption, error) {
	return nil, nil
}
func (s *stubStockRepo) RollOver(_ context.Context, from, to time.Time) (int, error) {
	s.calls = append(s.calls, rolloverCall{from, to})
	return s.n, s.err
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 0, 5, 0, 0, time.FixedZone("COT", -5*3600))
}

// ──── Tests RolloverJob ────

func TestRunOnce_CopiaAyerAHoyEnUTC(t *testing.T) {
	repo := &stubStockRepo{n: 7}
	job := scheduler.NewRolloverJob(repo, zerolog.Nop(), fixedClock)

	n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	require.Len(t, repo.calls, 1)
	// 00:05 en UTC-5 son las 05:05 UTC del mismo día.
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), repo.calls[0].from)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), repo.calls[0].to)
}

func TestRunOnce_PropagaError(t *testing.T) {
	repo := &stubStockRepo{err: errors.New("db caída")}
	job := scheduler.NewRolloverJob(repo, zerolog.Nop(), fixedClock)

	_, err := job.RunOnce(context.Background())
	assert.ErrorContains(t, err, "db caída")
}

func TestStart_ExpresionInvalida(t *testing.T) {
	job := scheduler.NewRolloverJob(&stubStockRepo{}, zerolog.Nop(), nil)
	assert.Error(t, job.Start("no es cron"))
}

func TestStart_Stop(t *testing.T) {
	job := scheduler.NewRolloverJob(&stubStockRepo{}, zerolog.Nop(), nil)
	require.NoError(t, job.Start("5 0 * * *"))
	job.Stop()
}

// ──── Tests barrido de sesiones ────

type stubSweeper struct {
	now     time.Time
	maxIdle time.Duration
	n       int
}

func (s *stubSweeper) SweepIdle(now time.Time, maxIdle time.Duration) int {
	s.now, s.maxIdle = now, maxIdle
	return s.n
}

func TestSweepSessions_UsaRelojDelJob(t *testing.T) {
	job := scheduler.NewRolloverJob(&stubStockRepo{}, zerolog.Nop(), fixedClock)
	sw := &stubSweeper{n: 3}

	assert.Equal(t, 3, job.SweepSessions(sw, 2*time.Hour))
	assert.Equal(t, fixedClock(), sw.now)
	assert.Equal(t, 2*time.Hour, sw.maxIdle)
}

func TestScheduleSessionSweep_Validaciones(t *testing.T) {
	job := scheduler.NewRolloverJob(&stubStockRepo{}, zerolog.Nop(), nil)
	assert.Error(t, job.ScheduleSessionSweep("no es cron", &stubSweeper{}, time.Hour))
	assert.Error(t, job.ScheduleSessionSweep("*/15 * * * *", &stubSweeper{}, 0))

	require.NoError(t, job.ScheduleSessionSweep("*/15 * * * *", &stubSweeper{}, time.Hour))
	require.NoError(t, job.Start("5 0 * * *"))
	job.Stop()
}
