package scheduler

import (
	"fmt"
	"time"
)

// SessionSweeper descarta las sesiones de edición sin uso.
type SessionSweeper interface {
	SweepIdle(now time.Time, maxIdle time.Duration) int
}

// ScheduleSessionSweep agrega al mismo planificador el barrido de sesiones inactivas por
// más de maxIdle. Puede llamarse antes o después de Start.
func (j *RolloverJob) ScheduleSessionSweep(spec string, sweeper SessionSweeper, maxIdle time.Duration) error {
	if maxIdle <= 0 {
		return fmt.Errorf("scheduler: inactividad de sesión %s inválida", maxIdle)
	}
	if _, err := j.cron.AddFunc(spec, func() { j.SweepSessions(sweeper, maxIdle) }); err != nil {
		return fmt.Errorf("scheduler: programar barrido de sesiones %q: %w", spec, err)
	}
	j.log.Info().Str("cron", spec).Dur("max_idle", maxIdle).Msg("barrido de sesiones programado")
	return nil
}

// SweepSessions ejecuta un barrido con el reloj del job.
func (j *RolloverJob) SweepSessions(sweeper SessionSweeper, maxIdle time.Duration) int {
	n := sweeper.SweepIdle(j.now(), maxIdle)
	if n > 0 {
		j.log.Info().Int("sessions", n).Msg("sesiones inactivas descartadas")
	}
	return n
}
