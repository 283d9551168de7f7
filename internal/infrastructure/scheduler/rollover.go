// Package scheduler ejecuta tareas periódicas con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restock-api/internal/domain/repository"
)

const rolloverTimeout = 2 * time.Minute

// RolloverJob copia cada noche el stock restante del día anterior como punto de partida del día nuevo.
type RolloverJob struct {
	stockRepo repository.StockRepository
	cron      *cron.Cron
	log       zerolog.Logger
	now       func() time.Time
}

// NewRolloverJob construye el job; now permite fijar el reloj en pruebas (nil = time.Now).
func NewRolloverJob(stockRepo repository.StockRepository, log zerolog.Logger, now func() time.Time) *RolloverJob {
	if now == nil {
		now = time.Now
	}
	return &RolloverJob{
		stockRepo: stockRepo,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		log:       log,
		now:       now,
	}
}

// Start registra el job con la expresión cron (5 campos) y arranca el planificador.
func (j *RolloverJob) Start(spec string) error {
	if _, err := j.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), rolloverTimeout)
		defer cancel()
		if _, err := j.RunOnce(ctx); err != nil {
			j.log.Error().Err(err).Msg("rollover de stock fallido")
		}
	}); err != nil {
		return fmt.Errorf("scheduler: programar rollover %q: %w", spec, err)
	}
	j.cron.Start()
	j.log.Info().Str("cron", spec).Msg("rollover de stock programado")
	return nil
}

// Stop detiene el planificador y espera a que termine el job en curso.
func (j *RolloverJob) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce copia el snapshot de ayer a hoy (UTC). Los productos que ya tienen snapshot hoy no se tocan.
func (j *RolloverJob) RunOnce(ctx context.Context) (int, error) {
	now := j.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	n, err := j.stockRepo.RollOver(ctx, yesterday, today)
	if err != nil {
		return 0, fmt.Errorf("rollover %s → %s: %w", yesterday.Format(time.DateOnly), today.Format(time.DateOnly), err)
	}
	j.log.Info().
		Str("from", yesterday.Format(time.DateOnly)).
		Str("to", today.Format(time.DateOnly)).
		Int("products", n).
		Msg("rollover de stock completado")
	return n, nil
}
