package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule каждый час в начале часа
const DefaultSchedule = "0 * * * *"

// ErrInvalidSchedule возвращается при некорректном cron-выражении
var ErrInvalidSchedule = errors.New("reconciler: invalid schedule")

// Recomputer полный пересчет счетчиков всех компаний и категорий
type Recomputer interface {
	RecomputeAll(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Reconciler периодически пересчитывает денормализованные счетчики
// Исправляет расхождения, возникшие мимо триггеров (ручные правки БД, сбои)
type Reconciler struct {
	cron       *cron.Cron
	recomputer Recomputer
	timeout    time.Duration
	logger     Logger
	running    atomic.Bool
}

// New создает планировщик с заданным cron-расписанием (5 полей)
// timeout ограничивает один прогон; 0 - без ограничения
func New(recomputer Recomputer, schedule string, timeout time.Duration, logger Logger) (*Reconciler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	r := &Reconciler{
		cron:       cron.New(),
		recomputer: recomputer,
		timeout:    timeout,
		logger:     logger,
	}

	if _, err := r.cron.AddFunc(schedule, r.tick); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	return r, nil
}

// Start запускает планировщик в фоне
func (r *Reconciler) Start() {
	r.cron.Start()
	r.logger.Info("Reconciler: started")
}

// Stop останавливает планировщик и ждет завершения текущего прогона
func (r *Reconciler) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		r.logger.Info("Reconciler: stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce выполняет один полный пересчет
// Если предыдущий прогон еще идет, новый пропускается
func (r *Reconciler) RunOnce(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		r.logger.Warn("Reconciler: previous run is still in progress, skipping")
		return nil
	}
	defer r.running.Store(false)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := r.recomputer.RecomputeAll(ctx); err != nil {
		r.logger.Error("Reconciler: recompute failed after %s: %v", time.Since(start), err)
		return err
	}

	r.logger.Info("Reconciler: recompute finished in %s", time.Since(start))
	return nil
}

func (r *Reconciler) tick() {
	_ = r.RunOnce(context.Background())
}
