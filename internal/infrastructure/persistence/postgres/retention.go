package postgres

import (
	"context"
	"time"

	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// ActivityRetention remove periodicamente atividades mais antigas que a janela
// de retenção (o equivalente ao índice TTL de um document store)
type ActivityRetention struct {
	activities repositories.ActivityRepository
	retention  time.Duration
	interval   time.Duration
	logger     ports.Logger
	now        func() time.Time
}

// NewActivityRetention cria o purger; now pode ser nil (usa time.Now)
func NewActivityRetention(
	activities repositories.ActivityRepository,
	retention, interval time.Duration,
	logger ports.Logger,
	now func() time.Time,
) *ActivityRetention {
	if now == nil {
		now = time.Now
	}
	return &ActivityRetention{
		activities: activities,
		retention:  retention,
		interval:   interval,
		logger:     logger,
		now:        now,
	}
}

// PurgeExpired remove as atividades expiradas e retorna quantas foram removidas
func (p *ActivityRetention) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.retention)
	removed, err := p.activities.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		p.logger.Info("expired activities purged", "removed", removed, "cutoff", cutoff)
	}
	return removed, nil
}

// Run executa PurgeExpired a cada intervalo até ctx ser cancelado
func (p *ActivityRetention) Run(ctx context.Context) {
	if p.retention <= 0 || p.interval <= 0 {
		p.logger.Warn("activity retention disabled",
			"retention", p.retention,
			"interval", p.interval,
		)
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("failed to purge expired activities", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
