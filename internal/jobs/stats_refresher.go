// Package jobs holds the background work the server runs on a schedule.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"gorent/internal/backend"
	"gorent/internal/config"
	"gorent/internal/utils"
	"gorent/pkg/cache"
	"gorent/pkg/logger"
	"gorent/pkg/websocket"
)

// StatsRefresher keeps the admin dashboard stats warm in Redis so console
// loads never wait on the backend. Each fetch carries a sequence number;
// only the newest completed fetch may write, so a slow earlier response can
// never overwrite a fresher one.
type StatsRefresher struct {
	client *backend.Client
	cache  *cache.RedisCache
	cfg    *config.BackendConfig
	ws     *websocket.Handler
	log    *logger.Logger

	cron *cron.Cron

	mu      sync.Mutex
	seq     uint64
	written uint64
}

func NewStatsRefresher(client *backend.Client, c *cache.RedisCache, cfg *config.BackendConfig, ws *websocket.Handler, log *logger.Logger) *StatsRefresher {
	return &StatsRefresher{
		client: client,
		cache:  c,
		cfg:    cfg,
		ws:     ws,
		log:    log,
		cron:   cron.New(),
	}
}

// Start schedules the refresh and primes the cache immediately. Without a
// service token or a cache there is nothing to do and Start is a no-op.
func (r *StatsRefresher) Start() error {
	if r.cfg.ServiceToken == "" || r.cache == nil {
		r.log.Info("Stats refresher disabled")
		return nil
	}

	if _, err := r.cron.AddFunc(r.cfg.StatsRefreshSpec, r.refresh); err != nil {
		return err
	}

	r.cron.Start()
	go r.refresh()

	r.log.WithField("spec", r.cfg.StatsRefreshSpec).Info("Stats refresher started")
	return nil
}

func (r *StatsRefresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *StatsRefresher) refresh() {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout)
	defer cancel()
	ctx = backend.WithToken(ctx, r.cfg.ServiceToken)

	stats, err := r.client.AdminStats(ctx)
	if err != nil {
		r.log.WithError(err).Warn("Stats refresh failed")
		return
	}

	r.mu.Lock()
	if seq < r.written {
		r.mu.Unlock()
		return
	}
	r.written = seq
	r.mu.Unlock()

	cacheCtx, cacheCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cacheCancel()
	if err := r.cache.Set(cacheCtx, utils.CacheStatsKey, stats, r.cfg.StatsCacheTTL); err != nil {
		r.log.WithError(err).Warn("Stats cache write failed")
		return
	}

	if r.ws != nil {
		r.ws.NotifyAdmins("stats_refreshed", map[string]interface{}{
			"total_users":     stats.TotalUsers,
			"total_cars":      stats.TotalCars,
			"active_bookings": stats.ActiveBookings,
			"monthly_revenue": stats.MonthlyRevenue,
		})
	}
}
