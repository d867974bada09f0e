package refresh

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"

	"rtsd/internal/controllers"
	"rtsd/internal/providers"
	"rtsd/internal/refresh/interfaces"
	"rtsd/internal/services"
	"rtsd/internal/structures"
)

// Scheduler re-polls the upstream sources on a fixed interval and warms
// the response cache with the freshly serialized snapshot, so on-demand
// requests are served from memory between cycles. A failed refresh leaves
// the previous cached snapshot in place until its TTL runs out.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.StatusServiceInterface
	cache       providers.CacheProviderInterface
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
	lastRefresh atomic.Time
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Refresh.Interval), func() {
		if err := s.Refresh(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Scheduled refresh failed: %s", err)
		}
	})
	s.cron.Start()

	// Warm the cache right away instead of waiting a full interval.
	go func() {
		if err := s.Refresh(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Initial refresh failed: %s", err)
		}
	}()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Refresh() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	snap, err := s.service.BuildSnapshot(context.Background())
	if err != nil {
		return err
	}
	gson, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.cache.Set(controllers.CacheKeyStatus, gson)

	now := time.Now()
	s.lastRefresh.Store(now)
	s.metrics.SetLastRefresh(now)
	s.logger.Infof(providers.TypeApp, "Snapshot cache refreshed")
	return nil
}

func (s *Scheduler) LastRefresh() time.Time {
	return s.lastRefresh.Load()
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.StatusServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}
