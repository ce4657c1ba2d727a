package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper drops records that have outlived their TTL.
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SweepJob periodically purges expired records from stores that cannot
// expire them natively. Redis-backed stores do not need one.
type SweepJob struct {
	targets  map[string]Sweeper
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSweepJob(interval time.Duration) *SweepJob {
	return &SweepJob{
		targets:  make(map[string]Sweeper),
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Register must be called before Start.
func (j *SweepJob) Register(name string, s Sweeper) {
	j.targets[name] = s
}

func (j *SweepJob) Start() {
	j.wg.Add(1)
	go j.run()
	log.Info().Dur("interval", j.interval).Int("targets", len(j.targets)).Msg("sweep job started")
}

// Stop waits for an in-progress sweep to finish.
func (j *SweepJob) Stop() {
	j.stopOnce.Do(func() {
		close(j.done)
		j.wg.Wait()
		log.Info().Msg("sweep job stopped")
	})
}

func (j *SweepJob) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *SweepJob) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for name, s := range j.targets {
		count, err := s.DeleteExpired(ctx)
		if err != nil {
			log.Error().Err(err).Msgf("failed to sweep %s", name)
		} else if count > 0 {
			log.Info().Int64("count", count).Msgf("swept expired %s", name)
		}
	}
}
