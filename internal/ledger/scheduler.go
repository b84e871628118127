package ledger

import (
	"github.com/opius2017/Finmfb-sub006/internal/types"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RolloverScheduler runs the rollover of the just-closed month on a cron
// schedule, typically at the start of every month.
type RolloverScheduler struct {
	cron   *cron.Cron
	ledger *Ledger
}

// NewRolloverScheduler returns a scheduler driving the ledger's rollover with
// the cron expression, e.g. "@monthly". The rollover is idempotent, so an
// aggressive schedule only costs a no-op per run.
func NewRolloverScheduler(l *Ledger, schedule string) (*RolloverScheduler, error) {
	s := &RolloverScheduler{
		cron:   cron.New(),
		ledger: l,
	}

	_, err := s.cron.AddFunc(schedule, s.run)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *RolloverScheduler) run() {
	closing := types.MonthOf(s.ledger.now()).Previous()

	result, err := s.ledger.ProcessMonthlyRollover(closing)
	if err != nil {
		log.Error().Err(err).Str("month", closing.String()).Msg("rollover failed")
		return
	}

	log.Info().
		Str("month", result.ClosedMonth).
		Str("leftover", result.Leftover.String()).
		Str("nextMaximum", result.NextMaximum.String()).
		Int("expiredApplications", result.ExpiredApplications).
		Bool("alreadyProcessed", result.AlreadyProcessed).
		Msg("rollover processed")
}

// Start begins running the schedule in its own goroutine.
func (s *RolloverScheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running rollover to finish.
func (s *RolloverScheduler) Stop() {
	<-s.cron.Stop().Done()
}
