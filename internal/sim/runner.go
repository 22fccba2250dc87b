// Package sim drives the engines on a fixed logical tick. Time only
// moves when the runner ticks, and within one tick the time-based work
// (charge decay, cooldown expiry, effect expiry, flask recovery) always
// runs before that tick's queued triggers.
package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/exilecraft/internal/config"
	"github.com/udisondev/exilecraft/internal/game/charge"
	"github.com/udisondev/exilecraft/internal/game/craft"
	"github.com/udisondev/exilecraft/internal/game/event"
	"github.com/udisondev/exilecraft/internal/game/flask"
	"github.com/udisondev/exilecraft/internal/model"
)

// shardThreshold is the entity count below which sharded ticking is not
// worth the goroutine overhead.
const shardThreshold = 64

// Runner owns the engines and advances them in lockstep.
//
// Triggers (kills, crits, flask presses, crafting) are queued with
// Enqueue and drained at the end of the next tick, so a trigger never
// observes a charge or effect that should already have expired.
type Runner struct {
	Charges    *charge.Engine
	Flasks     *flask.Engine
	Customizer *craft.Customizer

	tickMs     int64
	durationMs int64
	workers    int

	nowMs   int64
	pending []func()
}

// NewRunner wires the engines onto one bus and one currency holder.
func NewRunner(cfg config.Simulator, bus *event.Bus, currency model.CurrencyHolder) *Runner {
	return &Runner{
		Charges: charge.NewEngine(bus),
		Flasks: flask.NewEngine(bus, flask.Config{
			SlotCount:          cfg.Flask.SlotCount,
			GlobalCooldownMs:   cfg.Flask.GlobalCooldownMs,
			FlaskCooldownMs:    cfg.Flask.FlaskCooldownMs,
			ChargeRecoveryRate: cfg.Flask.ChargeRecoveryRate,
			RecoveryIntervalMs: cfg.Flask.RecoveryIntervalMs,
		}),
		Customizer: craft.NewCustomizer(bus, currency),
		tickMs:     cfg.TickMs,
		durationMs: cfg.DurationMs,
		workers:    cfg.WorkerCount,
	}
}

// Now returns the runner's logical clock in milliseconds.
func (r *Runner) Now() int64 { return r.nowMs }

// Enqueue schedules a trigger to run at the end of the next tick.
func (r *Runner) Enqueue(fn func()) {
	r.pending = append(r.pending, fn)
}

// Tick advances the logical clock by one tick: engines first, then the
// queued triggers in FIFO order.
func (r *Runner) Tick() {
	r.nowMs += r.tickMs

	r.updateCharges(r.tickMs)
	r.Flasks.Update(r.tickMs)
	r.Customizer.Advance(r.tickMs)

	queued := r.pending
	r.pending = nil
	for _, fn := range queued {
		fn()
	}
}

// Run ticks until the configured duration has elapsed or the context is
// cancelled.
func (r *Runner) Run(ctx context.Context) error {
	for elapsed := int64(0); elapsed < r.durationMs; elapsed += r.tickMs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		r.Tick()
	}
	return nil
}

// updateCharges ticks the charge engine, splitting entities across
// workers when the population is large enough. Entity records are
// disjoint, so per-entity updates can run in parallel; bus listeners
// must be safe for concurrent calls when sharding is in play.
func (r *Runner) updateCharges(deltaMs int64) {
	handles := r.Charges.Handles()
	if r.workers <= 1 || len(handles) < shardThreshold {
		r.Charges.Update(deltaMs)
		return
	}

	r.Charges.AdvanceClock(deltaMs)

	var g errgroup.Group
	chunk := (len(handles) + r.workers - 1) / r.workers
	for start := 0; start < len(handles); start += chunk {
		end := start + chunk
		if end > len(handles) {
			end = len(handles)
		}
		shard := handles[start:end]
		g.Go(func() error {
			for _, h := range shard {
				r.Charges.UpdateEntity(h, deltaMs)
			}
			return nil
		})
	}
	// Workers never return errors; Wait is just the join point.
	_ = g.Wait()
}
