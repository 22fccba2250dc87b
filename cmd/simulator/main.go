package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/udisondev/exilecraft/internal/config"
	"github.com/udisondev/exilecraft/internal/data"
	"github.com/udisondev/exilecraft/internal/game/event"
	"github.com/udisondev/exilecraft/internal/model"
	"github.com/udisondev/exilecraft/internal/sim"
)

const ConfigPath = "config/simulator.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("EXILECRAFT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("exilecraft simulator starting",
		"log_level", cfg.LogLevel,
		"tick_ms", cfg.TickMs,
		"duration_ms", cfg.DurationMs)

	data.LoadAll()
	if cfg.DataOverrides != "" {
		if err := data.LoadOverrides(cfg.DataOverrides); err != nil {
			return fmt.Errorf("loading data overrides: %w", err)
		}
	}

	bus := event.NewBus()
	logEvents(bus)

	runner := sim.NewRunner(cfg, bus, newDemoWallet())
	if err := scriptScenario(runner); err != nil {
		return fmt.Errorf("setting up scenario: %w", err)
	}

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	slog.Info("simulation finished", "simulated_ms", runner.Now())
	return nil
}

// scriptScenario equips a small loadout, registers one character and
// queues the stimuli the engines react to during the run.
func scriptScenario(r *sim.Runner) error {
	life := data.NewFlaskFromBase("small_life_flask")
	quicksilver := data.NewFlaskFromBase("quicksilver_flask")
	if life == nil || quicksilver == nil {
		return fmt.Errorf("built-in flask bases missing")
	}
	if !r.Flasks.Equip(0, life) || !r.Flasks.Equip(1, quicksilver) {
		return fmt.Errorf("equipping flasks")
	}
	r.Customizer.Track(life)
	r.Customizer.Track(quicksilver)

	hero := &demoEntity{id: 1}
	h, ok := r.Charges.Register(hero)
	if !ok {
		return fmt.Errorf("registering entity")
	}

	// Opening moves: sip the life flask, pop the quicksilver, then build
	// power charges on crits and trade them for a discharge.
	r.Enqueue(func() { r.Flasks.Use(0) })
	r.Enqueue(func() { r.Flasks.Use(1) })
	for i := 0; i < 5; i++ {
		r.Enqueue(func() {
			r.Flasks.OnCriticalStrike()
			r.Charges.GenerateCharge(h, "power_on_crit", model.TriggerCriticalStrike, model.TriggerContext{})
		})
	}
	r.Enqueue(func() { r.Charges.ConsumeCharges(h, "discharge_power") })
	r.Enqueue(func() { r.Customizer.ImproveQuality(life.ID, 3) })
	r.Enqueue(func() { r.Customizer.Craft(life.ID, "orb_transmutation") })
	return nil
}

// logEvents mirrors the interesting notifications onto the log.
func logEvents(bus *event.Bus) {
	bus.Subscribe(event.FlaskUsed, func(e event.Event) {
		ev := e.(event.FlaskUsedEvent)
		slog.Info("flask used", "slot", ev.SlotID, "flask", ev.FlaskID,
			"life", ev.LifeRecovery, "mana", ev.ManaRecovery, "charges_left", ev.ChargesLeft)
	})
	bus.Subscribe(event.ChargesAdded, func(e event.Event) {
		ev := e.(event.ChargesAddedEvent)
		slog.Info("charges gained", "entity", ev.EntityID, "type", ev.ChargeType,
			"amount", ev.Amount, "current", ev.Current, "source", ev.Source)
	})
	bus.Subscribe(event.ChargesConsumed, func(e event.Event) {
		ev := e.(event.ChargesConsumedEvent)
		slog.Info("charges consumed", "entity", ev.EntityID,
			"consumption", ev.ConsumptionID, "consumed", ev.Consumed)
	})
	bus.Subscribe(event.CraftingSuccess, func(e event.Event) {
		ev := e.(event.CraftingSuccessEvent)
		slog.Info("craft applied", "flask", ev.FlaskID, "operation", ev.Operation)
	})
	bus.Subscribe(event.FlaskQualityImproved, func(e event.Event) {
		ev := e.(event.FlaskQualityImprovedEvent)
		slog.Info("quality improved", "flask", ev.FlaskID, "level", ev.NewLevel, "cost", ev.Cost)
	})
}

type demoEntity struct{ id uint32 }

func (e *demoEntity) ObjectID() uint32 { return e.id }

func (e *demoEntity) HasComponents(...string) bool { return true }

// demoWallet is a generous in-memory currency holder for scripted runs.
type demoWallet struct{ balances map[string]int64 }

func newDemoWallet() *demoWallet {
	return &demoWallet{balances: map[string]int64{
		"glassblower_bauble": 100,
		"orb_transmutation":  10,
		"orb_alteration":     10,
		"chaos_orb":          10,
		"crafting_shard":     100,
	}}
}

func (w *demoWallet) HasRequiredCurrency(currency string, amount int64) bool {
	return w.balances[currency] >= amount
}

func (w *demoWallet) ConsumeCurrency(currency string, amount int64) bool {
	if w.balances[currency] < amount {
		return false
	}
	w.balances[currency] -= amount
	return true
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
