package main

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"restock-engine/UI"
	"restock-engine/config"
	"restock-engine/internal/engine"
	"restock-engine/internal/execution"
	"restock-engine/internal/host"
	"restock-engine/internal/hostbridge"
	"restock-engine/internal/logger"
	"restock-engine/internal/store"
)

const configFile = "config.json"

func main() {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		fmt.Println("Creating default config file...")
		if err := config.CreateDefaultConfig(configFile); err != nil {
			fmt.Printf("Error creating default config: %v\n", err)
			return
		}
		fmt.Printf("Default config created at %s\n", configFile)
		return
	}

	log, err := logger.NewLogger(cfg.Engine.LogFile, cfg.Engine.LogLevel, cfg.Engine.LogTailSize)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		return
	}
	defer log.Sync()

	ctx := context.Background()
	bridge := hostbridge.NewClient(cfg.Bridge.URL, cfg.RequestTimeout(), log)

	// The engine needs the bridge connected to list the catalog, so the
	// handlers load it from a pointer published after construction.
	// Events arriving on the read loop before then are logged and
	// dropped, not applied.
	var engRef atomic.Pointer[engine.Engine]
	bridge.SetEventHandlers(newEventHandlers(ctx, &engRef, log))

	if err := bridge.Connect(); err != nil {
		fmt.Printf("Error connecting to host bridge: %v\n", err)
		return
	}
	defer bridge.Close()

	st := store.NewStore(cfg.Engine.SaveFile)
	pacer := execution.SleepPacer{
		TickInterval:  cfg.TickInterval(),
		CooldownDelay: cfg.OrderCooldown(),
	}

	eng, err := engine.NewEngine(cfg, bridge.Services(), st, pacer, log)
	if err != nil {
		fmt.Printf("Error initializing engine: %v\n", err)
		return
	}
	engRef.Store(eng)

	p := tea.NewProgram(UI.InitialModel(eng, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	eng.Save()
}

// newEventHandlers builds the bridge callbacks around the engine
// pointer published once construction finishes.
func newEventHandlers(ctx context.Context, ref *atomic.Pointer[engine.Engine], log *logger.Logger) hostbridge.EventHandlers {
	return hostbridge.EventHandlers{
		OnSale: func(ev host.SaleEvent) {
			eng := ref.Load()
			if eng == nil {
				log.Error("No stock manager instance on product scanned!")
				return
			}
			eng.RecordSale(ev)
		},
		OnDayEnd: func() {
			eng := ref.Load()
			if eng == nil {
				log.Error("No stock manager instance on day end!")
				return
			}
			eng.RolloverDay()
		},
		OnDayStart: func() {
			if eng := ref.Load(); eng != nil {
				eng.HandleDayStart(ctx)
			}
		},
		OnSaveRequested: func() {
			eng := ref.Load()
			if eng == nil {
				log.Error("No stock manager instance on save!")
				return
			}
			eng.Save()
		},
		OnRestockTrigger: func() {
			if eng := ref.Load(); eng != nil {
				go eng.RunOrder(ctx)
			}
		},
	}
}
