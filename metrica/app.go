// Package metrica wires the Metrica bot: commands, callbacks, flows and
// the in-memory order book on top of the reusable core.
package metrica

import (
	"fmt"

	coreconfig "github.com/metrica-project/metrica-bot/core/config"
	tg "github.com/metrica-project/metrica-bot/core/telegram"
	"github.com/metrica-project/metrica-bot/core/telegram/helpers"
	"github.com/metrica-project/metrica-bot/core/telegram/middleware"
	"github.com/metrica-project/metrica-bot/core/telegram/router"
	"github.com/metrica-project/metrica-bot/core/telegram/state"
	"github.com/metrica-project/metrica-bot/metrica/flows"
	"github.com/metrica-project/metrica-bot/metrica/orders"

	tele "gopkg.in/telebot.v4"
)

const accessDeniedText = `🔒 <b>Access Restricted</b>

This feature is only available to authorized users.
Contact an administrator if you believe this is an error.

You can still use /help to see available commands.`

// App is the fully wired Metrica bot application.
type App struct {
	cfg    *coreconfig.Config
	reg    *tg.Registry
	fsm    state.Manager
	orders *orders.Store
	menus  *menus

	register  *flows.RegisterFlow
	orderFlow *flows.OrderFlow
}

// New builds the registry, flows and keyboards. Any registration conflict
// surfaces here, before the bot goes online.
func New(cfg *coreconfig.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("metrica: nil config provided")
	}

	m, err := buildMenus()
	if err != nil {
		return nil, fmt.Errorf("metrica: keyboards: %w", err)
	}

	store := orders.NewStore()
	orderFlow, err := flows.NewOrderFlow(store)
	if err != nil {
		return nil, fmt.Errorf("metrica: order flow: %w", err)
	}

	a := &App{
		cfg:       cfg,
		reg:       tg.NewRegistry(),
		fsm:       state.NewMemoryManager(),
		orders:    store,
		menus:     m,
		register:  flows.NewRegisterFlow(),
		orderFlow: orderFlow,
	}

	if err := a.register.Bind(a.fsm); err != nil {
		return nil, fmt.Errorf("metrica: register flow: %w", err)
	}
	if err := a.orderFlow.Bind(a.fsm); err != nil {
		return nil, fmt.Errorf("metrica: order flow: %w", err)
	}

	if err := a.registerCommands(); err != nil {
		return nil, fmt.Errorf("metrica: commands: %w", err)
	}
	if err := a.registerCallbacks(); err != nil {
		return nil, fmt.Errorf("metrica: callbacks: %w", err)
	}
	if err := a.registerMedia(); err != nil {
		return nil, fmt.Errorf("metrica: media: %w", err)
	}
	a.reg.SetTextFallback(a.handleFreeText)
	a.reg.SetMediaFallback(func(c tele.Context) error {
		return helpers.SendText(c, "I can't process that kind of message yet.")
	})

	return a, nil
}

// Registry exposes the populated handler registry.
func (a *App) Registry() *tg.Registry { return a.reg }

// FSM exposes the conversation manager.
func (a *App) FSM() state.Manager { return a.fsm }

// Orders exposes the order book.
func (a *App) Orders() *orders.Store { return a.orders }

func (a *App) accessOptions() middleware.AccessOptions {
	return middleware.AccessOptions{
		Allowed: a.cfg.AllowedSet(),
		OnReject: func(c tele.Context) error {
			return helpers.SendHTML(c, accessDeniedText)
		},
	}
}

// TelegramRunOptions assembles the run loop configuration: middleware chain
// and one route per dispatch branch.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	access := a.accessOptions()

	routes := router.CommandRoutes(a.reg, router.CommandRouteOptions{Access: access})
	routes = append(routes, router.CallbackRoute(a.reg, router.CallbackOptions{FSM: a.fsm}))
	routes = append(routes, router.TextRoute(a.fsm, a.reg, router.TextOptions{Access: access}))
	routes = append(routes, router.MediaRoutes(a.fsm, a.reg)...)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}
