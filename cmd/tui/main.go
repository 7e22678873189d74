package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dmarinho/orderdesk/cmd/tui/internal/view"
	"github.com/dmarinho/orderdesk/internal/config"
	"github.com/dmarinho/orderdesk/internal/database"
	"github.com/dmarinho/orderdesk/internal/order"
	orderStore "github.com/dmarinho/orderdesk/internal/order/store"
	"github.com/dmarinho/orderdesk/internal/partner"
	partnerStore "github.com/dmarinho/orderdesk/internal/partner/store"
)

type model struct {
	orderService *order.Service
	directory    *partner.Directory

	currentView View

	dashboardView view.DashboardModel
	ordersView    view.OrdersModel
	partnersView  view.PartnersModel
	revenueView   view.RevenueModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewOrders    View = 2
	ViewPartners  View = 3
	ViewRevenue   View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	orderSvc := order.NewService(orderStore.New(db))
	directory := partner.NewDirectory(partnerStore.New(db))

	return model{
		orderService:  orderSvc,
		directory:     directory,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(orderSvc),
		ordersView:    view.NewOrdersModel(orderSvc),
		partnersView:  view.NewPartnersModel(orderSvc, directory),
		revenueView:   view.NewRevenueModel(orderSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.orderService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewOrders
				m.ordersView = view.NewOrdersModel(m.orderService)

				return m, m.ordersView.Init()
			case "3":
				m.currentView = ViewPartners
				m.partnersView = view.NewPartnersModel(m.orderService, m.directory)

				return m, m.partnersView.Init()
			case "4":
				m.currentView = ViewRevenue
				m.revenueView = view.NewRevenueModel(m.orderService)

				return m, m.revenueView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewOrders:
		var newModel tea.Model
		newModel, cmd = m.ordersView.Update(msg)
		m.ordersView = newModel.(view.OrdersModel)
	case ViewPartners:
		var newModel tea.Model
		newModel, cmd = m.partnersView.Update(msg)
		m.partnersView = newModel.(view.PartnersModel)
	case ViewRevenue:
		var newModel tea.Model
		newModel, cmd = m.revenueView.Update(msg)
		m.revenueView = newModel.(view.RevenueModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Orderdesk TUI\n\n" +
				"1. Dashboard\n" +
				"2. Browse Orders\n" +
				"3. Partner Dues\n" +
				"4. Revenue Charts\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewOrders:
		return m.ordersView.View()
	case ViewPartners:
		return m.partnersView.View()
	case ViewRevenue:
		return m.revenueView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
