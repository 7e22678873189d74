package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarinho/orderdesk/internal/order"
	"github.com/dmarinho/orderdesk/internal/report"
)

var (
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cardStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type dashboardLoadedMsg struct {
	orders []order.Order
	err    error
}

// DashboardModel is the landing screen: window totals plus per-type status
// breakdowns, recomputed from scratch on every refresh.
type DashboardModel struct {
	CommonModel
	orderService *order.Service

	orders  []order.Order
	loading bool
	err     error
}

func NewDashboardModel(orderSvc *order.Service) DashboardModel {
	return DashboardModel{orderService: orderSvc}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ptrs, err := m.orderService.List(ctx, order.ListFilter{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		orders := make([]order.Order, len(ptrs))
		for i, o := range ptrs {
			orders[i] = *o
		}

		return dashboardLoadedMsg{orders: orders}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.orders = msg.orders

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v", m.err)
	}

	now := time.Now()

	var windows []string

	for _, w := range []order.Window{order.WindowToday, order.WindowWeek, order.WindowMonth} {
		t := order.AggregateByWindow(m.orders, w, now)
		body := fmt.Sprintf(
			"%s\nRevenue: %s\nDue:     %s\nOrders:  %d",
			cardTitleStyle.Render(w.String()),
			FormatAmount(t.Revenue),
			FormatAmount(t.DueTotal),
			t.Orders,
		)
		windows = append(windows, cardStyle.Render(body))
	}

	s := report.Summarize(m.orders)

	breakdowns := []string{
		renderBreakdown("Agency", s.Agency),
		renderBreakdown("Correction", s.Correction),
		renderBreakdown("E-Greeting", s.EGreeting),
		renderBreakdown("Service", s.Service),
	}

	var b strings.Builder

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, windows...))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, breakdowns...))
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("%d orders total", len(m.orders))))

	return b.String()
}

func renderBreakdown(label string, b report.StatusBreakdown) string {
	body := fmt.Sprintf(
		"%s\nTotal:     %d\nWaiting:   %d\nProgress:  %d\nCompleted: %d\nCancelled: %d",
		cardTitleStyle.Render(label),
		b.Total, b.Waiting, b.Progress, b.Completed, b.Cancelled,
	)

	return cardStyle.Render(body)
}
