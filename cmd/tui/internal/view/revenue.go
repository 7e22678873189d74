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

const barWidth = 40

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

type revenueLoadedMsg struct {
	orders []order.Order
	err    error
}

// RevenueModel renders the weekly or monthly revenue series as a bar chart.
type RevenueModel struct {
	CommonModel
	orderService *order.Service

	orders  []order.Order
	monthly bool
	loading bool
	err     error
}

func NewRevenueModel(orderSvc *order.Service) RevenueModel {
	return RevenueModel{orderService: orderSvc, loading: true}
}

func (m RevenueModel) Title() string     { return "Revenue" }
func (m RevenueModel) ShortHelp() string { return "Esc: back | tab: weekly/monthly | r: refresh" }

func (m RevenueModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RevenueModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ptrs, err := m.orderService.List(ctx, order.ListFilter{})
		if err != nil {
			return revenueLoadedMsg{err: err}
		}

		orders := make([]order.Order, len(ptrs))
		for i, o := range ptrs {
			orders[i] = *o
		}

		return revenueLoadedMsg{orders: orders}
	}
}

func (m RevenueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case revenueLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.orders = msg.orders

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.monthly = !m.monthly
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m RevenueModel) View() string {
	if m.loading {
		return "Loading revenue..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error loading revenue: %v", m.err)
	}

	now := time.Now()

	var buckets []report.Bucket
	var heading string

	if m.monthly {
		buckets = report.MonthlyRevenue(m.orders, now)
		heading = now.Format("January 2006")
	} else {
		buckets = report.WeeklyRevenue(m.orders, now)
		heading = "This Week"
	}

	var maxPaise int64
	var total int64

	for _, b := range buckets {
		total += b.Paise
		if b.Paise > maxPaise {
			maxPaise = b.Paise
		}
	}

	var b strings.Builder

	b.WriteString(cardTitleStyle.Render(heading))
	b.WriteString("\n\n")

	for _, bucket := range buckets {
		width := 0
		if maxPaise > 0 {
			width = int(bucket.Paise * barWidth / maxPaise)
		}

		b.WriteString(fmt.Sprintf(
			"%-8s %s %s\n",
			bucket.Label,
			barStyle.Render(strings.Repeat("█", width)),
			FormatAmount(bucket.Paise),
		))
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("Total: %s", FormatAmount(total))))

	return b.String()
}
