package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarinho/orderdesk/internal/order"
	"github.com/dmarinho/orderdesk/internal/partner"
)

type partnersLoadedMsg struct {
	rows []*order.PartnerTotals
	err  error
}

// PartnersModel lists per-partner payment totals and outstanding dues.
type PartnersModel struct {
	CommonModel
	orderService *order.Service
	directory    *partner.Directory

	table    table.Model
	totals   []*order.PartnerTotals
	loading  bool
	err      error
	detail   *order.PartnerTotals
}

func NewPartnersModel(orderSvc *order.Service, directory *partner.Directory) PartnersModel {
	columns := []table.Column{
		{Title: "Partner", Width: 24},
		{Title: "Orders", Width: 8},
		{Title: "Total Paid", Width: 14},
		{Title: "Current Due", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return PartnersModel{
		orderService: orderSvc,
		directory:    directory,
		table:        t,
		loading:      true,
	}
}

func (m PartnersModel) Title() string { return "Partners" }

func (m PartnersModel) ShortHelp() string {
	if m.detail != nil {
		return "Esc: back to list"
	}

	return "Esc: back | Enter: history | r: refresh"
}

func (m PartnersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PartnersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ptrs, err := m.orderService.List(ctx, order.ListFilter{})
		if err != nil {
			return partnersLoadedMsg{err: err}
		}

		orders := make([]order.Order, len(ptrs))
		for i, o := range ptrs {
			orders[i] = *o
		}

		byPartner := order.AggregateByPartner(orders)

		rows := make([]*order.PartnerTotals, 0, len(byPartner))
		for _, pt := range byPartner {
			if pt.PartnerName == "" {
				if name, err := m.directory.Lookup(ctx, pt.PartnerID); err == nil && name != "" {
					pt.PartnerName = name
				}
			}

			rows = append(rows, pt)
		}

		sort.Slice(rows, func(i, j int) bool {
			if rows[i].CurrentDue != rows[j].CurrentDue {
				return rows[i].CurrentDue > rows[j].CurrentDue
			}

			return rows[i].PartnerID < rows[j].PartnerID
		})

		return partnersLoadedMsg{rows: rows}
	}
}

func (m PartnersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case partnersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.totals = msg.rows
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		if m.detail != nil {
			if msg.String() == "esc" {
				m.detail = nil
				m.table.Focus()
			}

			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.totals) {
				m.detail = m.totals[idx]
				m.table.Blur()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *PartnersModel) refreshTable() {
	rows := make([]table.Row, len(m.totals))
	for i, pt := range m.totals {
		name := pt.PartnerName
		if name == "" {
			name = pt.PartnerID
		}

		rows[i] = table.Row{
			name,
			fmt.Sprintf("%d", len(pt.History)),
			FormatAmount(pt.TotalPaid),
			FormatAmount(pt.CurrentDue),
		}
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m PartnersModel) View() string {
	if m.loading {
		return "Loading partners..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error loading partners: %v", m.err)
	}

	if m.detail != nil {
		return m.detailView()
	}

	var b strings.Builder

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("%d partners", len(m.totals))))

	return b.String()
}

func (m PartnersModel) detailView() string {
	pt := m.detail

	name := pt.PartnerName
	if name == "" {
		name = pt.PartnerID
	}

	var b strings.Builder

	b.WriteString(cardTitleStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total Paid: %s    Current Due: %s\n\n", FormatAmount(pt.TotalPaid), FormatAmount(pt.CurrentDue)))

	for _, v := range pt.History {
		b.WriteString(fmt.Sprintf(
			"%s  %-28s %-12s paid %s, due %s\n",
			FormatDate(v.CreatedAt),
			truncate(v.ServiceName, 28),
			v.Status,
			FormatAmount(v.PaidAmount),
			FormatAmount(v.DueAmount),
		))
	}

	return cardStyle.Render(b.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n-3] + "..."
}
