package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/dmarinho/orderdesk/internal/order"
	"github.com/dmarinho/orderdesk/internal/report"
)

type ordersState int

const (
	ordersStateTimeframe ordersState = iota
	ordersStateBrowse
	ordersStateSearch
	ordersStateEdit
)

// statusFilters is the cycle order for the status filter key.
var statusFilters = []*order.Status{
	nil,
	statusPtr(order.StatusPending),
	statusPtr(order.StatusInProgress),
	statusPtr(order.StatusCompleted),
	statusPtr(order.StatusCancelled),
}

func statusPtr(s order.Status) *order.Status { return &s }

// paymentFilters is the cycle order for the payment filter key.
var paymentFilters = []report.PaymentFilter{
	report.PaymentAny,
	report.PaymentDue,
	report.PaymentPaid,
}

type ordersLoadedMsg struct {
	orders []order.Order
	err    error
}

type orderSavedMsg struct {
	err error
}

// OrdersModel is the filterable, paginated order table with inline status
// updates and payment recording.
type OrdersModel struct {
	CommonModel
	orderService *order.Service

	state           ordersState
	timeframePicker TimeframePicker
	table           table.Model
	searchInput     textinput.Model
	form            *huh.Form

	orders []order.Order
	page   report.Page
	query  report.Query
	filter order.ListFilter

	statusFilterIdx  int
	paymentFilterIdx int

	selected *order.View
	loading  bool
	status   string
	err      error

	// Form bindings
	formStatus  string
	formPayment string
}

func NewOrdersModel(orderSvc *order.Service) OrdersModel {
	columns := []table.Column{
		{Title: "Order", Width: 10},
		{Title: "Service", Width: 28},
		{Title: "Type", Width: 11},
		{Title: "Partner", Width: 18},
		{Title: "Status", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(report.DefaultPageSize),
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

	si := textinput.New()
	si.Placeholder = "partner, order id, or service"
	si.Prompt = "Search: "
	si.CharLimit = 40

	return OrdersModel{
		orderService:    orderSvc,
		state:           ordersStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
		table:           t,
		searchInput:     si,
		query:           report.Query{Page: 1},
	}
}

func (m OrdersModel) Title() string { return "Orders" }

func (m OrdersModel) ShortHelp() string {
	switch m.state {
	case ordersStateTimeframe:
		return "Esc: back | Enter: select"
	case ordersStateSearch:
		return "Enter: apply | Esc: clear"
	case ordersStateEdit:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: search | s: status | p: payment | ←/→: page | e: edit | r: refresh"
}

func (m OrdersModel) Init() tea.Cmd {
	return m.timeframePicker.Init()
}

func (m OrdersModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ptrs, err := m.orderService.List(ctx, filter)
		if err != nil {
			return ordersLoadedMsg{err: err}
		}

		orders := make([]order.Order, len(ptrs))
		for i, o := range ptrs {
			orders[i] = *o
		}

		return ordersLoadedMsg{orders: orders}
	}
}

func (m OrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = msg.Filter()
		m.state = ordersStateBrowse
		m.loading = true

		return m, m.loadCmd()

	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.orders = msg.orders
		m.refreshTable()

		return m, nil

	case orderSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = ordersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	switch m.state {
	case ordersStateTimeframe:
		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}

		return m, cmd

	case ordersStateBrowse:
		return m.updateBrowse(msg)
	case ordersStateSearch:
		return m.updateSearch(msg)
	case ordersStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m OrdersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = ordersStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = ordersStateSearch
			m.searchInput.Focus()

			return m, textinput.Blink
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.query.Status = statusFilters[m.statusFilterIdx]
			m.query.Page = 1
			m.refreshTable()

			return m, nil
		case "p":
			m.paymentFilterIdx = (m.paymentFilterIdx + 1) % len(paymentFilters)
			m.query.Payment = paymentFilters[m.paymentFilterIdx]
			m.query.Page = 1
			m.refreshTable()

			return m, nil
		case "left":
			if m.query.Page > 1 {
				m.query.Page--
				m.refreshTable()
			}

			return m, nil
		case "right":
			if m.query.Page < m.page.TotalPages {
				m.query.Page++
				m.refreshTable()
			}

			return m, nil
		case "e":
			return m.enterEditMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m OrdersModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.query.Search = m.searchInput.Value()
			m.query.Page = 1
			m.state = ordersStateBrowse
			m.refreshTable()

			return m, nil
		case tea.KeyEsc:
			m.searchInput.SetValue("")
			m.query.Search = ""
			m.query.Page = 1
			m.state = ordersStateBrowse
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	return m, cmd
}

func (m OrdersModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.page.Rows) {
		return m, nil
	}

	v := m.page.Rows[idx]
	m.selected = &v
	m.formStatus = string(v.Status)
	m.formPayment = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Pending", string(order.StatusPending)),
					huh.NewOption("In Progress", string(order.StatusInProgress)),
					huh.NewOption("Completed", string(order.StatusCompleted)),
					huh.NewOption("Cancelled", string(order.StatusCancelled)),
				).
				Value(&m.formStatus),

			huh.NewInput().
				Key("payment").
				Title("Record Payment (₹)").
				Placeholder("leave empty to skip").
				Value(&m.formPayment).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					if order.ParsePaise(s) <= 0 {
						return fmt.Errorf("payment must be a positive amount")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ordersStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m OrdersModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ordersStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.saveCmd(m.selected.ID, m.formStatus, m.formPayment)
	}

	return m, cmd
}

func (m OrdersModel) saveCmd(id uuid.UUID, rawStatus, payment string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.orderService.UpdateStatus(ctx, id, rawStatus); err != nil {
			return orderSavedMsg{err: err}
		}

		if strings.TrimSpace(payment) != "" {
			if _, err := m.orderService.RecordPayment(ctx, id, order.ParsePaise(payment), "recorded via tui", ""); err != nil {
				return orderSavedMsg{err: err}
			}
		}

		return orderSavedMsg{}
	}
}

func (m *OrdersModel) refreshTable() {
	m.page = report.Run(m.orders, m.query)

	rows := make([]table.Row, len(m.page.Rows))
	for i, v := range m.page.Rows {
		rows[i] = table.Row{
			v.DisplayID,
			v.ServiceName,
			string(v.Type),
			v.PartnerName,
			string(v.Status),
			FormatAmount(v.DueAmount),
			FormatDate(v.CreatedAt),
		}
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m OrdersModel) View() string {
	switch m.state {
	case ordersStateTimeframe:
		return m.timeframePicker.View()
	case ordersStateEdit:
		header := ""
		if m.selected != nil {
			header = fmt.Sprintf("Editing %s (%s)\n\n", m.selected.DisplayID, m.selected.ServiceName)
		}

		return header + m.form.View()
	}

	if m.loading {
		return "Loading orders..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error loading orders: %v", m.err)
	}

	var b strings.Builder

	if m.state == ordersStateSearch {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	} else if m.query.Search != "" {
		b.WriteString(faintStyle.Render(fmt.Sprintf("search: %q", m.query.Search)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf(
		"page %d/%d (%d orders)%s%s",
		m.page.Page, m.page.TotalPages, m.page.TotalRows,
		describeStatusFilter(m.query.Status),
		describePaymentFilter(m.query.Payment),
	)))

	if m.status != "" {
		b.WriteString("\n" + m.status)
	}

	return b.String()
}

func describeStatusFilter(s *order.Status) string {
	if s == nil {
		return ""
	}

	return fmt.Sprintf(" | status: %s", *s)
}

func describePaymentFilter(p report.PaymentFilter) string {
	if p == report.PaymentAny {
		return ""
	}

	return fmt.Sprintf(" | payment: %s", p)
}
