// Package tui implements the terminal workflow editor: a workflow browser
// plus the four-step definition wizard, talking to the Caseflow API.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caseflow/caseflow/pkg/client"
	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/wizard"
)

// Service is the API surface the editor drives. *client.Client satisfies it.
type Service interface {
	Options(ctx context.Context) (*models.WorkflowOptions, error)
	List(ctx context.Context, limit, offset int) (*client.WorkflowList, error)
	Get(ctx context.Context, id string) (*models.Workflow, error)
	Create(ctx context.Context, draft *models.Workflow) (*models.Workflow, error)
	Update(ctx context.Context, id string, draft *models.Workflow) (*models.Workflow, error)
	Delete(ctx context.Context, id string) error
	TestRun(ctx context.Context, id, entityID string) (*models.TestRunResult, error)
}

var _ Service = (*client.Client)(nil)

const listPageSize = 100

type viewState int

const (
	viewList viewState = iota
	viewWizard
	viewConfirmDelete
	viewTestPrompt
	viewTestResult
)

// textTarget identifies which draft field the shared text input edits.
type textTarget int

const (
	editNone textTarget = iota
	editName
	editDescription
	editTriggerCron
	editConditionValue
	editActionTitle
	editActionContent
)

type optionsLoadedMsg struct{ options *models.WorkflowOptions }

type workflowsLoadedMsg struct{ workflows []*models.Workflow }

type workflowFetchedMsg struct{ workflow *models.Workflow }

type workflowSavedMsg struct{ workflow *models.Workflow }

type saveFailedMsg struct{ err error }

type workflowDeletedMsg struct{ name string }

type testRunDoneMsg struct{ result *models.TestRunResult }

type errMsg struct{ err error }

type workflowItem struct {
	workflow *models.Workflow
}

func (i workflowItem) Title() string { return i.workflow.Name }

func (i workflowItem) Description() string {
	state := "disabled"
	if i.workflow.IsEnabled {
		state = "enabled"
	}

	return fmt.Sprintf("%s | %d conditions, %d actions | %s",
		i.workflow.TriggerType, len(i.workflow.Conditions), len(i.workflow.Actions), state)
}

func (i workflowItem) FilterValue() string { return i.workflow.Name }

// Model is the main editor model.
type Model struct {
	api     Service
	state   viewState
	session *wizard.Session
	options *models.WorkflowOptions

	workflowList list.Model
	width        int
	height       int
	err          string
	statusMsg    string

	// Wizard editing state. fieldCursor is the focused row within the
	// current step; textInput owns the keys while textFocus is set.
	fieldCursor int
	textInput   textinput.Model
	textFocus   textTarget

	// Delete confirmation
	pendingDeleteID   string
	pendingDeleteName string

	// Test run
	testTargetID   string
	testTargetName string
	caseInput      textinput.Model
	testResult     *models.TestRunResult
}

// NewModel creates the initial editor model.
func NewModel(api Service) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	wl := list.New([]list.Item{}, delegate, 0, 0)
	wl.SetShowTitle(false)
	wl.SetShowHelp(false)
	wl.SetShowStatusBar(false)
	wl.SetFilteringEnabled(true)

	ti := textinput.New()
	ti.CharLimit = 200

	ci := textinput.New()
	ci.Placeholder = "case record id"
	ci.CharLimit = 100

	return Model{
		api:          api,
		state:        viewList,
		session:      wizard.NewSession(),
		workflowList: wl,
		textInput:    ti,
		caseInput:    ci,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadOptions(), m.loadWorkflows())
}

func (m Model) loadOptions() tea.Cmd {
	api := m.api

	return func() tea.Msg {
		options, err := api.Options(context.Background())
		if err != nil {
			return errMsg{err}
		}

		return optionsLoadedMsg{options}
	}
}

func (m Model) loadWorkflows() tea.Cmd {
	api := m.api

	return func() tea.Msg {
		result, err := api.List(context.Background(), listPageSize, 0)
		if err != nil {
			return errMsg{err}
		}

		return workflowsLoadedMsg{result.Workflows}
	}
}

func (m Model) fetchWorkflow(id string) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		workflow, err := api.Get(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}

		return workflowFetchedMsg{workflow}
	}
}

// dispatchSave runs the network call on bubbletea's Cmd goroutine. Only the
// detached snapshot crosses goroutines; the session stays with Update.
func (m Model) dispatchSave(pending *wizard.PendingSave) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		saved, err := pending.Dispatch(context.Background(), api)
		if err != nil {
			return saveFailedMsg{err}
		}

		return workflowSavedMsg{saved}
	}
}

func (m Model) deleteWorkflow(id, name string) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		if err := api.Delete(context.Background(), id); err != nil {
			return errMsg{err}
		}

		return workflowDeletedMsg{name}
	}
}

func (m Model) runTest(id, entityID string) tea.Cmd {
	api := m.api

	return func() tea.Msg {
		result, err := api.TestRun(context.Background(), id, entityID)
		if err != nil {
			return errMsg{err}
		}

		return testRunDoneMsg{result}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Account for appStyle padding plus header, status and help rows.
		m.workflowList.SetSize(m.width-4, m.height-9)

		return m, nil

	case optionsLoadedMsg:
		m.options = msg.options

		return m, nil

	case workflowsLoadedMsg:
		items := make([]list.Item, 0, len(msg.workflows))
		for _, workflow := range msg.workflows {
			items = append(items, workflowItem{workflow})
		}

		return m, m.workflowList.SetItems(items)

	case workflowFetchedMsg:
		m.session.Hydrate(msg.workflow)

		return m, nil

	case workflowSavedMsg:
		m.session.FinishSave(nil)
		m.state = viewList
		m.err = ""
		m.statusMsg = fmt.Sprintf("saved %q", msg.workflow.Name)

		return m, m.loadWorkflows()

	case saveFailedMsg:
		// The draft survives so the user can correct and resubmit.
		m.session.FinishSave(msg.err)
		m.err = msg.err.Error()

		return m, nil

	case workflowDeletedMsg:
		m.state = viewList
		m.statusMsg = fmt.Sprintf("deleted %q", msg.name)

		return m, m.loadWorkflows()

	case testRunDoneMsg:
		m.testResult = msg.result
		m.state = viewTestResult

		return m, nil

	case errMsg:
		m.err = msg.err.Error()

		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""

		switch m.state {
		case viewWizard:
			return m.updateWizard(msg)
		case viewConfirmDelete:
			return m.updateConfirmDelete(msg)
		case viewTestPrompt:
			return m.updateTestPrompt(msg)
		case viewTestResult:
			m.state = viewList
			m.testResult = nil

			return m, nil
		case viewList:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.workflowList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.workflowList, cmd = m.workflowList.Update(msg)

		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Add):
		m.session.OpenCreate()
		m.enterWizard()

		return m, nil

	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		if item, ok := m.workflowList.SelectedItem().(workflowItem); ok {
			m.session.OpenEdit(item.workflow.ID)
			m.enterWizard()

			return m, m.fetchWorkflow(item.workflow.ID)
		}

	case key.Matches(msg, keys.Delete):
		if item, ok := m.workflowList.SelectedItem().(workflowItem); ok {
			m.pendingDeleteID = item.workflow.ID
			m.pendingDeleteName = item.workflow.Name
			m.state = viewConfirmDelete
		}

		return m, nil

	case key.Matches(msg, keys.Test):
		if item, ok := m.workflowList.SelectedItem().(workflowItem); ok {
			m.testTargetID = item.workflow.ID
			m.testTargetName = item.workflow.Name
			m.caseInput.SetValue("")
			m.caseInput.Focus()
			m.state = viewTestPrompt
		}

		return m, nil

	case key.Matches(msg, keys.Refresh):
		return m, tea.Batch(m.loadOptions(), m.loadWorkflows())
	}

	var cmd tea.Cmd
	m.workflowList, cmd = m.workflowList.Update(msg)

	return m, cmd
}

// Deleting is destructive, so it always goes through an explicit yes/no
// prompt; any key other than "y" cancels.
func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "y" {
		id, name := m.pendingDeleteID, m.pendingDeleteName
		m.pendingDeleteID = ""
		m.pendingDeleteName = ""

		return m, m.deleteWorkflow(id, name)
	}

	m.pendingDeleteID = ""
	m.pendingDeleteName = ""
	m.state = viewList

	return m, nil
}

func (m Model) updateTestPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.caseInput.Blur()
		m.state = viewList

		return m, nil
	case "enter":
		entityID := m.caseInput.Value()
		if entityID == "" {
			return m, nil
		}

		m.caseInput.Blur()

		return m, m.runTest(m.testTargetID, entityID)
	}

	var cmd tea.Cmd
	m.caseInput, cmd = m.caseInput.Update(msg)

	return m, cmd
}

// Run starts the editor application against the given API.
func Run(api Service) error {
	p := tea.NewProgram(NewModel(api), tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (m *Model) enterWizard() {
	m.state = viewWizard
	m.fieldCursor = 0
	m.textFocus = editNone
	m.err = ""
}
