package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/client"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/types"
)

// UI configuration constants
const (
	defaultInputWidth     = 100
	defaultViewportWidth  = 100
	defaultViewportHeight = 30
	defaultWindowWidth    = 100
	defaultWindowHeight   = 40
	searchCharLimit       = 200
	inputHeightReserved   = 2
	statusHeightReserved  = 3
	minContentHeight      = 10
	browsePageSize        = 30
	requestTimeout        = 30 * time.Second
	nameColumnWidth       = 44
)

// Style definitions
var (
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle     = lipgloss.NewStyle().Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

// browseMode represents which pane the browser is showing
type browseMode int

const (
	modeList browseMode = iota
	modeDetail
)

// BrowseProgram encapsulates the procedure browser TUI program
type BrowseProgram struct {
	model browseModel
}

// NewBrowseProgram creates a new browser program instance. The base filter
// comes from the command line and is combined with the interactive keyword.
func NewBrowseProgram(apiClient *client.APIClient, base types.Filter) *BrowseProgram {
	return &BrowseProgram{model: initialBrowseModel(apiClient, base)}
}

// Run starts the browser TUI program
func (p *BrowseProgram) Run() error {
	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// browseModel is the Bubble Tea model containing all browser state
type browseModel struct {
	// Dependencies
	apiClient *client.APIClient
	base      types.Filter

	// UI components
	input       textinput.Model
	contentView viewport.Model

	// Result state
	mode    browseMode
	items   []types.ProcedureSummary
	total   int
	page    int
	cursor  int
	detail  types.ProcedureDetail
	loading bool

	// Error state
	err error

	// Window dimensions
	width  int
	height int
}

// initialBrowseModel creates the initial browser model
func initialBrowseModel(apiClient *client.APIClient, base types.Filter) browseModel {
	input := textinput.New()
	input.Placeholder = "キーワード検索 (Enter で実行)"
	input.Focus()
	input.CharLimit = searchCharLimit
	input.Width = defaultInputWidth
	input.Prompt = ""
	input.SetValue(base.Search)

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)
	contentViewport.SetContent("")

	return browseModel{
		apiClient:   apiClient,
		base:        base,
		input:       input,
		contentView: contentViewport,
		mode:        modeList,
		page:        1,
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
}

// Init initializes the model (Bubble Tea interface)
func (m browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd(1))
}

// Message type definitions
type (
	searchResultMsg struct {
		data types.SearchData
		page int
	}
	detailResultMsg struct{ detail types.ProcedureDetail }
	browseErrMsg    struct{ err error }
)

// Update processes messages and updates the model (Bubble Tea interface)
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case searchResultMsg:
		m.loading = false
		m.err = nil
		m.items = msg.data.Items
		m.total = msg.data.TotalCount
		m.page = msg.page
		m.cursor = 0
		m.refreshContent()

	case detailResultMsg:
		m.loading = false
		m.err = nil
		m.detail = msg.detail
		m.mode = modeDetail
		m.refreshContent()

	case browseErrMsg:
		m.loading = false
		m.err = msg.err
		m.refreshContent()
	}

	// The search box only receives input while the list is showing
	if m.mode == modeList {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *browseModel) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC:
		cmds = append(cmds, tea.Quit)

	case tea.KeyEsc:
		if m.mode == modeDetail {
			m.mode = modeList
			m.refreshContent()
		} else {
			cmds = append(cmds, tea.Quit)
		}

	case tea.KeyEnter:
		if m.mode == modeList && !m.loading {
			m.loading = true
			cmds = append(cmds, m.searchCmd(1))
		}

	case tea.KeyUp:
		if m.mode == modeDetail {
			m.contentView.LineUp(1)
		} else if m.cursor > 0 {
			m.cursor--
			m.refreshContent()
		}

	case tea.KeyDown:
		if m.mode == modeDetail {
			m.contentView.LineDown(1)
		} else if m.cursor < len(m.items)-1 {
			m.cursor++
			m.refreshContent()
		}

	case tea.KeyLeft:
		if m.mode == modeList && m.page > 1 && !m.loading {
			m.loading = true
			cmds = append(cmds, m.searchCmd(m.page-1))
		}

	case tea.KeyRight:
		if m.mode == modeList && m.page*browsePageSize < m.total && !m.loading {
			m.loading = true
			cmds = append(cmds, m.searchCmd(m.page+1))
		}

	case tea.KeyTab:
		if m.mode == modeList && m.cursor < len(m.items) && !m.loading {
			m.loading = true
			cmds = append(cmds, m.detailCmd(m.items[m.cursor].ID))
		}

	case tea.KeyPgUp:
		m.contentView.ViewUp()

	case tea.KeyPgDown:
		m.contentView.ViewDown()
	}

	return cmds
}

// handleWindowResize handles window size changes
func (m *browseModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - inputHeightReserved - statusHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight
	m.input.Width = msg.Width - 3

	m.refreshContent()
}

// searchCmd runs one page of the filtered search against the server
func (m browseModel) searchCmd(page int) tea.Cmd {
	filter := m.base
	filter.Search = strings.TrimSpace(m.input.Value())
	apiClient := m.apiClient

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		data, err := apiClient.Search(ctx, types.SearchRequest{
			Filter:   filter,
			Page:     page,
			PageSize: browsePageSize,
		})
		if err != nil {
			return browseErrMsg{err: err}
		}
		return searchResultMsg{data: data, page: page}
	}
}

// detailCmd fetches the full projection of one procedure
func (m browseModel) detailCmd(id string) tea.Cmd {
	apiClient := m.apiClient

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		detail, err := apiClient.Get(ctx, id)
		if err != nil {
			return browseErrMsg{err: err}
		}
		return detailResultMsg{detail: detail}
	}
}

// refreshContent rebuilds the viewport content for the current mode
func (m *browseModel) refreshContent() {
	var b strings.Builder

	switch m.mode {
	case modeDetail:
		b.WriteString(boldStyle.Render(fmt.Sprintf("手続ID %s", m.detail.ID)))
		b.WriteString("\n\n")
		for _, f := range m.detail.Fields {
			b.WriteString(dimStyle.Render(runewidth.FillRight(f.Key, 28)))
			b.WriteString(f.Value)
			b.WriteString("\n")
		}

	case modeList:
		for i, p := range m.items {
			line := fmt.Sprintf("%-8s %s  %s  %s",
				p.ID,
				runewidth.FillRight(runewidth.Truncate(p.Name, nameColumnWidth, "…"), nameColumnWidth),
				runewidth.FillRight(p.Ministry, 12),
				p.OnlineStatus,
			)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("▸ " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if len(m.items) == 0 && !m.loading {
			b.WriteString(dimStyle.Render("該当する手続はありません"))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("エラー: %v", m.err)))
	}

	m.contentView.SetContent(b.String())
	if m.mode == modeDetail {
		m.contentView.GotoTop()
	}
}

// View renders the UI (Bubble Tea interface)
func (m browseModel) View() string {
	// Top status bar
	var status string
	switch {
	case m.loading:
		status = dimStyle.Render("読み込み中...")
	case m.mode == modeDetail:
		status = accentStyle.Render(fmt.Sprintf("手続詳細 %s", m.detail.ID))
	default:
		lastPage := (m.total + browsePageSize - 1) / browsePageSize
		if lastPage == 0 {
			lastPage = 1
		}
		status = accentStyle.Render(fmt.Sprintf("該当 %d 件", m.total)) +
			dimStyle.Render(fmt.Sprintf(" • ページ %d/%d", m.page, lastPage))
	}

	// Content area
	content := m.contentView.View()

	// Input area
	var inputView string
	if m.mode == modeList {
		inputView = promptStyle.Render("> ") + m.input.View()
	} else {
		inputView = dimStyle.Render("Esc で一覧に戻る")
	}

	// Bottom help text
	var help string
	if m.mode == modeList {
		help = dimStyle.Render("Enter 検索 • ↑↓ 選択 • ←→ ページ • Tab 詳細 • Esc 終了")
	} else {
		help = dimStyle.Render("↑↓ スクロール • Esc 戻る")
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, "", content, "", inputView, help)
}
