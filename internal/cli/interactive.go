package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

// menuItem represents a single configurable option in the TUI.
type menuItem struct {
	label    string
	value    string
	options  []menuOption
	required bool
	editing  bool
	cursor   int // cursor within options when editing
}

type menuOption struct {
	label string
	value string
}

// menuState tracks which phase the TUI is in.
type menuState int

const (
	stateMenu menuState = iota
	stateEditing
	statePersonaPicker
)

// tuiModel is the Bubble Tea model for the interactive menu.
type tuiModel struct {
	items         []menuItem
	cursor        int
	state         menuState
	width         int
	err           error
	confirmed     bool
	cancelled     bool
	personas      map[string]bool // for multi-select persona picker
	personaCursor int
}

// style constants
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	menuLabelStyle = lipgloss.NewStyle().
			Width(18).
			Align(lipgloss.Right).
			MarginRight(2)

	menuValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	menuValueDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	requiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#04B575")).
				Bold(true).
				PaddingLeft(2)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 3)

	buttonDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(0, 3)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	headerBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#7D56F4")).
			MarginBottom(1).
			PaddingBottom(0)
)

// menu item indices
const (
	idxProduct    = 0
	idxProvider   = 1
	idxModel      = 2
	idxInterviews = 3
	idxQuestions  = 4
	idxSegment    = 5
	idxPersonas   = 6
	idxTTS        = 7
	idxOutput     = 8
	// idxStart = last item
)

// parseInt parses a preset value, falling back for empty or bad input.
func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func productOptions() []menuOption {
	var opts []menuOption
	for _, p := range product.Catalog() {
		opts = append(opts, menuOption{
			label: fmt.Sprintf("%s (%s)", p.Name, p.Category),
			value: p.Name,
		})
	}
	return opts
}

// modelOptions returns the model choices for a dialogue provider.
func modelOptions(provider string) []menuOption {
	switch provider {
	case "claude":
		return []menuOption{
			{label: "Haiku 4.5 (fast, affordable) (default)", value: "haiku"},
			{label: "Sonnet 4.5 (balanced)", value: "sonnet"},
		}
	case "gemini":
		return []menuOption{
			{label: "Gemini 2.5 Flash (fast) (default)", value: "gemini-flash"},
			{label: "Gemini 2.5 Flash Lite (cheapest)", value: "gemini-lite"},
			{label: "Gemini 2.5 Pro (powerful)", value: "gemini-pro"},
		}
	case "nova":
		return []menuOption{
			{label: "Nova 2 Lite (default)", value: "nova-lite"},
		}
	default:
		return []menuOption{
			{label: "Canned replies (no model)", value: ""},
		}
	}
}

// defaultModel returns the default model alias for a provider.
func defaultModel(provider string) string {
	switch provider {
	case "claude":
		return "haiku"
	case "gemini":
		return "gemini-flash"
	case "nova":
		return "nova-lite"
	default:
		return ""
	}
}

func segmentOptions() []menuOption {
	opts := []menuOption{
		{label: "None - generate diverse personas (default)", value: ""},
	}
	for _, seg := range persona.Segments() {
		opts = append(opts, menuOption{
			label: fmt.Sprintf("%s (age %s)", seg.Name, seg.AgeRange),
			value: seg.Name,
		})
	}
	return opts
}

var personaOptions = buildPersonaOptions()

func buildPersonaOptions() []menuOption {
	var opts []menuOption
	for _, p := range persona.Examples() {
		opts = append(opts, menuOption{
			label: fmt.Sprintf("%s - %s (%d)", p.Name, p.Job, p.Age),
			value: p.Name,
		})
	}
	return opts
}

func buildMenuItems() []menuItem {
	// Use existing flag values or sensible defaults
	productVal := flagProduct
	if productVal == "" {
		productVal = product.Catalog()[0].Name
	}
	providerVal := flagProvider
	if providerVal == "" {
		providerVal = "claude"
	}
	modelVal := flagModel
	if modelVal == "" {
		modelVal = defaultModel(providerVal)
	}
	outputVal := flagOutput
	if outputVal == "" {
		outputVal = "research-output"
	}

	items := []menuItem{
		{
			label:    "Product",
			value:    productVal,
			options:  productOptions(),
			required: true,
		},
		{
			label: "Provider",
			value: providerVal,
			options: []menuOption{
				{label: "Claude (Anthropic) (default)", value: "claude"},
				{label: "Gemini (Google AI Studio)", value: "gemini"},
				{label: "Nova (Amazon Bedrock)", value: "nova"},
				{label: "Demo - canned replies, no API key", value: "demo"},
			},
		},
		{
			label:   "Model",
			value:   modelVal,
			options: modelOptions(providerVal),
		},
		{
			label: "Interviews",
			value: strconv.Itoa(flagInterviews),
			options: []menuOption{
				{label: "3 interviews (quick scan)", value: "3"},
				{label: "5 interviews (default)", value: "5"},
				{label: "8 interviews (broad)", value: "8"},
				{label: "10 interviews (max)", value: "10"},
			},
		},
		{
			label: "Questions",
			value: strconv.Itoa(flagQuestions),
			options: []menuOption{
				{label: "5 questions (short)", value: "5"},
				{label: "8 questions (default)", value: "8"},
				{label: "10 questions (thorough)", value: "10"},
				{label: "12 questions (long)", value: "12"},
				{label: "15 questions (max)", value: "15"},
			},
		},
		{
			label:   "Segment",
			value:   flagSegment,
			options: segmentOptions(),
		},
		{
			label: "Personas",
			value: flagPersonas,
		},
		{
			label: "Voice Output",
			value: flagTTS,
			options: []menuOption{
				{label: "Off - text only (default)", value: ""},
				{label: "Google Cloud TTS (Chirp 3 HD)", value: "google"},
				{label: "Amazon Polly (neural German voices)", value: "polly"},
				{label: "ElevenLabs (premium voices)", value: "elevenlabs"},
				{label: "Gemini (Vertex AI)", value: "gemini-vertex"},
			},
		},
		{
			label: "Output Dir",
			value: outputVal,
		},
	}

	// Start button at the end
	items = append(items, menuItem{
		label: ">>> Start Research <<<",
	})

	// Pre-select cursor position for options
	for i := range items {
		if len(items[i].options) > 0 {
			for j, opt := range items[i].options {
				if opt.value == items[i].value {
					items[i].cursor = j
					break
				}
			}
		}
	}

	return items
}

func initialTUIModel() tuiModel {
	m := tuiModel{
		items:    buildMenuItems(),
		cursor:   idxProduct,
		state:    stateMenu,
		personas: map[string]bool{},
	}
	// Pre-check personas already named on the command line
	for _, name := range strings.Split(flagPersonas, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			m.personas[name] = true
		}
	}
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) startIdx() int {
	return len(m.items) - 1
}

func (m tuiModel) isTextInput(idx int) bool {
	return idx == idxOutput
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateEditing:
			return m.updateEditing(msg)
		case statePersonaPicker:
			return m.updatePersonaPicker(msg)
		}
	}
	return m, nil
}

func (m tuiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter", " ":
		if m.cursor == m.startIdx() {
			// Validate required fields
			if m.items[idxProduct].value == "" {
				m.err = fmt.Errorf("Product is required")
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		}

		// Output dir is a text field: open inline editor
		if m.isTextInput(m.cursor) {
			m.state = stateEditing
			m.items[m.cursor].editing = true
			m.err = nil
			return m, nil
		}

		// Personas uses multi-select
		if m.cursor == idxPersonas {
			m.state = statePersonaPicker
			m.personaCursor = 0
			m.err = nil
			return m, nil
		}

		// All others: open option selector
		if len(m.items[m.cursor].options) > 0 {
			m.state = stateEditing
			m.items[m.cursor].editing = true
			m.err = nil
			return m, nil
		}
	}
	return m, nil
}

func (m tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := m.cursor
	item := &m.items[idx]

	// Text input for the output dir
	if m.isTextInput(idx) {
		switch msg.String() {
		case "enter":
			item.editing = false
			m.state = stateMenu
			// Auto-advance to next item
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil
		case "esc":
			item.editing = false
			m.state = stateMenu
			return m, nil
		case "backspace":
			if len(item.value) > 0 {
				item.value = item.value[:len(item.value)-1]
			}
			return m, nil
		case "ctrl+u":
			item.value = ""
			return m, nil
		default:
			// Accept typed characters and pasted text
			if msg.Type == tea.KeyRunes {
				item.value += string(msg.Runes)
			}
			return m, nil
		}
	}

	// Option selector for other fields
	switch msg.String() {
	case "enter", " ":
		if item.cursor >= 0 && item.cursor < len(item.options) {
			item.value = item.options[item.cursor].value
		}
		item.editing = false
		m.state = stateMenu

		// Provider change swaps the model list to that provider's
		// models
		if idx == idxProvider {
			m.items[idxModel].options = modelOptions(item.value)
			m.items[idxModel].value = defaultModel(item.value)
			m.items[idxModel].cursor = 0
		}

		// A segment replaces hand-picked personas
		if idx == idxSegment && item.value != "" {
			m.personas = map[string]bool{}
			m.items[idxPersonas].value = ""
		}

		// Auto-advance
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case "esc":
		item.editing = false
		m.state = stateMenu
		return m, nil

	case "up", "k":
		if item.cursor > 0 {
			item.cursor--
		}

	case "down", "j":
		if item.cursor < len(item.options)-1 {
			item.cursor++
		}
	}
	return m, nil
}

func (m tuiModel) updatePersonaPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Commit selections
		var selected []string
		for _, opt := range personaOptions {
			if m.personas[opt.value] {
				selected = append(selected, opt.value)
			}
		}
		m.items[idxPersonas].value = strings.Join(selected, ", ")
		// Hand-picked personas replace the segment
		if len(selected) > 0 {
			m.items[idxSegment].value = ""
			m.items[idxSegment].cursor = 0
		}
		m.state = stateMenu
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case "esc":
		m.state = stateMenu
		return m, nil

	case " ", "x":
		// Toggle current persona
		opt := personaOptions[m.personaCursor]
		m.personas[opt.value] = !m.personas[opt.value]

	case "up", "k":
		if m.personaCursor > 0 {
			m.personaCursor--
		}

	case "down", "j":
		if m.personaCursor < len(personaOptions)-1 {
			m.personaCursor++
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	// Title
	title := titleStyle.Render("zero360 Research Lab")
	header := headerBorder.Render(title)
	b.WriteString(header)
	b.WriteString("\n")

	startIdx := m.startIdx()

	for i, item := range m.items {
		isActive := m.cursor == i

		// Start button
		if i == startIdx {
			b.WriteString("\n")
			if isActive {
				b.WriteString("  " + buttonStyle.Render(" Start Research "))
			} else {
				b.WriteString("  " + buttonDimStyle.Render(" Start Research "))
			}
			b.WriteString("\n")
			continue
		}

		// Cursor indicator
		cursor := "  "
		if isActive {
			cursor = cursorStyle.Render("> ")
		}

		// Label
		label := item.label
		if item.required {
			label = label + requiredStyle.Render("*")
		}
		renderedLabel := menuLabelStyle.Render(label)

		// Value display
		var renderedValue string
		if item.editing && m.isTextInput(i) {
			// Show text input with blinking cursor
			renderedValue = menuValueStyle.Render(item.value + "_")
		} else if item.value == "" {
			// Show contextual placeholder text
			placeholder := "(not set)"
			switch i {
			case idxModel, idxSegment, idxTTS:
				// Option pickers show the default label from the
				// first option
				if len(item.options) > 0 {
					placeholder = item.options[0].label
				}
			case idxPersonas:
				placeholder = "(auto - diverse or from segment)"
			}
			renderedValue = menuValueDimStyle.Render(placeholder)
		} else {
			displayVal := item.value
			// Show friendly label for option-based items
			for _, opt := range item.options {
				if opt.value == item.value {
					displayVal = opt.label
					break
				}
			}
			renderedValue = menuValueStyle.Render(displayVal)
		}

		b.WriteString(cursor + renderedLabel + " " + renderedValue + "\n")

		// Show expanded options when editing
		if item.editing && len(item.options) > 0 && !m.isTextInput(i) {
			for j, opt := range item.options {
				if j == item.cursor {
					b.WriteString(selectedOptionStyle.Render("> "+opt.label) + "\n")
				} else {
					b.WriteString(optionStyle.Render("  "+opt.label) + "\n")
				}
			}
		}
	}

	// Persona picker overlay
	if m.state == statePersonaPicker {
		b.WriteString("\n")
		for j, opt := range personaOptions {
			checked := " "
			if m.personas[opt.value] {
				checked = "x"
			}
			prefix := "  "
			if j == m.personaCursor {
				prefix = cursorStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("  %s[%s] %s\n", prefix, checked, opt.label))
		}
	}

	// Error message
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+m.err.Error()) + "\n")
	}

	// Help text
	switch m.state {
	case stateMenu:
		b.WriteString(helpStyle.Render("  j/k or arrows to navigate | enter to edit | q to quit"))
	case stateEditing:
		if m.isTextInput(m.cursor) {
			b.WriteString(helpStyle.Render("  type value | enter to confirm | esc to cancel | ctrl+u to clear"))
		} else {
			b.WriteString(helpStyle.Render("  j/k or arrows to pick | enter to select | esc to cancel"))
		}
	case statePersonaPicker:
		b.WriteString(helpStyle.Render("  j/k or arrows to navigate | space to toggle | enter to confirm | esc to cancel"))
	}
	b.WriteString("\n")

	return b.String()
}

func runInteractiveSetup() error {
	m := initialTUIModel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tuiModel)
	if final.cancelled {
		return fmt.Errorf("cancelled")
	}
	if !final.confirmed {
		return fmt.Errorf("research cancelled")
	}

	// Apply selections to flags
	flagProduct = final.items[idxProduct].value
	flagProvider = final.items[idxProvider].value
	flagModel = final.items[idxModel].value
	flagInterviews = parseInt(final.items[idxInterviews].value, 5)
	flagQuestions = parseInt(final.items[idxQuestions].value, 8)
	flagSegment = final.items[idxSegment].value
	flagPersonas = final.items[idxPersonas].value
	flagTTS = final.items[idxTTS].value
	flagOutput = final.items[idxOutput].value

	return nil
}
