package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
	"github.com/kannan/lingora/internal/tui/styles"
	"github.com/kannan/lingora/internal/workspace"
)

var stateColors = map[State]lipgloss.Color{
	StateStarting:      styles.Muted,
	StateReady:         styles.Success,
	StateReconfiguring: styles.Primary,
	StateExecuting:     styles.Accent,
	StateError:         styles.Danger,
	StateExiting:       styles.Muted,
}

// View renders the current screen.
func (m Model) View() string {
	if m.state == StateExiting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.viewHeader())
	sb.WriteString("\n\n")

	switch m.screen {
	case ScreenLocales:
		sb.WriteString(m.viewLocales())
	case ScreenIssues:
		sb.WriteString(m.viewIssues())
	default:
		sb.WriteString(m.viewSummary())
	}
	sb.WriteString("\n")

	switch {
	case m.state == StateReconfiguring:
		sb.WriteString(styles.PromptBoxStyle.Render(m.input.View()))
		sb.WriteString("\n")
	case m.state == StateError && m.err != nil:
		sb.WriteString(styles.ErrorBoxStyle.Render(renderError(m.err)))
		sb.WriteString("\n")
	case m.execErr != nil:
		sb.WriteString(styles.ErrorStyle.Render("✗ " + m.execErr.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.FooterStyle.Render(styles.RenderHelp(m.helpBindings())))

	return sb.String()
}

// viewHeader renders the banner, state badge and screen tabs.
func (m Model) viewHeader() string {
	title := styles.BannerStyle.Render(app.GetBanner())
	badge := styles.Badge(m.state.String(), stateColors[m.state])
	line := title + "  " + badge
	if m.running {
		line += " " + m.spinner.View()
	}

	tabs := make([]string, 0, len(Screens))
	for i, s := range Screens {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.screen {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}

	return line + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewSummary renders the configuration and the result totals.
func (m Model) viewSummary() string {
	var sb strings.Builder

	sb.WriteString(styles.TitleStyle.Render("Configuration"))
	sb.WriteString("\n")
	for _, row := range m.cfg.Summary() {
		sb.WriteString(fmt.Sprintf("  %-15s %s\n", row[0]+":", truncate(row[1], m.maxWidth(20))))
	}
	for _, w := range m.cfg.Warnings() {
		sb.WriteString(styles.WarningStyle.Render("  ⚠ "+w) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.TitleStyle.Render("Last run"))
	sb.WriteString("\n")

	if m.result == nil {
		sb.WriteString(styles.MutedStyle().Render("  No results yet."))
		sb.WriteString("\n")
		return styles.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
	}

	res := m.result
	sb.WriteString(fmt.Sprintf("  %-15s %d\n", "Locales:", len(res.Documents)))
	sb.WriteString(fmt.Sprintf("  %-15s %d\n", "Variants:", len(res.DocumentsWithRole(workspace.RoleVariant))))
	sb.WriteString(fmt.Sprintf("  %-15s %d\n", "Orphans:", len(res.DocumentsWithRole(workspace.RoleOrphan))))
	sb.WriteString(fmt.Sprintf("  %-15s %d\n", "Files:", res.FileCount()))
	sb.WriteString(fmt.Sprintf("  %-15s %d\n", "Rust files:", len(res.RustFiles)))
	if res.OK() {
		sb.WriteString("  " + styles.SuccessStyle.Render("✓ No issues found") + "\n")
	} else {
		sb.WriteString("  " + styles.ErrorStyle.Render(fmt.Sprintf("✗ %d issue(s)", len(res.Issues))) + "\n")
	}
	if res.Canonical != m.cfg.Canonical() {
		sb.WriteString(styles.SubtitleStyle.Render("  (from the previous configuration)") + "\n")
	}

	return styles.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// viewLocales renders the documents of the last run grouped by role.
func (m Model) viewLocales() string {
	if m.result == nil {
		return styles.MutedStyle().Render("No results yet.") + "\n"
	}
	if len(m.result.Documents) == 0 {
		return styles.MutedStyle().Render("No translation files found.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("  %-14s %-10s %s", "LOCALE", "ROLE", "FILES")))
	sb.WriteString("\n")
	for _, d := range m.result.Documents {
		line := fmt.Sprintf("  %-14s %-10s %s", d.Locale, d.Role, strings.Join(d.Files, ", "))
		sb.WriteString(roleStyle(d.Role).Render(truncate(line, m.maxWidth(0))))
		sb.WriteString("\n")
	}
	return sb.String()
}

// viewIssues renders the findings of the last run.
func (m Model) viewIssues() string {
	if m.result == nil {
		return styles.MutedStyle().Render("No results yet.") + "\n"
	}
	if m.result.OK() {
		return styles.SuccessStyle.Render("✓ No issues found") + "\n"
	}

	var sb strings.Builder
	for _, is := range m.result.Issues {
		sb.WriteString(styles.ErrorStyle.Render("✗ " + string(is.Kind)))
		sb.WriteString(" ")
		sb.WriteString(is.Subject)
		sb.WriteString("\n")
		sb.WriteString(styles.SubtitleStyle.Render("    " + is.Message))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) helpBindings() []styles.KeyBinding {
	switch m.state {
	case StateReconfiguring:
		return []styles.KeyBinding{{Key: "Enter", Desc: "Apply"}, {Key: "Esc", Desc: "Cancel"}}
	case StateError:
		return []styles.KeyBinding{{Key: "Enter", Desc: "Dismiss"}, {Key: ":", Desc: "Edit"}, {Key: "Q", Desc: "Quit"}}
	}
	return []styles.KeyBinding{
		{Key: ":", Desc: "Edit"},
		{Key: "R", Desc: "Refresh"},
		{Key: "Tab", Desc: "Screen"},
		{Key: "Q", Desc: "Quit"},
	}
}

func roleStyle(r workspace.Role) lipgloss.Style {
	switch r {
	case workspace.RoleCanonical:
		return lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	case workspace.RolePrimary:
		return lipgloss.NewStyle().Foreground(styles.Secondary)
	case workspace.RoleOrphan:
		return lipgloss.NewStyle().Foreground(styles.Warning)
	default:
		return lipgloss.NewStyle()
	}
}

// renderError formats a rejected reconfiguration for the error box.
func renderError(err error) string {
	var usageErr *app.UsageError
	var validationErr *config.ValidationError
	switch {
	case errors.As(err, &usageErr):
		return styles.ErrorStyle.Render("✗ "+usageErr.Err.Error()) + "\n\n" +
			styles.MutedStyle().Render(strings.TrimRight(usageErr.Usage, "\n"))
	case errors.As(err, &validationErr):
		return styles.ErrorStyle.Render(strings.TrimRight(validationErr.String(), "\n"))
	default:
		return styles.ErrorStyle.Render("✗ " + err.Error())
	}
}

// maxWidth is the room left on a line after reserve columns, or no limit
// before the terminal size is known.
func (m Model) maxWidth(reserve int) int {
	if m.width == 0 {
		return 0
	}
	return max(m.width-reserve, 10)
}

// Helpers

// truncate shortens s to at most max terminal cells.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	return ansi.Truncate(s, max, "...")
}
