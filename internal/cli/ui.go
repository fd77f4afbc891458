package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1).
		MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2)

	analysisStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(1, 2).
		Width(80)

	warningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := `
███████╗██╗  ██╗ ██████╗ ██╗   ██╗ █████╗ ███╗   ██╗████████╗
██╔════╝╚██╗██╔╝██╔═══██╗██║   ██║██╔══██╗████╗  ██║╚══██╔══╝
█████╗   ╚███╔╝ ██║   ██║██║   ██║███████║██╔██╗ ██║   ██║
██╔══╝   ██╔██╗ ██║▄▄ ██║██║   ██║██╔══██║██║╚██╗██║   ██║
██║     ██╔╝ ██╗╚██████╔╝╚██████╔╝██║  ██║██║ ╚████║   ██║
╚═╝     ╚═╝  ╚═╝ ╚══▀▀═╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝   ╚═╝

        📈 LLM-Assisted Forex Quantitative Analysis 📈
`

	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Align(lipgloss.Center).
		Width(80)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Println()
	fmt.Println()
}

// DisplayAnalysis renders one analysis result inside a framed box. A
// glyph-prefixed failure string is shown in the warning color instead.
func DisplayAnalysis(symbol, title, result string) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s — %s", symbol, title)))
	if strings.HasPrefix(result, "⚠️") {
		fmt.Println(warningStyle.Render(result))
		return
	}
	fmt.Println(analysisStyle.Render(result))
}

// DisplayReport renders a full markdown report, highlighting the section
// headings.
func DisplayReport(report string) {
	for _, line := range strings.Split(report, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			fmt.Println(titleStyle.Render(strings.TrimPrefix(line, "# ")))
		case strings.HasPrefix(line, "## "):
			fmt.Println(sectionStyle.Render(line))
		default:
			fmt.Println(line)
		}
	}
}

// DisplayError prints an error in the error color.
func DisplayError(err error) {
	fmt.Println(errorStyle.Render("❌ " + err.Error()))
}
