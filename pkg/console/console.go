package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// DataError is a structured dataset error with enough position information
// to point at the offending entry and field.
type DataError struct {
	File    string
	Entry   int    // index of the entry in the data array, -1 for document-level errors
	Field   string // JSON path of the failing field within the entry, may be empty
	Type    string // "error", "warning", "info"
	Message string
	Hint    string // optional hint for fixing the error
}

// Styles for different message types
var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	hintStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#50FA7B"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))
)

// isTTY checks if stdout is a terminal
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// applyStyle conditionally applies styling based on TTY status
func applyStyle(style lipgloss.Style, text string) string {
	if isTTY() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to a relative path from the current working directory
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}

	return relPath
}

// FormatDataError formats a DataError as file:entry[.field]: type: message
// with an optional hint line.
func FormatDataError(err DataError) string {
	var output strings.Builder

	var typeStyle lipgloss.Style
	var prefix string
	switch err.Type {
	case "warning":
		typeStyle = warningStyle
		prefix = "warning"
	case "info":
		typeStyle = infoStyle
		prefix = "info"
	default:
		typeStyle = errorStyle
		prefix = "error"
	}

	if err.File != "" {
		location := ToRelativePath(err.File)
		if err.Entry >= 0 {
			location = fmt.Sprintf("%s: entry %d", location, err.Entry)
			if err.Field != "" {
				location += ", field " + err.Field
			}
		}
		output.WriteString(applyStyle(filePathStyle, location+":"))
		output.WriteString(" ")
	}

	output.WriteString(applyStyle(typeStyle, prefix+":"))
	output.WriteString(" ")
	output.WriteString(err.Message)
	output.WriteString("\n")

	if err.Hint != "" {
		output.WriteString(applyStyle(hintStyle, "hint: "))
		output.WriteString(err.Hint)
		output.WriteString("\n")
	}

	return output.String()
}

// FormatSuccessMessage formats a success message with styling
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

// FormatInfoMessage formats an informational message
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

// FormatWarningMessage formats a warning message
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

// FormatErrorMessage formats a simple error message (for stderr output)
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// FormatCountMessage formats a count/numeric status message
func FormatCountMessage(message string) string {
	countStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#8BE9FD"))

	return applyStyle(countStyle, "📊 ") + message
}

// Table rendering styles
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#BD93F9"))

	tableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2"))

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6272A4"))

	tableSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#44475A"))
)

// TableConfig represents configuration for table rendering
type TableConfig struct {
	Headers []string
	Rows    [][]string
	Title   string
}

// RenderTable renders a formatted table using lipgloss
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		return ""
	}

	var output strings.Builder

	if config.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))
		output.WriteString(applyStyle(titleStyle, config.Title))
		output.WriteString("\n")
	}

	// Column widths from headers and cell contents
	colWidths := make([]int, len(config.Headers))
	for i, header := range config.Headers {
		colWidths[i] = len(header)
	}
	for _, row := range config.Rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	output.WriteString(renderTableRow(config.Headers, colWidths, tableHeaderStyle))
	output.WriteString("\n")

	separatorChars := make([]string, len(config.Headers))
	for i, width := range colWidths {
		separatorChars[i] = strings.Repeat("-", width)
	}
	output.WriteString(renderTableRow(separatorChars, colWidths, tableSeparatorStyle))
	output.WriteString("\n")

	for _, row := range config.Rows {
		output.WriteString(renderTableRow(row, colWidths, tableCellStyle))
		output.WriteString("\n")
	}

	return output.String()
}

// renderTableRow renders a single table row with proper spacing
func renderTableRow(cells []string, colWidths []int, style lipgloss.Style) string {
	var row strings.Builder

	for i, cell := range cells {
		if i < len(colWidths) {
			paddedCell := fmt.Sprintf("%-*s", colWidths[i], cell)
			row.WriteString(applyStyle(style, paddedCell))

			if i < len(cells)-1 {
				row.WriteString(applyStyle(tableBorderStyle, " | "))
			}
		}
	}

	return row.String()
}
