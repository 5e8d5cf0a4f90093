package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/thesavant42/gitsome-header/internal/api"
)

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		// Keep printable characters and normal whitespace (space, tab, newline)
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// validateLogin is the input validator for the login prompt
func validateLogin(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("login cannot be empty")
	}
	if _, err := api.ParseLogin(sanitizeInput(s)); err != nil {
		return err
	}
	return nil
}

// PromptForLogin asks for the GitHub user whose header should be shown.
// Accepts a bare login, @login or a profile URL.
func PromptForLogin() (string, error) {
	var input string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub User").
				Description("Login, @login or profile URL (e.g., torvalds)").
				Placeholder("login").
				Value(&input).
				Validate(validateLogin),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return api.ParseLogin(sanitizeInput(input))
}

// PromptForExportFilename asks for a Markdown export filename
func PromptForExportFilename(defaultName string) (string, error) {
	var filename string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Export Filename").
				Description("Enter the filename for the markdown export").
				Placeholder(defaultName).
				Value(&filename),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return normalizeExportFilename(sanitizeInput(filename), defaultName), nil
}

// normalizeExportFilename falls back to defaultName and adds a .md extension
func normalizeExportFilename(filename, defaultName string) string {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		filename = defaultName
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".md") {
		filename += ".md"
	}
	return filename
}
