package ui

// spinner.go provides a blocking spinner for the CLI fetches that run before
// the TUI starts.

import (
	"context"
	"fmt"

	huhspinner "github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes action while displaying a spinner titled title.
// The action's own error is returned; a spinner failure is wrapped.
//
// Example:
//
//	var profile *models.UserProfile
//	err := RunWithSpinner(ctx, "Fetching profile...", func(ctx context.Context) error {
//	    var err error
//	    profile, err = client.FetchUserProfile(ctx, login)
//	    return err
//	})
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	var actionErr error

	err := huhspinner.New().
		Title(" " + title).
		Context(ctx).
		Action(func() {
			actionErr = action(ctx)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	return actionErr
}
