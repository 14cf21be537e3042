package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/sensi-go/internal/app"
	"github.com/doeshing/sensi-go/internal/application/session"
)

// NewMuteCommand creates the mute command
func NewMuteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "mute [on|off|toggle]",
		Short:     "Show or change the sound effect preference",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{muteOn, muteOff, muteToggle},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := ""
			if len(args) == 1 {
				action = args[0]
			}
			return changeMutePreference(cmd.OutOrStdout(), container, action)
		},
	}
}

// changeMutePreference applies action and prints the resulting preference
func changeMutePreference(out io.Writer, container *app.Container, action string) error {
	if container.Session == nil {
		return errors.New(ErrSessionUnavailable)
	}

	var (
		state session.State
		err   error
	)
	switch action {
	case "":
		state = container.Session.State()
	case muteOn:
		state, err = container.Session.SetMuted(true)
	case muteOff:
		state, err = container.Session.SetMuted(false)
	case muteToggle:
		state, err = container.Session.ToggleMute()
	default:
		return fmt.Errorf("unknown mute action %q", action)
	}
	if err != nil {
		return fmt.Errorf("failed to update mute preference: %w", err)
	}

	if state.Muted {
		fmt.Fprintln(out, "Sound effects: off")
	} else {
		fmt.Fprintln(out, "Sound effects: on")
	}
	return nil
}
