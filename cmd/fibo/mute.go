package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var muteCmd = &cobra.Command{
	Use:       "mute [on|off]",
	Short:     "Show or set the sound preference",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE:      runMute,
}

func runMute(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		if err := store.SaveMuted(args[0] == "on"); err != nil {
			return err
		}
	}

	muted, err := store.LoadMuted()
	if err != nil {
		return err
	}
	if muted {
		fmt.Println("Sound is off.")
	} else {
		fmt.Println("Sound is on.")
	}
	return nil
}
