package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numbers21py/miniarcades/internal/config"
	"github.com/numbers21py/miniarcades/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [sound|haptic|animations|reset]",
	Short: "Show or toggle settings",
	Long: `Show the current settings, toggle one of them, or reset to defaults.

Examples:
  miniarcades settings
  miniarcades settings sound
  miniarcades settings reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(_ *cobra.Command, args []string) {
	mgr, err := settings.Load(config.Dir())
	if err != nil {
		fail("Error loading settings: %v", err)
	}

	if len(args) == 1 {
		switch args[0] {
		case "sound":
			err = mgr.ToggleSound()
		case "haptic":
			err = mgr.ToggleHaptic()
		case "animations":
			err = mgr.ToggleAnimations()
		case "reset":
			err = mgr.Reset()
		default:
			fail("Unknown setting %q. Use sound, haptic, animations or reset.", args[0])
		}
		if err != nil {
			fail("Error updating settings: %v", err)
		}
	}

	s := mgr.Current()
	fmt.Println("Settings:")
	fmt.Printf("  Sound:      %s\n", onOff(s.Sound))
	fmt.Printf("  Haptic:     %s\n", onOff(s.Haptic))
	fmt.Printf("  Animations: %s\n", onOff(s.Animations))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
