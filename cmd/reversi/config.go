package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-reversi/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config file",
	Long: `Write the built-in defaults to a config file you can edit.
Without a path, the file goes to the XDG config directory
(for example ~/.config/reversi/reversi.yaml).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		written, err := config.WriteDefault(path, flagConfigForce)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %s\n", written)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show which user config file is in effect",
	Run: func(_ *cobra.Command, _ []string) {
		if flagConfig != "" {
			fmt.Println(flagConfig)
			return
		}
		if p := config.UserConfigPath(); p != "" {
			fmt.Println(p)
			return
		}
		fmt.Println("No user config file; built-in defaults are used.")
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings after flags are applied",
	Run: func(_ *cobra.Command, _ []string) {
		settings, err := loadSettings()
		if err != nil {
			fail("%v", err)
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			fail("encoding settings: %v", err)
		}
		enc.Close()
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagConfigForce, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}
