package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/parallax-dev/parallax/internal/config"
	"github.com/parallax-dev/parallax/internal/editor"
	"github.com/parallax-dev/parallax/internal/errors"
)

var (
	initRoots         []string
	initEditor        string
	initWorkspaceRoot string
	initForce         bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, create or check the settings file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings and file locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file",
	Long: `Writes settings.toml with the given values, falling back to the
defaults. Refuses to overwrite an existing file unless --force is given.

Known editors: ` + knownEditors(),
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	configInitCmd.Flags().StringSliceVar(&initRoots, "root", nil, "Project root to scan for repositories (repeatable)")
	configInitCmd.Flags().StringVar(&initEditor, "editor", "", "Editor command used to open workspaces")
	configInitCmd.Flags().StringVar(&initWorkspaceRoot, "workspace-root", "", "Directory that holds workspaces")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing settings file")

	configCmd.AddCommand(configShowCmd, configInitCmd, configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func knownEditors() string {
	names := make([]string, len(editor.Known))
	for i, o := range editor.Known {
		names[i] = fmt.Sprintf("%s (%s)", o.Name, o.Command)
	}
	return strings.Join(names, ", ")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	p := paths()
	res := config.LoadSettings(p.SettingsFile)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "# settings: %s\n", p.SettingsFile)
	fmt.Fprintf(out, "# metadata: %s\n", p.MetadataFile)
	fmt.Fprintf(out, "# history:  %s\n", p.HistoryFile)
	if !config.Exists(p.SettingsFile) {
		fmt.Fprintln(out, "# (no settings file, showing defaults)")
	}
	if res.Issue != nil {
		logWarning("Settings could not be used: %v", res.Issue)
	}
	return toml.NewEncoder(out).Encode(res.Settings)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	p := paths()
	if config.Exists(p.SettingsFile) && !initForce {
		return errors.ConfigError(fmt.Sprintf("%s already exists (use --force to overwrite)", p.SettingsFile), nil)
	}

	s := config.DefaultSettings()
	if len(initRoots) > 0 {
		s.RootPaths = initRoots
	}
	if initEditor != "" {
		s.Editor = initEditor
		if _, ok := editor.Lookup(initEditor); !ok {
			logWarning("%q is not a known editor; it will be run as a command", initEditor)
		}
	}
	if initWorkspaceRoot != "" {
		s.WorkspaceRoot = initWorkspaceRoot
	}

	if _, err := config.Save(p.SettingsFile, s); err != nil {
		return errors.ConfigError("invalid settings", err)
	}
	logSuccess("Wrote %s", p.SettingsFile)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	p := paths()
	if _, err := os.Stat(p.SettingsFile); os.IsNotExist(err) {
		logInfo("No settings file at %s; defaults are in use.", p.SettingsFile)
	}

	res := config.LoadSettings(p.SettingsFile)
	if res.Issue != nil {
		return errors.ConfigError("settings file is unusable", res.Issue)
	}
	if _, err := res.Settings.Validated(); err != nil {
		return errors.ConfigError("invalid settings", err)
	}
	logSuccess("Settings are valid")
	return nil
}
