package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	appconfig "github.com/Iron-Ham/heistboard/internal/config"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the heistboard.

Heistboard ships the heist, vault and noir themes. Custom themes are YAML
files in ~/.config/heistboard/themes/; a theme only changes the board
chrome, squad colors are fixed.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  heistboard config theme export heist
  heistboard config theme export vault my-theme.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show information about a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom theme from the default theme",
	Long: `Create a new custom theme file in your themes directory.

Example:
  heistboard config theme create midnight
  # Creates ~/.config/heistboard/themes/midnight.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeCreate,
}

// themesDir is swapped in tests.
var themesDir = appconfig.ThemesDir

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	themeCmd.AddCommand(themeCreateCmd)
	configCmd.AddCommand(themeCmd)
}

// lookupTheme discovers custom themes and checks that name is usable,
// pointing at the theme file's load error when there is one.
func lookupTheme(name string) error {
	_, loadErrs := styles.DiscoverCustomThemes(themesDir())
	if styles.IsValidTheme(name) {
		return nil
	}
	for _, err := range loadErrs {
		if strings.HasPrefix(err.Error(), name+".yaml:") || strings.HasPrefix(err.Error(), name+".yml:") {
			return fmt.Errorf("theme '%s' exists but failed to load: %v", name, err)
		}
	}
	return fmt.Errorf("unknown theme: %s\n\nRun 'heistboard config theme list' to see available themes.\nCustom themes should be placed in: %s", name, themesDir())
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, loadErrs := styles.DiscoverCustomThemes(themesDir())
	if len(loadErrs) > 0 {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Warning: Some themes failed to load:")
		for _, err := range loadErrs {
			fmt.Fprintf(errOut, "  - %v\n", err)
		}
		fmt.Fprintln(errOut)
	}

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	customNames := styles.CustomThemeNames()
	if len(customNames) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Custom themes:")
		sort.Strings(customNames)
		for _, name := range customNames {
			theme := styles.GetCustomTheme(styles.ThemeName(name))
			if theme == nil {
				continue
			}
			if theme.Author != "" {
				fmt.Fprintf(out, "  - %s (by %s)\n", name, theme.Author)
			} else {
				fmt.Fprintf(out, "  - %s\n", name)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Custom themes directory: %s\n", themesDir())
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := lookupTheme(name); err != nil {
		return err
	}

	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := lookupTheme(name); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n\n", name)
	if styles.IsBuiltinTheme(name) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		if theme := styles.GetCustomTheme(styles.ThemeName(name)); theme != nil {
			if theme.Author != "" {
				fmt.Fprintf(out, "Author: %s\n", theme.Author)
			}
			if theme.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", theme.Description)
			}
		}
	}

	// Swatches only show when the output is a color terminal
	r := lipgloss.NewRenderer(out)
	swatch := func(hex string) string {
		return r.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + hex
	}

	p := styles.GetPalette(styles.ThemeName(name))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Colors:")
	for _, c := range []struct{ label, hex string }{
		{"Surface", p.Surface},
		{"Background", p.Background},
		{"Accent", p.Accent},
		{"Border", p.Border},
		{"Header border", p.HeaderBorder},
		{"Track", p.Track},
		{"Text", p.Text},
		{"Muted", p.Muted},
		{"Subtle", p.Subtle},
		{"Faint", p.Faint},
		{"Complete", p.Complete},
		{"Error", p.Error},
	} {
		fmt.Fprintf(out, "  %-14s %s\n", c.label+":", swatch(c.hex))
	}
	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	if name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\:*?\"<>|") {
		return fmt.Errorf("theme name contains invalid characters")
	}
	if styles.IsBuiltinTheme(name) {
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}

	dir := themesDir()
	themePath := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(themePath); err == nil {
		return fmt.Errorf("theme '%s' already exists at %s", name, themePath)
	}

	// Start from the default theme's colors
	data, err := styles.ExportTheme(styles.DefaultTheme)
	if err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}
	theme, err := styles.ParseThemeFile(data)
	if err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}
	theme.Name = capitalizeFirst(name)
	theme.Description = "A custom heistboard theme"

	if err := styles.SaveTheme(dir, name, theme); err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created new theme: %s\n\n", themePath)
	fmt.Fprintln(out, "Edit this file to customize your theme colors.")
	fmt.Fprintf(out, "To use your new theme, run:\n  heistboard config set tui.theme %s\n", name)
	return nil
}

// capitalizeFirst capitalizes the first character of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
