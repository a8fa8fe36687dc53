package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"rgbdslam/internal/config"
)

// SettingsCmd shows the settings
type SettingsCmd struct {
	Path SettingsPathCmd `cmd:"path" help:"Print the settings file location"`
	Show SettingsShowCmd `cmd:"show" help:"Show the effective settings and engine parameters" default:"1"`
}

// SettingsPathCmd prints the settings file location
type SettingsPathCmd struct{}

// Run executes the path command
func (s *SettingsPathCmd) Run(cli *CLI) error {
	fmt.Println(config.GetSettingsPath())
	return nil
}

// SettingsShowCmd displays the effective settings
type SettingsShowCmd struct {
	Format     string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Parameters bool   `help:"Show the engine parameters derived from the settings instead"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings.Settings()

	var values map[string]any
	if s.Parameters {
		values = make(map[string]any)
		for k, v := range settings.Parameters() {
			values[k] = v
		}
	} else {
		var err error
		if values, err = settingsMap(config.WithDefaults(settings)); err != nil {
			return err
		}
		values["data_dir"] = cli.Container.ScansDir
	}

	if s.Format == "json" {
		data, err := json.MarshalIndent(map[string]any{
			"settings_file": config.GetSettingsPath(),
			"values":        values,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Settings file: %s\n\n", config.GetSettingsPath())

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Value"})
	for _, k := range keys {
		t.AppendRow(table.Row{k, formatValue(values[k])})
	}
	t.Render()
	return nil
}

// settingsMap flattens settings to their JSON names
func settingsMap(settings config.Settings) (map[string]any, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return values, nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any, []any:
		data, _ := json.Marshal(v)
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}
