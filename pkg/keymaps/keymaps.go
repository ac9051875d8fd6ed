package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":       {"ctrl+b", "show/hide commands"},
	"QuitApp":        {"q", "quit"},
	"ToggleStatus":   {"space", "toggle status"},
	"AddTask":        {"a", "add task"},
	"AddNote":        {"n", "add note"},
	"DeleteTask":     {"d", "delete task"},
	"ClearCompleted": {"c", "clear completed"},
	"ToggleTimeline": {"enter", "show/hide timeline"},
	"Export":         {"x", "export worklog csv"},
	"Backup":         {"b", "back up selected task"},
}

type KeyMap struct {
	ShowHelp       key.Binding
	QuitApp        key.Binding
	ToggleStatus   key.Binding
	AddTask        key.Binding
	AddNote        key.Binding
	DeleteTask     key.Binding
	ClearCompleted key.Binding
	ToggleTimeline key.Binding
	Export         key.Binding
	Backup         key.Binding
}

// BuildKeyMap applies config overrides on top of the defaults. Override keys
// are matched case-insensitively since viper lowercases map keys.
func BuildKeyMap(configOverrides map[string]string) KeyMap {
	overrides := make(map[string]string, len(configOverrides))
	for action, keyStr := range configOverrides {
		overrides[strings.ToLower(action)] = keyStr
	}

	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := overrides[strings.ToLower(action)]; exists && override != "" {
			keyStr = override
		}
		binding := parseKeyBinding(keyStr, def.DefaultKey, def.Help)

		switch action {
		case "ShowHelp":
			km.ShowHelp = binding
		case "QuitApp":
			km.QuitApp = binding
		case "ToggleStatus":
			km.ToggleStatus = binding
		case "AddTask":
			km.AddTask = binding
		case "AddNote":
			km.AddNote = binding
		case "DeleteTask":
			km.DeleteTask = binding
		case "ClearCompleted":
			km.ClearCompleted = binding
		case "ToggleTimeline":
			km.ToggleTimeline = binding
		case "Export":
			km.Export = binding
		case "Backup":
			km.Backup = binding
		}
	}
	return km
}

// ShortHelp lists the bindings shown in the status bar.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.AddTask, km.AddNote, km.ToggleStatus, km.DeleteTask, km.ToggleTimeline, km.ShowHelp, km.QuitApp}
}

// FullHelp lists every binding, grouped for the help screen.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.AddTask, km.AddNote, km.ToggleStatus, km.DeleteTask, km.ClearCompleted},
		{km.ToggleTimeline, km.Export, km.Backup, km.ShowHelp, km.QuitApp},
	}
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	var keys []string
	for _, k := range strings.Split(keyStr, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		keys = append(keys, k)
		// Some terminals report the space bar as a literal space.
		if k == "space" {
			keys = append(keys, " ")
		}
	}
	if len(keys) == 0 {
		keys = []string{defaultKey}
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
