package commands

import (
	"os"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/config"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
)

type AddAuthTokenRequest struct {
	Token   string
	Keyring bool
}

// AddAuthTokenCommand stores the API key in the config file or, with
// Keyring set, in the OS keyring.
func AddAuthTokenCommand(rt *Runtime, req AddAuthTokenRequest) *CommandResponse {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return NewErrorResponse(types.InvalidOption("", "token cannot be empty"))
	}

	location := rt.ConfigPath
	if req.Keyring {
		if err := config.KeyringSet(token); err != nil {
			return NewErrorResponse(err)
		}
		location = "keyring"
	} else {
		rt.Config.Auth.APIKey = token
		if err := rt.Config.Save(rt.ConfigPath); err != nil {
			return NewErrorResponse(err)
		}
	}

	masked := config.MaskAPIKey(token)
	rt.Printf("%s %s\n", ui.Success(ui.CheckMark), ui.Bold("Authentication token saved"))
	rt.Printf("  Token: %s\n", ui.Dim(masked))
	rt.Printf("  Where: %s\n", location)
	rt.Printf("\nYou can now run %s to capture screenshots.\n", ui.Accent("allscreenshots <url>"))

	return NewSuccessResponse(map[string]string{"token": masked, "location": location})
}

// ConfigView is the config as shown to the user, with the key masked.
type ConfigView struct {
	Path      string                `json:"path"`
	APIKey    string                `json:"apiKey,omitempty"`
	KeySource config.KeySource      `json:"keySource,omitempty"`
	Defaults  config.DefaultsConfig `json:"defaults"`
	Display   config.DisplayConfig  `json:"display"`
}

func ConfigShowCommand(rt *Runtime) *CommandResponse {
	view := ConfigView{
		Path:     rt.ConfigPath,
		Defaults: rt.Config.Defaults,
		Display:  rt.Config.Display,
	}
	// stored keys only, never the --api-key flag
	if key, source, err := config.ResolveAPIKey("", rt.Config); err == nil {
		view.APIKey = config.MaskAPIKey(key)
		view.KeySource = source
	}

	rt.Printf("%s\n\n", ui.Title("Current Configuration"))
	rt.Println(ui.Accent("[auth]"))
	switch view.KeySource {
	case "":
		rt.Printf("  api_key = %s\n", ui.Dim("(not set)"))
	case config.SourceConfig:
		rt.Printf("  api_key = %q\n", view.APIKey)
	default:
		rt.Printf("  api_key = %q %s\n", view.APIKey, ui.Dim("(from "+string(view.KeySource)+")"))
	}

	rt.Printf("\n%s\n", ui.Accent("[defaults]"))
	rt.Printf("  device = %q\n", view.Defaults.Device)
	rt.Printf("  format = %q\n", view.Defaults.Format)
	rt.Printf("  output_dir = %q\n", view.Defaults.OutputDir)
	rt.Printf("  display = %t\n", view.Defaults.Display)

	rt.Printf("\n%s\n", ui.Accent("[display]"))
	rt.Printf("  protocol = %q\n", view.Display.Protocol)
	rt.Printf("  width = %d\n", view.Display.Width)
	rt.Printf("  height = %d\n", view.Display.Height)

	return NewSuccessResponse(view)
}

func ConfigPathCommand(rt *Runtime) *CommandResponse {
	_, err := os.Stat(rt.ConfigPath)
	exists := err == nil

	rt.Println(rt.ConfigPath)
	if exists {
		rt.Println(ui.Dim("(file exists)"))
	} else {
		rt.Println(ui.Dim("(file does not exist yet)"))
	}
	return NewSuccessResponse(map[string]interface{}{"path": rt.ConfigPath, "exists": exists})
}

// RemoveAuthTokenCommand clears the key from the config file and the
// keyring.
func RemoveAuthTokenCommand(rt *Runtime) *CommandResponse {
	removed := []string{}

	if rt.Config.Auth.APIKey != "" {
		rt.Config.Auth.APIKey = ""
		if err := rt.Config.Save(rt.ConfigPath); err != nil {
			return NewErrorResponse(err)
		}
		removed = append(removed, "config")
	}

	if _, err := config.KeyringGet(); err == nil {
		if err := config.KeyringDelete(); err != nil {
			return NewErrorResponse(err)
		}
		removed = append(removed, "keyring")
	}

	if len(removed) == 0 {
		rt.Println(ui.Dim("No API key is stored."))
	} else {
		rt.Printf("%s Authentication token removed from %s\n", ui.Warn(ui.CheckMark), strings.Join(removed, " and "))
	}
	if os.Getenv(config.EnvAPIKey) != "" {
		rt.Printf("\n%s\n", ui.Dim("Note: "+config.EnvAPIKey+" is set and will still be used."))
	}

	return NewSuccessResponse(map[string]interface{}{"removed": removed})
}

func ConfigSetCommand(rt *Runtime, key, value string) *CommandResponse {
	if key == "auth.api_key" {
		return NewErrorResponse(types.InvalidOption("", "use 'config add-authtoken' to set the API key"))
	}
	if err := rt.Config.Set(key, value); err != nil {
		return NewErrorResponse(err)
	}
	if err := rt.Config.Save(rt.ConfigPath); err != nil {
		return NewErrorResponse(err)
	}

	stored, _ := rt.Config.Get(key)
	rt.Printf("%s Set %s = %s\n", ui.Success(ui.CheckMark), ui.Accent(key), stored)
	return NewSuccessResponse(map[string]string{"key": key, "value": stored})
}

func ConfigGetCommand(rt *Runtime, key string) *CommandResponse {
	value, err := rt.Config.Get(key)
	if err != nil {
		return NewErrorResponse(err)
	}
	if value == "" {
		rt.Println(ui.Dim("(not set)"))
	} else {
		rt.Println(value)
	}
	return NewSuccessResponse(map[string]string{"key": key, "value": value})
}
