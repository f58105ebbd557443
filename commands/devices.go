package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
)

// DevicesCommand lists the device presets grouped by category
func DevicesCommand(rt *Runtime) *CommandResponse {
	groups := types.DevicePresetsByCategory()

	if !rt.JSON {
		fmt.Fprintf(rt.Out, "%s\n", ui.Title("Device Presets"))
		for _, category := range types.DeviceCategories() {
			fmt.Fprintf(rt.Out, "\n%s\n", ui.Bold(string(category)))
			w := tabwriter.NewWriter(rt.Out, 0, 0, 3, ' ', 0)
			for _, p := range groups[category] {
				marker := " "
				if p.Name == rt.Config.Defaults.Device {
					marker = ui.Success("*")
				}
				fmt.Fprintf(w, " %s %s\t%dx%d\n", marker, p.Name, p.Width, p.Height)
			}
			w.Flush()
		}
		fmt.Fprintf(rt.Out, "\n%s\n", ui.Dim("Use with: allscreenshots capture <url> --device \"iPhone 14\""))
	}

	return NewSuccessResponse(map[string]interface{}{
		"devices": types.DevicePresets,
	})
}
