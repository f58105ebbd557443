package types

import "strings"

// Size represents width and height dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type DeviceCategory string

const (
	CategoryDesktop DeviceCategory = "Desktop"
	CategoryTablet  DeviceCategory = "Tablet"
	CategoryMobile  DeviceCategory = "Mobile"
)

// DevicePreset is a named viewport the capture service can emulate.
type DevicePreset struct {
	Name     string         `json:"name"`
	Category DeviceCategory `json:"category"`
	Size
}

const DefaultDevice = "Desktop HD"

var DevicePresets = []DevicePreset{
	{Name: "Desktop HD", Category: CategoryDesktop, Size: Size{1920, 1080}},
	{Name: "Desktop", Category: CategoryDesktop, Size: Size{1440, 900}},
	{Name: "Laptop", Category: CategoryDesktop, Size: Size{1366, 768}},
	{Name: "Tablet Landscape", Category: CategoryTablet, Size: Size{1024, 768}},
	{Name: "Tablet Portrait", Category: CategoryTablet, Size: Size{768, 1024}},
	{Name: "iPad Pro 12.9", Category: CategoryTablet, Size: Size{1024, 1366}},
	{Name: "iPad Pro 11", Category: CategoryTablet, Size: Size{834, 1194}},
	{Name: "iPad", Category: CategoryTablet, Size: Size{820, 1180}},
	{Name: "iPad Mini", Category: CategoryTablet, Size: Size{744, 1133}},
	{Name: "iPhone 14 Pro Max", Category: CategoryMobile, Size: Size{430, 932}},
	{Name: "iPhone 14 Pro", Category: CategoryMobile, Size: Size{393, 852}},
	{Name: "iPhone 14", Category: CategoryMobile, Size: Size{390, 844}},
	{Name: "iPhone SE", Category: CategoryMobile, Size: Size{375, 667}},
	{Name: "Android Large", Category: CategoryMobile, Size: Size{412, 915}},
	{Name: "Android Medium", Category: CategoryMobile, Size: Size{393, 873}},
	{Name: "Android Small", Category: CategoryMobile, Size: Size{360, 800}},
}

// FindDevicePreset looks a preset up by name, ignoring case and
// treating dashes and underscores as spaces.
func FindDevicePreset(name string) (DevicePreset, bool) {
	want := normalizeDeviceName(name)
	for _, p := range DevicePresets {
		if normalizeDeviceName(p.Name) == want {
			return p, true
		}
	}
	return DevicePreset{}, false
}

// DevicePresetsByCategory groups presets in display order.
func DevicePresetsByCategory() map[DeviceCategory][]DevicePreset {
	groups := make(map[DeviceCategory][]DevicePreset)
	for _, p := range DevicePresets {
		groups[p.Category] = append(groups[p.Category], p)
	}
	return groups
}

func DeviceCategories() []DeviceCategory {
	return []DeviceCategory{CategoryDesktop, CategoryTablet, CategoryMobile}
}

func normalizeDeviceName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
