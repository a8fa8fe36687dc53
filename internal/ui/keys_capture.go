package ui

import (
	"rgbdslam/internal/config"
)

// CaptureKeys defines key bindings driving the camera and the map
type CaptureKeys struct {
	Append   KeyWithTip
	Close    KeyWithTip
	Localize KeyWithTip
	NewScan  KeyWithTip
	Record   KeyWithTip
	Stop     KeyWithTip
}

// LibraryKeys defines key bindings for saved scans and exports
type LibraryKeys struct {
	Export   KeyWithTip
	Open     KeyWithTip
	Optimize KeyWithTip
	Save     KeyWithTip
	Share    KeyWithTip
}

// newCaptureKeys creates capture key bindings
func newCaptureKeys(defaults map[string][]string, customKeys config.KeyBindingsConfig) CaptureKeys {
	return CaptureKeys{
		Append:   buildBinding("append", defaults, customKeys),
		Close:    buildBinding("close", defaults, customKeys),
		Localize: buildBinding("localize", defaults, customKeys),
		NewScan:  buildBinding("new_scan", defaults, customKeys),
		Record:   buildBinding("record", defaults, customKeys),
		Stop:     buildBinding("stop", defaults, customKeys),
	}
}

// newLibraryKeys creates library key bindings
func newLibraryKeys(defaults map[string][]string, customKeys config.KeyBindingsConfig) LibraryKeys {
	return LibraryKeys{
		Export:   buildBinding("export", defaults, customKeys),
		Open:     buildBinding("open", defaults, customKeys),
		Optimize: buildBinding("optimize", defaults, customKeys),
		Save:     buildBinding("save", defaults, customKeys),
		Share:    buildBinding("share", defaults, customKeys),
	}
}
