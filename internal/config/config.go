package config

import "sync"

// RenderSettings holds toggles that change while the loop runs
type RenderSettings struct {
	mu        sync.RWMutex
	wireframe bool
	fpsLimit  int
	showHUD   bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit: 120,
	showHUD:  true,
}

// ApplyRender seeds the runtime toggles from the loaded settings
func ApplyRender(s Settings) {
	globalRenderSettings.mu.Lock()
	globalRenderSettings.wireframe = s.Window.Wireframe
	globalRenderSettings.showHUD = s.Render.ShowHUD
	globalRenderSettings.mu.Unlock()
	SetFPSLimit(s.Render.FPSLimit)
}

// GetWireframeMode reports whether polygons are drawn as lines
func GetWireframeMode() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframeMode flips wireframe rendering and returns the new state
func ToggleWireframeMode() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}

// GetFPSLimit returns the frame cap; 0 means uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap, clamped to [0, 1000]
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRenderSettings.fpsLimit = limit
}

func GetShowHUD() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.showHUD
}

func ToggleHUD() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.showHUD = !globalRenderSettings.showHUD
	return globalRenderSettings.showHUD
}
