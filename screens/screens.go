package screens

import (
	"fmt"

	"bootui/hal"
	"bootui/ui"
)

// Screen identifiers. ui.ScreenNone (0) is reserved.
const (
	ScreenBlank ui.ScreenID = iota + 1
	ScreenFirmwareSync
	ScreenRecoverySelect
	ScreenRecoveryPhoneStep
	ScreenRecoveryDiskStep
	ScreenLanguageSelect
	ScreenDiagnostics
	ScreenDiagStorageHealth
	ScreenDiagStorageShort
	ScreenDiagStorageExtended
	ScreenDiagMemoryQuick
	ScreenDiagMemoryFull
	ScreenDebugInfo
)

// KernelParams is filled in by the UI and read by the boot-flow
// controller after the loop exits.
type KernelParams struct {
	// RecoveryRequested is set when the user confirmed booting the
	// recovery image from external media.
	RecoveryRequested bool
	// Locale is the selected message locale.
	Locale string
}

// diagTicks is how many loop ticks a simulated diagnostic takes.
const diagTicks = 150

type diagRun struct {
	ticks int
	done  bool
}

// Model owns the mutable state behind the static descriptors: the
// selected locale and the progress of the simulated diagnostics.
type Model struct {
	log     hal.Logger
	locales []string
	locale  int
	runs    map[ui.ScreenID]*diagRun
}

type Config struct {
	Log hal.Logger
	// Version is shown on the debug info screen.
	Version string
	// PolicyFlags is shown on the debug info screen.
	PolicyFlags hal.PolicyFlag
}

// New builds the screen registry and its backing model.
func New(cfg Config) (*Model, *ui.Registry) {
	m := &Model{
		log:     cfg.Log,
		locales: []string{"en-US", "de-DE", "es-ES", "fr-FR", "ja-JP"},
		runs:    make(map[ui.ScreenID]*diagRun),
	}

	langItems := make([]ui.Item, len(m.locales))
	for i := range m.locales {
		idx := i
		langItems[i] = ui.Item{
			Text: m.locales[i],
			Action: onConfirm(func(c *ui.Context) (ui.Result, error) {
				m.locale = idx
				if p, ok := c.Params.(*KernelParams); ok {
					p.Locale = m.locales[idx]
				}
				c.Back()
				return ui.Continue, nil
			}),
		}
	}

	reg := ui.NewRegistry([]*ui.Screen{
		{ID: ScreenBlank},
		{
			ID:    ScreenFirmwareSync,
			Title: "firmware_sync_title",
			Desc: []string{
				"Please do not power off your device.",
				"Your system is applying a critical update.",
			},
		},
		{
			ID:    ScreenRecoverySelect,
			Icon:  ui.IconInfo,
			Title: "rec_sel_title",
			Desc: []string{
				"Select how you'd like to recover.",
				"You can recover using a phone or an",
				"external disk.",
			},
			Items: []ui.Item{
				{Text: "Recovery using phone", Target: ScreenRecoveryPhoneStep},
				{Text: "Recovery using external disk", Target: ScreenRecoveryDiskStep},
				{Text: "Launch diagnostics", Target: ScreenDiagnostics},
				{Text: "Show debug info", Target: ScreenDebugInfo},
			},
		},
		{
			ID:    ScreenRecoveryPhoneStep,
			Icon:  ui.IconStep,
			Title: "rec_phone_title",
			Desc: []string{
				"Scan the QR code with your phone and",
				"follow the instructions.",
				"Press esc to go back.",
			},
		},
		{
			ID:    ScreenRecoveryDiskStep,
			Icon:  ui.IconStep,
			Title: "rec_disk_title",
			Desc: []string{
				"Insert your external recovery disk.",
			},
			Items: []ui.Item{
				{Text: "Boot recovery image", Action: onConfirm(m.startRecovery)},
				{Text: "Back", Action: onConfirm(back)},
			},
		},
		{
			ID:    ScreenLanguageSelect,
			Title: "language_select_title",
			Desc:  []string{"Choose your language."},
			Items: langItems,
		},
		{
			ID:    ScreenDiagnostics,
			Icon:  ui.IconInfo,
			Title: "diag_menu_title",
			Desc:  []string{"Select a diagnostic to run."},
			Items: []ui.Item{
				{Text: "Language", Target: ScreenLanguageSelect},
				{Text: "Storage health info", Target: ScreenDiagStorageHealth},
				{Text: "Storage self-test (short)", Target: ScreenDiagStorageShort},
				{Text: "Storage self-test (extended)", Target: ScreenDiagStorageExtended},
				{Text: "Memory test (quick)", Target: ScreenDiagMemoryQuick},
				{Text: "Memory test (full)", Target: ScreenDiagMemoryFull},
				{Text: "Power off", Action: onConfirm(powerOff)},
			},
		},
		{
			ID:     ScreenDiagStorageHealth,
			Title:  "diag_storage_health_title",
			Desc:   []string{"Disk 0: OK, 3% wear, 12 POH"},
			Action: m.diagAction(ScreenDiagStorageHealth),
		},
		{
			ID:     ScreenDiagStorageShort,
			Title:  "diag_storage_short_title",
			Action: m.diagAction(ScreenDiagStorageShort),
		},
		{
			ID:     ScreenDiagStorageExtended,
			Title:  "diag_storage_ext_title",
			Action: m.diagAction(ScreenDiagStorageExtended),
		},
		{
			ID:     ScreenDiagMemoryQuick,
			Title:  "diag_memory_quick_title",
			Action: m.diagAction(ScreenDiagMemoryQuick),
		},
		{
			ID:     ScreenDiagMemoryFull,
			Title:  "diag_memory_full_title",
			Action: m.diagAction(ScreenDiagMemoryFull),
		},
		{
			ID:    ScreenDebugInfo,
			Title: "debug_info_title",
			Desc: []string{
				"build: " + cfg.Version,
				fmt.Sprintf("gbb flags: %#x", uint32(cfg.PolicyFlags)),
				"Press esc to go back.",
			},
		},
	})

	return m, reg
}

// NewRendererFor wires the renderer's live status line to the model.
func NewRendererFor(disp hal.Display, m *Model) *Renderer {
	r := NewRenderer(disp)
	r.Status = m.status
	return r
}

// onConfirm gates an item action on the confirm key. Item actions run
// at the top of the dispatch cascade every tick while their item is
// focused; without the gate, merely focusing an item would fire it.
func onConfirm(a ui.Action) ui.Action {
	return func(c *ui.Context) (ui.Result, error) {
		if c.Key != hal.KeyEnter {
			return ui.Continue, nil
		}
		return a(c)
	}
}

func back(c *ui.Context) (ui.Result, error) {
	c.Back()
	return ui.Continue, nil
}

func powerOff(*ui.Context) (ui.Result, error) {
	return ui.Shutdown, nil
}

func (m *Model) startRecovery(c *ui.Context) (ui.Result, error) {
	p, ok := c.Params.(*KernelParams)
	if !ok {
		return ui.Continue, fmt.Errorf("screens: no kernel params for recovery boot")
	}
	p.RecoveryRequested = true
	if m.log != nil {
		m.log.WriteLineString("screens: recovery boot confirmed")
	}
	return ui.ExitUI, nil
}

// diagAction advances the simulated diagnostic while its screen is
// shown. Progress repaints are batched to one redraw per step.
func (m *Model) diagAction(id ui.ScreenID) ui.Action {
	return func(c *ui.Context) (ui.Result, error) {
		run := m.runs[id]
		if run == nil {
			run = &diagRun{}
			m.runs[id] = run
		}
		if run.done {
			return ui.Continue, nil
		}
		run.ticks++
		if run.ticks >= diagTicks {
			run.done = true
			return ui.Redraw, nil
		}
		// Repaint at each 10% boundary.
		if run.ticks%(diagTicks/10) == 0 {
			return ui.Redraw, nil
		}
		return ui.Continue, nil
	}
}

// status renders the progress line for diagnostic screens.
func (m *Model) status(id ui.ScreenID) string {
	run, ok := m.runs[id]
	if !ok {
		return ""
	}
	if run.done {
		return "PASSED"
	}
	pct := run.ticks * 100 / diagTicks
	return fmt.Sprintf("Running... %d%%", pct)
}

// Locale returns the selected locale tag.
func (m *Model) Locale() string { return m.locales[m.locale] }
