// internal/memmap/table.go
package memmap

// Memory geometry constants. These values define the protocol and MUST
// NOT be configurable.

// WindowOffset is the board address where the readable window starts.
const WindowOffset = 5

// WindowLength covers every baseline field (models 1-4).
const WindowLength = 215

// ExtendedWindowLength covers the relocated model-5+ block as well.
const ExtendedWindowLength = 280

// Model id bounds as reported by the board.
const (
	ModelMin = 1
	ModelMax = 8
)

// Model5Plus is the first model id using the relocated field block.
const Model5Plus = 5

// modelNames maps the board-reported model id to a display name.
var modelNames = map[int]string{
	1: "Baby T Zero 230V",
	2: "Baby T Plus 230V",
	3: "Baby T Zero 120V",
	4: "Baby T Plus 120V",
	5: "Barista T 2 Groups",
	6: "Barista T 3 Groups",
	7: "Big Dream 2 Groups",
	8: "Big Dream 3 Groups",
}

// ModelName returns the display name for a model id.
func ModelName(id int) string {
	if n, ok := modelNames[id]; ok {
		return n
	}
	return "Unknown Model"
}

// GroupCount returns how many brew groups a model id implies. The
// authoritative count is the num_groups field in the image; this is the
// static fallback when no image is available.
func GroupCount(id int) int {
	switch id {
	case 5, 7:
		return 2
	case 6, 8:
		return 3
	default:
		return 1
	}
}

func lim(min, max uint32) *Limit { return &Limit{Min: min, Max: max} }

// Table returns the published memory map. Offsets are absolute board
// addresses; AltOffset entries are the model-5+ relocations of the
// temperature/dose/pre-infusion settings into the 237-282 window.
func Table() []Field {
	return []Field{
		// ---- IDENTITY / GLOBAL ----
		{Name: "model", Offset: 76, Length: 1, Encoding: U8, Access: ReadOnly, Scope: ScopeAll},
		{Name: "language", Offset: 36, Length: 1, Encoding: U8, Scope: ScopeAll,
			Enum: map[uint32]string{1: "lang1", 2: "lang2"}},
		{Name: "num_groups", Offset: 88, Length: 1, Encoding: U8, Access: ReadOnly, Scope: ScopeAll},
		{Name: "water_connection", Offset: 87, Length: 1, Encoding: U8, Scope: ScopeAll,
			Enum: map[uint32]string{0: "direct", 1: "tank"}},

		// ---- MACHINE STATES ----
		{Name: "power_state", Offset: 132, Length: 1, Encoding: U8, Scope: ScopeAll,
			Enum: map[uint32]string{4: "off", 6: "on"}},
		{Name: "steam_state", Offset: 86, Length: 1, Encoding: U8, Bool: true, Scope: ScopeAll},
		{Name: "coffee_group_state", Offset: 124, Length: 1, Encoding: U8, Bool: true,
			Access: ReadOnly, Scope: ScopeAll},

		// ---- TEMPERATURES ----
		{Name: "temperature_unit", Offset: 52, Length: 1, Encoding: U8, Scope: ScopeAll,
			Enum: map[uint32]string{0: "celsius", 1: "fahrenheit"}},
		{Name: "coffee_temperature", Offset: 53, Length: 2, Encoding: U16LE, Scale: 10,
			Scope: ScopeAll, AltOffset: 237, Limit: lim(800, 1100)},
		{Name: "steam_temperature", Offset: 63, Length: 2, Encoding: U16LE, Scale: 10,
			Scope: ScopeAll, AltOffset: 239, Limit: lim(1100, 1300)},
		{Name: "offset_temperature", Offset: 77, Length: 2, Encoding: U16LE, Scale: 10,
			Scope: ScopeAll, AltOffset: 241},

		// ---- STANDBY (eco mode, home models only) ----
		{Name: "standby_time", Offset: 79, Length: 1, Encoding: U8, Scope: ScopeBaseline},
		{Name: "standby_temperature", Offset: 82, Length: 2, Encoding: U16LE, Scale: 10,
			Scope: ScopeBaseline},

		// ---- DOSES (ml, stored doubled) ----
		{Name: "flush_enabled", Offset: 43, Length: 1, Encoding: U8, Bool: true, Scope: ScopeAll},
		{Name: "dose_S1", Offset: 91, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeAll, AltOffset: 245},
		{Name: "dose_S2", Offset: 93, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeAll, AltOffset: 247},
		{Name: "dose_L1", Offset: 95, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeAll, AltOffset: 249},
		{Name: "dose_L2", Offset: 97, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeAll, AltOffset: 251},

		// ---- PRE-INFUSION (seconds, stored in tenths) ----
		{Name: "pre_infusion_enabled", Offset: 45, Length: 1, Encoding: U8, Bool: true, Scope: ScopeAll},
		{Name: "pre_infusion_S1", Offset: 46, Length: 1, Encoding: U8, Scale: 10,
			Scope: ScopeAll, AltOffset: 253, Limit: lim(0, 99)},
		{Name: "pre_infusion_S2", Offset: 47, Length: 1, Encoding: U8, Scale: 10,
			Scope: ScopeAll, AltOffset: 254, Limit: lim(0, 99)},
		{Name: "pre_infusion_L1", Offset: 48, Length: 1, Encoding: U8, Scale: 10,
			Scope: ScopeAll, AltOffset: 255, Limit: lim(0, 99)},
		{Name: "pre_infusion_L2", Offset: 49, Length: 1, Encoding: U8, Scale: 10,
			Scope: ScopeAll, AltOffset: 256, Limit: lim(0, 99)},

		// ---- AUTO ON/OFF TIMER ----
		// Hour/minute cells hold 100 when the timer is disabled, so no
		// 0-23/0-59 limits here; the CLI validates wall-clock input.
		{Name: "autotimer_enabled", Offset: 126, Length: 1, Encoding: U8, Bool: true, Scope: ScopeAll},
		{Name: "autotimer_h_on", Offset: 127, Length: 1, Encoding: U8, Scope: ScopeAll},
		{Name: "autotimer_m_on", Offset: 128, Length: 1, Encoding: U8, Scope: ScopeAll},
		{Name: "autotimer_h_off", Offset: 129, Length: 1, Encoding: U8, Scope: ScopeAll},
		{Name: "autotimer_m_off", Offset: 130, Length: 1, Encoding: U8, Scope: ScopeAll},

		// ---- COUNTERS, GROUP 1 ----
		{Name: "counter_S1", Offset: 134, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeAll},
		{Name: "counter_S2", Offset: 138, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeAll},
		{Name: "counter_L1", Offset: 142, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeAll},
		{Name: "counter_L2", Offset: 146, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeAll},
		{Name: "counter_XL", Offset: 150, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeAll},
		{Name: "counter_total", Offset: 210, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeAll},

		// ---- COUNTERS, GROUPS 2 AND 3 ----
		{Name: "counter_S1_gr2", Offset: 154, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 2},
		{Name: "counter_S2_gr2", Offset: 158, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 2},
		{Name: "counter_L1_gr2", Offset: 162, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 2},
		{Name: "counter_L2_gr2", Offset: 166, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 2},
		{Name: "counter_XL_gr2", Offset: 170, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 2},
		{Name: "counter_S1_gr3", Offset: 174, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 3},
		{Name: "counter_S2_gr3", Offset: 178, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 3},
		{Name: "counter_L1_gr3", Offset: 182, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 3},
		{Name: "counter_L2_gr3", Offset: 186, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 3},
		{Name: "counter_XL_gr3", Offset: 190, Length: 2, Encoding: U16LE, Access: ReadOnly, Scope: ScopeModel5Plus, Group: 3},

		// ---- DOSES, GROUPS 2 AND 3 (model-5+ block) ----
		{Name: "dose_S1_gr2", Offset: 257, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeModel5Plus, Group: 2},
		{Name: "dose_S2_gr2", Offset: 259, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeModel5Plus, Group: 2},
		{Name: "dose_L1_gr2", Offset: 261, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeModel5Plus, Group: 2},
		{Name: "dose_L2_gr2", Offset: 263, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeModel5Plus, Group: 2},
		{Name: "dose_S1_gr3", Offset: 265, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeModel5Plus, Group: 3},
		{Name: "dose_S2_gr3", Offset: 267, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeModel5Plus, Group: 3},
		{Name: "dose_L1_gr3", Offset: 269, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeModel5Plus, Group: 3},
		{Name: "dose_L2_gr3", Offset: 271, Length: 2, Encoding: U16LE, Scale: 2, Scope: ScopeModel5Plus, Group: 3},

		// ---- PRE-INFUSION, GROUPS 2 AND 3 (model-5+ block) ----
		{Name: "pre_infusion_S1_gr2", Offset: 273, Length: 1, Encoding: U8, Scale: 10, Scope: ScopeModel5Plus, Group: 2, Limit: lim(0, 99)},
		{Name: "pre_infusion_S2_gr2", Offset: 274, Length: 1, Encoding: U8, Scale: 10, Scope: ScopeModel5Plus, Group: 2, Limit: lim(0, 99)},
		{Name: "pre_infusion_L1_gr2", Offset: 275, Length: 1, Encoding: U8, Scale: 10, Scope: ScopeModel5Plus, Group: 2, Limit: lim(0, 99)},
		{Name: "pre_infusion_L2_gr2", Offset: 276, Length: 1, Encoding: U8, Scale: 10, Scope: ScopeModel5Plus, Group: 2, Limit: lim(0, 99)},
		{Name: "pre_infusion_S1_gr3", Offset: 277, Length: 1, Encoding: U8, Scale: 10, Scope: ScopeModel5Plus, Group: 3, Limit: lim(0, 99)},
		{Name: "pre_infusion_S2_gr3", Offset: 278, Length: 1, Encoding: U8, Scale: 10, Scope: ScopeModel5Plus, Group: 3, Limit: lim(0, 99)},
		{Name: "pre_infusion_L1_gr3", Offset: 279, Length: 1, Encoding: U8, Scale: 10, Scope: ScopeModel5Plus, Group: 3, Limit: lim(0, 99)},
		{Name: "pre_infusion_L2_gr3", Offset: 280, Length: 1, Encoding: U8, Scale: 10, Scope: ScopeModel5Plus, Group: 3, Limit: lim(0, 99)},
	}
}
