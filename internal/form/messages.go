package form

import "quantovale/lib/quote"

// --- Tea messages ---

type submitResultMsg struct {
	state quote.State
}
