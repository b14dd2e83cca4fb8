package tui

// Message types for the TUI system

type drawerUpdateMsg struct{}

type modalUpdateMsg struct{}

type orderUpdateMsg struct {
	Count int
	Total float64
}

type orderModeMsg struct {
	Active bool
}

type orderCompletedMsg struct {
	Total float64
}

type catalogReloadedMsg struct{}

type validationMsg struct {
	Message string
}
