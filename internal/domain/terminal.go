package domain

type Gate struct {
	ID                    string `json:"id"`
	TerminalCode          string `json:"terminal_code"`
	IsOpen                bool   `json:"is_open"`
	CurrentFlightID       string `json:"current_flight_id,omitempty"`
	SupportsInternational bool   `json:"supports_international"`
}

func NewGate(id, terminalCode string) *Gate {
	return &Gate{ID: id, TerminalCode: terminalCode, IsOpen: true}
}

func (g *Gate) AssignFlight(flightID string) { g.CurrentFlightID = flightID }

func (g *Gate) ClearFlight() { g.CurrentFlightID = "" }

func (g *Gate) Open() { g.IsOpen = true }

func (g *Gate) Close() { g.IsOpen = false }

func (g *Gate) IsFree() bool {
	return g.IsOpen && g.CurrentFlightID == ""
}
