package domain

type EmployeeRole string

const (
	RolePilot       EmployeeRole = "PILOT"
	RoleCabinCrew   EmployeeRole = "CABIN_CREW"
	RoleGroundStaff EmployeeRole = "GROUND_STAFF"
	RoleSecurity    EmployeeRole = "SECURITY"
)

type PilotDetails struct {
	LicenseNumber string `json:"license_number"`
	FlightHours   int    `json:"flight_hours"`
}

type CabinCrewDetails struct {
	LanguagesSpoken int `json:"languages_spoken"`
}

type GroundStaffDetails struct {
	Station string `json:"station,omitempty"`
}

// Employee is one record for every role. Only the details matching Role
// are meaningful.
type Employee struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Role     EmployeeRole `json:"role"`
	Active   bool         `json:"active"`
	Username string       `json:"username,omitempty"`

	Pilot       *PilotDetails       `json:"pilot,omitempty"`
	CabinCrew   *CabinCrewDetails   `json:"cabin_crew,omitempty"`
	GroundStaff *GroundStaffDetails `json:"ground_staff,omitempty"`
}

func NewEmployee(id, name string, role EmployeeRole) *Employee {
	e := &Employee{ID: id, Name: name, Role: role, Active: true}
	switch role {
	case RolePilot:
		e.Pilot = &PilotDetails{}
	case RoleCabinCrew:
		e.CabinCrew = &CabinCrewDetails{LanguagesSpoken: 1}
	case RoleGroundStaff:
		e.GroundStaff = &GroundStaffDetails{}
	}
	return e
}

func (e *Employee) Activate() { e.Active = true }

func (e *Employee) Deactivate() { e.Active = false }

func (e *Employee) CanAccessHighSecurity() bool {
	switch e.Role {
	case RolePilot, RoleSecurity:
		return true
	default:
		return false
	}
}

func (e *Employee) AddFlightHours(hours int) error {
	if e.Role != RolePilot || e.Pilot == nil {
		return InvalidArgumentf("employee %s is not a pilot", e.ID)
	}
	if hours <= 0 {
		return InvalidArgumentf("hours must be positive")
	}
	e.Pilot.FlightHours += hours
	return nil
}

func (e *Employee) CanServeLanguages(required int) bool {
	if e.Role != RoleCabinCrew || e.CabinCrew == nil {
		return false
	}
	return e.CabinCrew.LanguagesSpoken >= required
}

func (e *Employee) AssignStation(station string) error {
	if e.Role != RoleGroundStaff || e.GroundStaff == nil {
		return InvalidArgumentf("employee %s is not ground staff", e.ID)
	}
	e.GroundStaff.Station = station
	return nil
}

func (e *Employee) IsAssigned() bool {
	return e.Role == RoleGroundStaff && e.GroundStaff != nil && e.GroundStaff.Station != ""
}
