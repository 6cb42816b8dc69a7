package domain

import "fmt"

// SecurityLevel is totally ordered: PUBLIC < STAFF < RESTRICTED < HIGH_SECURITY.
type SecurityLevel int

const (
	LevelPublic SecurityLevel = iota
	LevelStaff
	LevelRestricted
	LevelHighSecurity
)

func (l SecurityLevel) String() string {
	switch l {
	case LevelPublic:
		return "PUBLIC"
	case LevelStaff:
		return "STAFF"
	case LevelRestricted:
		return "RESTRICTED"
	case LevelHighSecurity:
		return "HIGH_SECURITY"
	default:
		return "UNKNOWN"
	}
}

// ParseSecurityLevel accepts the names produced by SecurityLevel.String.
func ParseSecurityLevel(name string) (SecurityLevel, error) {
	for l := LevelPublic; l <= LevelHighSecurity; l++ {
		if l.String() == name {
			return l, nil
		}
	}
	return LevelPublic, InvalidArgumentf("unknown security level %q", name)
}

func (l SecurityLevel) MarshalText() ([]byte, error) {
	if l < LevelPublic || l > LevelHighSecurity {
		return nil, InvalidArgumentf("unknown security level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *SecurityLevel) UnmarshalText(text []byte) error {
	level, err := ParseSecurityLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

type AccessBadge struct {
	ID      string        `json:"id"`
	OwnerID string        `json:"owner_id"`
	Level   SecurityLevel `json:"level"`
	Revoked bool          `json:"revoked"`
}

// Upgrade sets the level unconditionally; lower levels are accepted too.
func (b *AccessBadge) Upgrade(level SecurityLevel) { b.Level = level }

func (b *AccessBadge) Revoke() { b.Revoked = true }

func (b *AccessBadge) IsActive() bool { return !b.Revoked }

type Checkpoint struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	RequiredLevel SecurityLevel `json:"required_level"`
}

func (c Checkpoint) CanPass(badge AccessBadge) bool {
	if badge.Revoked {
		return false
	}
	return badge.Level >= c.RequiredLevel
}

func (c Checkpoint) Describe() string {
	return fmt.Sprintf("%s (%s) requires %s", c.ID, c.Name, c.RequiredLevel)
}
