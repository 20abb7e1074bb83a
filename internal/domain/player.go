package domain

import "time"

// PersonalInfo is collected on claim
type PersonalInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	VehicleNumber string `json:"vehicle_number"`
}

// WinRecord is one confirmed outcome. Only ClaimCode changes after creation.
type WinRecord struct {
	ID        string    `json:"id"`
	Prize     Prize     `json:"prize"`
	WonAt     time.Time `json:"won_at"`
	ClaimCode string    `json:"claim_code,omitempty"`
}

// Profile is the per-player ledger state keyed by mobile number
type Profile struct {
	Mobile          string      `json:"mobile"`
	Name            string      `json:"name,omitempty"`
	Email           string      `json:"email,omitempty"`
	VehicleNumber   string      `json:"vehicle_number,omitempty"`
	Attempts        int         `json:"attempts"`
	DropletsBalance int         `json:"droplets_balance"`
	History         []WinRecord `json:"history"`
	DailyPlays      int         `json:"daily_plays"`
	DailyPlaysDate  string      `json:"daily_plays_date,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	LastActivity    time.Time   `json:"last_activity"`
}

// Clone returns a deep copy safe to hand out of the store
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.History = append([]WinRecord(nil), p.History...)
	return &c
}

// FindRecord returns the index of the history entry with the given id or -1
func (p *Profile) FindRecord(id string) int {
	for i := range p.History {
		if p.History[i].ID == id {
			return i
		}
	}
	return -1
}

// ApplyPersonalInfo overwrites claim metadata. The latest claim wins.
func (p *Profile) ApplyPersonalInfo(info PersonalInfo) {
	p.Name = info.Name
	p.Email = info.Email
	p.VehicleNumber = info.VehicleNumber
}
