package monitor

import "time"

type Status struct {
	PostgreSQL   bool      `json:"postgresql"`
	Redis        bool      `json:"redis"`
	Audit        bool      `json:"audit"`
	AuditEntries int       `json:"audit_entries"`
	LastCheck    time.Time `json:"last_check"`
}
