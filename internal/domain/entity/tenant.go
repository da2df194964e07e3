package entity

import "time"

// Tenant representa un restaurante: el alcance organizacional dueño de uno o varios bares.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
