package entity

import "time"

// Location representa un bar (punto físico con existencias) de un restaurante.
// A lo sumo un bar por restaurante es central: origen de requisiciones y destino de entradas.
type Location struct {
	ID        string
	TenantID  string
	Name      string
	IsCentral bool
	CreatedAt time.Time
}
