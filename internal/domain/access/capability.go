// Package access modela los permisos por página como un conjunto de capacidades por usuario.
package access

// Capability nombre de una página/acción habilitable por usuario.
type Capability string

const (
	CapCount              Capability = "count"
	CapTransfers          Capability = "transfers"
	CapEvents             Capability = "events"
	CapRequisitions       Capability = "requisitions"
	CapApproval           Capability = "approval"
	CapCountHistory       Capability = "count_history"
	CapRequisitionHistory Capability = "requisition_history"
	CapTransferHistory    Capability = "transfer_history"
	CapReports            Capability = "reports"
	CapGoodsReceipt       Capability = "goods_receipt"
	CapLosses             Capability = "losses"
	CapAdmin              Capability = "admin"
)

// All lista de capacidades conocidas.
func All() []Capability {
	return []Capability{
		CapCount, CapTransfers, CapEvents, CapRequisitions, CapApproval,
		CapCountHistory, CapRequisitionHistory, CapTransferHistory,
		CapReports, CapGoodsReceipt, CapLosses, CapAdmin,
	}
}

// Valid indica si la capacidad es conocida.
func Valid(c Capability) bool {
	for _, k := range All() {
		if k == c {
			return true
		}
	}
	return false
}

// Principal usuario con sus capacidades efectivas.
type Principal struct {
	UserID       string
	Superuser    bool
	Capabilities map[Capability]bool
}

// NewPrincipal construye el principal a partir de la lista guardada.
func NewPrincipal(userID string, superuser bool, caps []string) Principal {
	set := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		set[Capability(c)] = true
	}
	return Principal{UserID: userID, Superuser: superuser, Capabilities: set}
}

// HasCapability función pura: el superusuario lo puede todo; el resto según su conjunto.
func HasCapability(p Principal, c Capability) bool {
	if p.Superuser {
		return true
	}
	return p.Capabilities[c]
}
