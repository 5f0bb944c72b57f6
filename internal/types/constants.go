package types

const ContextUserKey = "user"

// DateLayout is the format accepted for date fields in request bodies.
// Responses serialize time.Time as RFC3339.
const DateLayout = "2006-01-02"

// User roles.
const (
	RoleAdmin        = "admin"
	RoleGestor       = "gestor"
	RoleTecnico      = "tecnico"
	RoleVisualizador = "visualizador"
)

// Project statuses.
const (
	ProjectPlanejado   = "planejado"
	ProjectEmAndamento = "em_andamento"
	ProjectPausado     = "pausado"
	ProjectConcluido   = "concluido"
	ProjectCancelado   = "cancelado"
)

// Work order statuses.
const (
	WorkOrderPlanejada   = "planejada"
	WorkOrderEmAndamento = "em_andamento"
	WorkOrderPausada     = "pausada"
	WorkOrderConcluida   = "concluida"
	WorkOrderCancelada   = "cancelada"
)

// Checkpoint types.
const (
	CheckpointInspecao  = "inspecao"
	CheckpointSeguranca = "seguranca"
	CheckpointQualidade = "qualidade"
)

var validRoles = map[string]bool{
	RoleAdmin:        true,
	RoleGestor:       true,
	RoleTecnico:      true,
	RoleVisualizador: true,
}

var validProjectStatuses = map[string]bool{
	ProjectPlanejado:   true,
	ProjectEmAndamento: true,
	ProjectPausado:     true,
	ProjectConcluido:   true,
	ProjectCancelado:   true,
}

var validWorkOrderStatuses = map[string]bool{
	WorkOrderPlanejada:   true,
	WorkOrderEmAndamento: true,
	WorkOrderPausada:     true,
	WorkOrderConcluida:   true,
	WorkOrderCancelada:   true,
}

var validCheckpointTypes = map[string]bool{
	CheckpointInspecao:  true,
	CheckpointSeguranca: true,
	CheckpointQualidade: true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

func IsValidProjectStatus(status string) bool {
	return validProjectStatuses[status]
}

func IsValidWorkOrderStatus(status string) bool {
	return validWorkOrderStatuses[status]
}

func IsValidCheckpointType(tipo string) bool {
	return validCheckpointTypes[tipo]
}
