package constants

//============== USER ROLES ==============

const (
	RoleTechnician = "technician"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

//============== EQUIPMENT STATUSES ==============

const (
	EquipmentOperational = "operational"
	EquipmentMaintenance = "maintenance"
	EquipmentDown        = "down"
	EquipmentScrapped    = "scrapped"
)

//============== CACHE KEYS ==============

const (
	// Dashboard counters are recomputed fully on miss, cached for a short TTL.
	CacheKeyDashboardStats = "dashboard:stats"
)

// AutoNamePlaceholder is the title a client sends to request a generated
// REQ-NNNN name for a new maintenance request.
const AutoNamePlaceholder = "New"
