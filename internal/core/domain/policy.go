package domain

// Operation identifies a protected operation for access checks.
type Operation int

const (
	OpAssetRead Operation = iota
	OpAssetCreate
	OpAssetUpdate
	OpAssetDelete
	OpRequestCreate
	OpRequestRead
	OpRequestUpdateStatus
	OpRequestDelete
	OpUserRead
	OpUserDelete
)

// String returns a human-readable operation name (used in logs and 403 bodies).
func (op Operation) String() string {
	switch op {
	case OpAssetRead:
		return "asset:read"
	case OpAssetCreate:
		return "asset:create"
	case OpAssetUpdate:
		return "asset:update"
	case OpAssetDelete:
		return "asset:delete"
	case OpRequestCreate:
		return "request:create"
	case OpRequestRead:
		return "request:read"
	case OpRequestUpdateStatus:
		return "request:update-status"
	case OpRequestDelete:
		return "request:delete"
	case OpUserRead:
		return "user:read"
	case OpUserDelete:
		return "user:delete"
	default:
		return "unknown"
	}
}

// Can reports whether a role may perform an operation.
// Ownership-scoped rules (request read/delete) are allowed here for
// students; the per-record owner check happens in the request service.
func Can(role Role, op Operation) bool {
	switch role {
	case RoleAdmin:
		switch op {
		case OpAssetRead, OpAssetCreate, OpAssetUpdate, OpAssetDelete,
			OpRequestCreate, OpRequestRead, OpRequestUpdateStatus, OpRequestDelete,
			OpUserRead, OpUserDelete:
			return true
		default:
			return false
		}
	case RoleStudent:
		switch op {
		case OpAssetRead, OpRequestCreate, OpRequestRead, OpRequestDelete:
			return true
		default:
			return false
		}
	default:
		return false
	}
}
