package domain

// Role represents a user role in the system
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// AssetStatus represents the lifecycle status of an asset
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "AVAILABLE"
	AssetReserved    AssetStatus = "RESERVED"
	AssetMaintenance AssetStatus = "MAINTENANCE"
)

// ParseAssetStatus converts a raw string into an AssetStatus
func ParseAssetStatus(s string) (AssetStatus, error) {
	switch AssetStatus(s) {
	case AssetAvailable, AssetReserved, AssetMaintenance:
		return AssetStatus(s), nil
	default:
		return "", ErrInvalidAssetStatus
	}
}

// RequestStatus represents the approval status of a checkout request
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// ParseRequestStatus converts a raw string into a RequestStatus
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestPending, RequestApproved, RequestRejected:
		return RequestStatus(s), nil
	default:
		return "", ErrInvalidRequestStatus
	}
}
