package rbac

import "errors"

var (
	// ErrSourceFailure indicates the grant source rejected the operation.
	ErrSourceFailure = errors.New("rbac.source_failure")

	// ErrUnknownPermission indicates a permission code outside the catalog.
	ErrUnknownPermission = errors.New("rbac.unknown_permission")
)
