package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrNotFound indicates no loader has the requested asset.
	ErrNotFound = errors.New("asset not found")

	// ErrInvalidAssetName indicates the name is not a bare file stem.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates assets.basePath is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an asset exists but could not be read, including
	// symlinks that point outside the override directory.
	ErrAssetRead = errors.New("failed to read asset")
)
