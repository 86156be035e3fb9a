package apicontract

import _ "embed"

// openapi.yml describes the inventory backend API the console consumes.
//
//go:embed openapi.yml
var specBytes []byte

// GetSpecBytes returns the embedded OpenAPI specification as a byte slice.
func GetSpecBytes() []byte {
	return specBytes
}
