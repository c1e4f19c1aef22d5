// SPDX-License-Identifier: MIT

package meshio

import "errors"

// Sentinel errors for format adapters.
var (
	// ErrUnsupported indicates the format cannot perform the requested operation.
	ErrUnsupported = errors.New("meshio: operation not supported by format")

	// ErrMalformed indicates input that does not follow the format grammar.
	ErrMalformed = errors.New("meshio: malformed input")

	// ErrMissingRelation indicates the mesh lacks a relation the format must write.
	ErrMissingRelation = errors.New("meshio: mesh lacks a relation required by the format")

	// ErrNoSnapshot indicates an archive without any stored mesh.
	ErrNoSnapshot = errors.New("meshio: archive holds no snapshot")
)
