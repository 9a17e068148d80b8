/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import "errors"

var (
	// extraction
	ErrMarkerNotFound   = errors.New("marker not found")
	ErrUnbalancedObject = errors.New("unbalanced object literal")

	// normalization
	ErrMalformedObject  = errors.New("malformed object")
	ErrMissingDivisions = errors.New("missing divisions")

	// statistics
	ErrIndexOutOfRange = errors.New("index out of range")
)
