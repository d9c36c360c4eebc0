// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import "time"

// New creates a backend API implementation for baseURL.
// A zero timeout falls back to ten seconds.
func New(baseURL string, endpoints Endpoints, timeout time.Duration) API {
	return newHTTP(baseURL, endpoints, timeout)
}
