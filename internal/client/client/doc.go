// Package client talks to the PantryKeeper HTTP API on behalf of the CLI.
//
// HTTPClient keeps the token pair of the signed-in user, sends the access
// token as a Bearer header and, when the server answers 401 on an
// authenticated call, refreshes the pair once and retries. Transport
// failures surface as ErrUnavailable, API errors as *APIError.
package client
