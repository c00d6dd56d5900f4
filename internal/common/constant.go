package common

// AccessTokenHeaderName is the HTTP header carrying the access token on
// outbound requests, in the form "Bearer <token>".
const AccessTokenHeaderName = "Authorization"

// BearerPrefix precedes the access token in AccessTokenHeaderName.
const BearerPrefix = "Bearer "
