// Package gateway is the single path from the portal to the school API.
//
// A Gateway attaches the stored access token to every call, and when the API
// answers 401 Unauthorized it tears the session down and sends the user to the
// login route through a Navigator. Callers get a typed Result instead of
// relying on that side effect: Ok carries the raw *http.Response, AuthExpired
// carries nothing and means "abort, the user has been sent to log in".
//
// There is no retry, no timeout and no silent token refresh. The refresh
// token returned at login is stored but never used.
package gateway
