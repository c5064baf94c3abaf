package config

import "strings"

const (
	baseURLVar    = "PORTAL_BASE_URL"
	apiPrefixVar  = "PORTAL_API_PREFIX"
	loginRouteVar = "PORTAL_LOGIN_ROUTE"
)

type GatewayConfig interface {
	GetBaseURL() string
	GetAPIPrefix() string
	GetLoginRoute() string
}

type Gateway struct{}

var _ GatewayConfig = Gateway{}

// GetBaseURL returns the scheme and host of the school API (e.g. "https://school.example.com")
func (Gateway) GetBaseURL() string {
	return strings.TrimRight(GetEnv(baseURLVar, "http://localhost:5000"), "/")
}

// GetAPIPrefix returns the fixed path every API call is made relative to.
func (Gateway) GetAPIPrefix() string {
	prefix := GetEnv(apiPrefixVar, "/api/v1")
	if prefix[0] != '/' {
		prefix = "/" + prefix
	}
	return strings.TrimRight(prefix, "/")
}

func (Gateway) GetLoginRoute() string {
	return GetEnv(loginRouteVar, "/")
}
