package gateway

import "github.com/rs/zerolog/log"

// Navigator moves the user to another route, the way a page redirect does in
// a browser.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

type logNavigator struct{}

func (logNavigator) Navigate(route string) {
	log.Info().Str("route", route).Msg("Redirecting to login")
}
