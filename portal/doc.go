// Package portal holds typed clients for the school API resources behind each
// page of the portal: the announcement feed, homework, grades, mail, the
// calendar, and the admin screens for users and groups.
//
// Every call goes through a gateway.Gateway. A call whose session was rejected
// returns errors.ErrAuthExpired; any other non-2xx answer returns an
// *errors.APIError carrying the server's message.
package portal
