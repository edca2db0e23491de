package publisher

import (
	"net/http"
	"net/url"
)

// Credential mutates an outgoing request to carry one authentication layer.
// Every credential on the client is applied to every request.
type Credential interface {
	Apply(req *http.Request)
}

// apiCredential is the content API's own credential (a WordPress application
// password), sent as the per-request auth header.
type apiCredential struct {
	username string
	password string
}

func (c apiCredential) Apply(req *http.Request) {
	req.SetBasicAuth(c.username, c.password)
}

// transportCredential is a server-level Basic credential layered in front of
// the content API (e.g. a staging site behind htpasswd). It rides in the URL
// authority, which avoids hand-splicing credentials into the base URL.
type transportCredential struct {
	username string
	password string
}

func (c transportCredential) Apply(req *http.Request) {
	req.URL.User = url.UserPassword(c.username, c.password)
}
