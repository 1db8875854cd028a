// Package httpreq adapts *http.Request to the request view the protocol
// core reads parameters and headers from.
package httpreq

import (
	"net/http"

	"github.com/tokengate/authcore/models"
)

type Request struct {
	r *http.Request
}

// Wrap parses the form once and returns the adapter.
func Wrap(r *http.Request) *Request {
	_ = r.ParseForm()
	return &Request{r: r}
}

// Parameter returns the named query or form parameter, "" when absent.
func (a *Request) Parameter(name string) string {
	return a.r.FormValue(name)
}

// Header returns the named header, "" when absent.
func (a *Request) Header(name string) string {
	return a.r.Header.Get(name)
}

var _ models.Request = (*Request)(nil)
