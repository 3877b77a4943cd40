package api

import (
	"net/http"

	"github.com/olanest/olanest/internal/identity"
	"github.com/olanest/olanest/pkg/models"
)

// resolveCaller extracts the principal put in the context by the JWT
// middleware and resolves its role. A false return means the response has
// already been written.
func resolveCaller(w http.ResponseWriter, r *http.Request, res *identity.Resolver) (models.Caller, bool) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing authentication", http.StatusUnauthorized)
		return models.Caller{}, false
	}

	caller, err := res.Resolve(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return models.Caller{}, false
	}

	return caller, true
}
