package param

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

// Binding binds query values, and for json requests the body as well,
// into v by its json tags
func Binding(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return err
	}

	if r.Body == nil || r.Method == http.MethodGet {
		return nil
	}

	if typ := r.Header.Get("Content-Type"); !strings.HasPrefix(typ, "application/json") {
		return nil
	}

	return json.NewDecoder(r.Body).Decode(v)
}
