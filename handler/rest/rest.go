package rest

import (
	"errors"
	"net/http"

	"solo/core"
	"solo/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	system *core.System,
	marketStore core.IMarketStore,
	accountStore core.IAccountStore,
	expiryStore core.IExpiryStore,
	eventStore core.IEventStore,
	marketService core.IMarketService,
	accountService core.IAccountService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/info", infoHandler(system))
	router.Get("/markets", allMarketsHandler(marketStore, marketService))
	router.Get("/markets/{symbol}", marketHandler(marketStore, marketService))
	router.Get("/accounts/{owner}/{number}", accountHandler(accountStore, expiryStore, marketService, accountService))
	router.Get("/accounts/{owner}/{number}/liquidations", liquidationsHandler(eventStore))
	router.Get("/liquidatable", liquidatableHandler(accountService))

	return router
}
