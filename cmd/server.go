package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"solo/handler/hc"
	"solo/handler/rest"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run solo api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		marketStore := provideMarketStore(database)
		accountStore := provideAccountStore(database)
		expiryStore := provideExpiryStore(database)
		eventStore := provideEventStore(database)
		marketService := provideMarketService(marketStore, accountStore)
		accountService := provideAccountService(system, accountStore, marketService)

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			mux.Mount("/hc", hc.Handle(rootCmd.Version))
		}

		{
			mux.Mount("/api", rest.Handle(
				system,
				marketStore,
				accountStore,
				expiryStore,
				eventStore,
				marketService,
				accountService,
			))
		}

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.App.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port")
}
