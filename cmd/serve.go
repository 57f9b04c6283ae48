package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/CeruleanLeaves/coms-336-raytracer/web/server"
	"github.com/urfave/cli"
)

// Serve renders frames on demand over HTTP until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	serveCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	webServer := server.NewServer(ctx.Int("port"), ctx.Duration("render-timeout"))
	logger.Noticef("visit http://localhost:%d/api/scenes for the scene list", ctx.Int("port"))

	if err := webServer.Start(serveCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
