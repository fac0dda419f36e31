package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/payload-validator/app"
	"github.com/km-arc/payload-validator/app/controllers"
	foundation "github.com/km-arc/payload-validator/framework/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	application := foundation.New() // loads .env automatically
	application.Boot()

	cfg := application.Config()
	validation := controllers.NewValidationController(
		application.Validator(),
		application.Logger(),
		cfg.HTTP.MaxBodyBytes,
	)
	app.RegisterRoutes(application.Router(), validation)

	return application.Run(ctx)
}
