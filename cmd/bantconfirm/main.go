package main

import (
	"context"
	"time"

	"github.com/niksmo/bant-confirm/config"
	"github.com/niksmo/bant-confirm/internal/app"
	"github.com/niksmo/bant-confirm/pkg/sigctx"
)

const closeTimeout = 10 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	site := app.New(sigCtx, cfg)

	site.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	site.Close(ctx)
}
