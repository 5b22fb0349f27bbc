package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/GameIsFlash/Purchase-Generator/app"
	"github.com/GameIsFlash/Purchase-Generator/app/session"
	"github.com/GameIsFlash/Purchase-Generator/config"
	"github.com/GameIsFlash/Purchase-Generator/models"
)

const usage = `usage: purchase-generator [serve|availability|purchase -order FILE|sync-images]`

func main() {
	// Load .env file in development; in production variables are set directly
	if os.Getenv("ENV") != "production" {
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mode := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		mode, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Initialize(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	switch mode {
	case "serve":
		err = serve(ctx, a)
	case "availability":
		err = runAvailability(ctx, a)
	case "purchase":
		err = runPurchase(ctx, a, args)
	case "sync-images":
		err = syncImages(ctx, a)
	default:
		err = errors.New(usage)
	}
	if err != nil {
		log.Printf("❌ %v", err)
		a.Close()
		os.Exit(1)
	}
}

func serve(ctx context.Context, a *app.App) error {
	srv := &http.Server{
		Addr:              a.Config.HTTPAddr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runAvailability(ctx context.Context, a *app.App) error {
	task, err := a.Session.StartAvailabilityGeneration(ctx)
	if err != nil {
		return err
	}
	return report(ctx, task)
}

func runPurchase(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("purchase", flag.ContinueOnError)
	orderFile := fs.String("order", "", "order JSON file; the default preset is used when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *orderFile != "" {
		rep, err := a.Session.ImportOrderFile(*orderFile)
		if err != nil {
			return err
		}
		log.Printf("📋 Order file loaded: %d lines, %d skipped", rep.Loaded, rep.Skipped)
	} else {
		log.Printf("📋 Default order loaded: %d lines", a.Session.LoadDefaultOrder())
	}

	task, err := a.Session.StartPurchaseGeneration(ctx)
	if err != nil {
		return err
	}
	return report(ctx, task)
}

func report(ctx context.Context, task *session.GenerationTask) error {
	result, err := task.Wait(ctx)
	if err != nil {
		return err
	}
	for _, f := range result.Files {
		fmt.Println(f)
	}
	for _, msg := range result.Errors {
		log.Printf("⚠️  %s", msg)
	}
	if result.State == models.GenerationFailed {
		return fmt.Errorf("generation failed: %s", result.FatalError)
	}
	return nil
}

func syncImages(ctx context.Context, a *app.App) error {
	syncService := a.SyncService()
	if syncService == nil {
		return errors.New("image sync requires GOOGLE_APPLICATION_CREDENTIALS and IMAGES_DRIVE_FOLDER_ID")
	}
	total, downloaded, skipped, errs, err := syncService.SyncImages(ctx, a.Config.ImagesDriveFolderID)
	if err != nil {
		return err
	}
	log.Printf("🎉 %d/%d images downloaded, %d skipped, %d failed", downloaded, total, skipped, len(errs))
	return nil
}
