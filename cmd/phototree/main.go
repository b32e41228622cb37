package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/anvesh/phototree/internal/app"
	"github.com/anvesh/phototree/internal/photo"
	"github.com/anvesh/phototree/internal/server"
	"github.com/anvesh/phototree/internal/store"
	"github.com/anvesh/phototree/internal/tray"
)

func main() {
	var (
		addr     = flag.String("addr", ":8080", "HTTP listen address")
		cameraID = flag.Int("camera", 0, "camera device ID")
		dropDir  = flag.String("drop-dir", "", "optional folder watched for photos to import")
	)
	flag.Parse()

	fmt.Println("Phototree - gesture-driven photo display")

	// The photo collection lives for one session only
	st, err := store.New()
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	assetDir, err := os.MkdirTemp("", "phototree-assets-")
	if err != nil {
		log.Fatalf("Failed to create asset directory: %v", err)
	}
	defer os.RemoveAll(assetDir)

	importer := photo.NewImporter(assetDir, photo.NewLayout(time.Now().UnixNano()))

	application := app.New(app.Config{
		Store:    st,
		Importer: importer,
		CameraID: *cameraID,
		DropDir:  *dropDir,
	})

	hub := server.NewStateHub()

	t := tray.New()
	application.OnUpdate(func(u app.Update) {
		hub.Publish(u)
		t.SetMode(string(u.Scene.Mode))
	})

	// Find web directory for the rendering frontend
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving display frontend from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Importer:  importer,
		Camera:    application.Camera(),
		States:    hub,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		// The display still serves; it just won't react to gestures.
		log.Printf("Gesture pipeline unavailable: %v", err)
	}

	t.OnToggle(application.SetEnabled)
	t.OnOpen(func() {
		openBrowser("http://localhost" + *addr)
	})
	t.OnQuit(application.Stop)

	// Blocks until quit
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.phototree/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".phototree", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the display URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
