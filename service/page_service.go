package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"menu-price-map/colormap"
	"menu-price-map/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// tileSettle is how long a snapshot waits for map tiles after markers are drawn
const tileSettle = 1500 * time.Millisecond

// PageService renders the map page and captures snapshots of it
type PageService struct {
	sessions     SessionServiceInterface
	datasets     DatasetServiceInterface
	templatePath string
	baseURL      string // Base URL the headless browser loads the page from (e.g., "http://localhost:8080")
}

// NewPageService creates a new PageService
func NewPageService(sessions SessionServiceInterface, datasets DatasetServiceInterface, templateDir, baseURL string) *PageService {
	return &PageService{
		sessions:     sessions,
		datasets:     datasets,
		templatePath: filepath.Join(templateDir, "map.html"),
		baseURL:      baseURL,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type mapPageData struct {
	SessionID    string
	Session      *models.SessionView
	Brands       []models.Brand
	HeatGradient template.JS
	DefaultColor string
	Snapshot     bool
}

// RenderMap renders templates/map.html for a session. snapshot hides the
// interactive panels for headless capture.
func (s *PageService) RenderMap(sessionID string, snapshot bool) (string, error) {
	view, err := s.sessions.View(sessionID)
	if err != nil {
		return "", err
	}
	brands, err := s.datasets.Brands()
	if err != nil {
		return "", fmt.Errorf("failed to list brands: %w", err)
	}

	heat, err := json.Marshal(colormap.HeatStops(colormap.Heat))
	if err != nil {
		return "", fmt.Errorf("failed to encode heat gradient: %w", err)
	}

	data := mapPageData{
		SessionID:    sessionID,
		Session:      view,
		Brands:       brands,
		HeatGradient: template.JS(heat),
		DefaultColor: colormap.MissingColor(colormap.Price).Hex(),
		Snapshot:     snapshot,
	}

	tmpl, err := template.ParseFiles(s.templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Snapshot loads the session's map page in headless Chrome and returns a PNG
// of the viewport once markers have been drawn
func (s *PageService) Snapshot(ctx context.Context, sessionID string) ([]byte, error) {
	if _, err := s.sessions.View(sessionID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.WindowSize(1400, 900),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/map?session=%s&snapshot=true", s.baseURL, sessionID)
	log.Printf("📸 Snapshot: session=%s url=%s", sessionID, renderURL)

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(1400, 900),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("#map"),
		// map.html sets data-ready once markers are drawn
		chromedp.WaitVisible(`body[data-ready="true"]`, chromedp.ByQuery),
		chromedp.Sleep(tileSettle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithFromSurface(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture snapshot: %w", err)
	}

	log.Printf("✓ Snapshot: session=%s bytes=%d", sessionID, len(buf))
	return buf, nil
}
