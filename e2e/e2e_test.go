//go:build e2e

// Package e2e provides end-to-end browser tests for the AdMax console.
//
// Test organization:
// - e2e_test.go: TestMain, shared helpers, constants, layout tests
// - service_test.go: fake AdMax service the console talks to
// - queue_test.go: queue page tests (tabs, approve, reject dialog, knowledge)
// - setup_test.go: setup wizard tests
package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL    = "http://localhost:18090"
	binaryPath = "/tmp/admax-e2e"
	stateDir   = "/tmp/admax-e2e-state"
)

var (
	pw        *playwright.Playwright
	serverCmd *exec.Cmd
	service   *fakeService
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(stateDir)

	ctx := context.Background()
	build := exec.CommandContext(ctx, "go", "build", "-o", binaryPath, "./app")
	build.Dir = ".."
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Printf("failed to build: %v\n", err)
		os.Exit(1)
	}

	service = newFakeService()
	ts := httptest.NewServer(service)

	serverCmd = exec.CommandContext(ctx, binaryPath,
		"--api.url="+ts.URL,
		"--api.token=e2e-token",
		"--api.brand=brand-e2e",
		"--state.location="+stateDir,
		"--web.address=:18090",
		"--web.poll=250ms",
		"--web.action-limit=100",
		"--web.host=e2e-test",
	)
	serverCmd.Stdout = os.Stdout
	serverCmd.Stderr = os.Stderr
	if err := serverCmd.Start(); err != nil {
		fmt.Printf("failed to start server: %v\n", err)
		os.Exit(1)
	}

	if err := waitForServer(baseURL+"/ping", 30*time.Second); err != nil {
		fmt.Printf("server not ready: %v\n", err)
		_ = serverCmd.Process.Kill()
		os.Exit(1)
	}

	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		fmt.Printf("failed to install playwright: %v\n", err)
		_ = serverCmd.Process.Kill()
		os.Exit(1)
	}

	var err error
	pw, err = playwright.Run()
	if err != nil {
		fmt.Printf("failed to start playwright: %v\n", err)
		_ = serverCmd.Process.Kill()
		os.Exit(1)
	}

	code := m.Run()

	_ = pw.Stop()
	_ = serverCmd.Process.Kill()
	ts.Close()
	_ = os.RemoveAll(stateDir)

	os.Exit(code)
}

func waitForServer(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("server not ready after %v", timeout)
		default:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody) // #nosec G107 - test url
			if err != nil {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			resp, err := client.Do(req)
			if err == nil {
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return nil
				}
			}
			time.Sleep(100 * time.Millisecond)
		}
	}
}

func newPage(t *testing.T) playwright.Page {
	t.Helper()
	headless := os.Getenv("E2E_HEADLESS") != "false"
	slowMo := 0.0
	if !headless {
		slowMo = 50
	}
	brow, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		SlowMo:   playwright.Float(slowMo),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = brow.Close() })

	ctx, err := brow.NewContext()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })

	page, err := ctx.NewPage()
	require.NoError(t, err)
	return page
}

// waitVisible waits for the first element matching selector to become visible
func waitVisible(t *testing.T, page playwright.Page, selector string) {
	t.Helper()
	err := page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	})
	require.NoError(t, err, "%s should be visible", selector)
}

// waitHidden waits until no element matching selector is visible
func waitHidden(t *testing.T, page playwright.Page, selector string) {
	t.Helper()
	err := page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(5000),
	})
	require.NoError(t, err, "%s should be hidden", selector)
}

// openQueue navigates to the queue and waits for the creation list
func openQueue(t *testing.T, page playwright.Page) {
	t.Helper()
	_, err := page.Goto(baseURL + "/tool/ad-max/queue")
	require.NoError(t, err)
	waitVisible(t, page, "#queue-items .card")
}

// --- layout tests ---

func TestLayout_RootRedirectsToQueue(t *testing.T) {
	page := newPage(t)
	_, err := page.Goto(baseURL)
	require.NoError(t, err)
	waitVisible(t, page, "#queue-header")

	title, err := page.Title()
	require.NoError(t, err)
	assert.Equal(t, "AdMax Queue - e2e-test", title)
	assert.Equal(t, baseURL+"/tool/ad-max/queue", page.URL())
}

func TestLayout_FooterShowsVersion(t *testing.T) {
	page := newPage(t)
	openQueue(t, page)

	text, err := page.Locator("footer").TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "AdMax")
}

func TestLayout_ThemeToggle(t *testing.T) {
	page := newPage(t)
	openQueue(t, page)

	before, err := page.Locator("html").GetAttribute("data-theme")
	require.NoError(t, err)

	require.NoError(t, page.Locator("button.theme").Click())
	require.NoError(t, page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: playwright.LoadStateLoad}))
	waitVisible(t, page, "#queue-header")

	require.Eventually(t, func() bool {
		after, err := page.Locator("html").GetAttribute("data-theme")
		return err == nil && after != before
	}, 5*time.Second, 100*time.Millisecond, "theme should change")
}

func TestLayout_HandoffPage(t *testing.T) {
	page := newPage(t)
	_, err := page.Goto(baseURL + "/settings/organization/ad-accounts?messageId=missing")
	require.NoError(t, err)
	waitVisible(t, page, "main h2")

	text, err := page.Locator("main").TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "Leaving AdMax")
	assert.Contains(t, text, "has expired")
}
