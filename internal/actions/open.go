package actions

import (
	"net/url"
	"os/exec"
	"runtime"
)

// Opener hands a URL to something outside this process.
type Opener func(target string) error

// OpenBrowser starts the platform's URL handler and returns without waiting
// for the browser.
func OpenBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		cmd = exec.Command("open", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// ShareURL appends text as the tweet body to the intent URL base.
func ShareURL(base, text string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("text", text)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
