package templates

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadQuotes reads one quote per line from path. Blank lines and lines starting
// with '#' are skipped.
func LoadQuotes(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only quote file.
			_ = cerr
		}
	}()

	var out []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, NormalizeQuote(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("quote file is empty")
	}
	return out, nil
}

// NormalizeQuote shouts the quote and wraps it in double quotes like the built-in pool.
func NormalizeQuote(line string) string {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, `"“”`)
	return `"` + strings.ToUpper(line) + `"`
}
