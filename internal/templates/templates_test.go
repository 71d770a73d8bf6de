package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/memewire/internal/model"
)

func TestSubsetsAreStrictSubsetsOfAll(t *testing.T) {
	p := Default()
	all := map[string]bool{}
	for _, q := range p.Quotes(model.CategoryAll) {
		all[q] = true
	}
	for _, c := range []model.Category{model.CategoryFunny, model.CategoryPolitical} {
		pool := p.Quotes(c)
		if len(pool) != 3 {
			t.Fatalf("expected 3 %s quotes, got %d", c, len(pool))
		}
		for _, q := range pool {
			if !all[q] {
				t.Fatalf("%s quote %q missing from full pool", c, q)
			}
		}
		if len(pool) >= len(all) {
			t.Fatalf("%s pool is not a strict subset", c)
		}
	}
}

func TestPoolsNonEmpty(t *testing.T) {
	p := Default()
	for _, c := range []model.Category{model.CategoryAll, model.CategoryFunny, model.CategoryPolitical, model.CategoryRumor} {
		if len(p.Quotes(c)) == 0 {
			t.Fatalf("empty %s pool", c)
		}
	}
	if len(p.Sources()) == 0 || len(p.Typing()) == 0 {
		t.Fatalf("expected non-empty auxiliary pools")
	}
}

func TestWithExtraOnlyExtendsFullPool(t *testing.T) {
	p := WithExtra([]string{`"NUEVA FRASE"`})
	all := p.Quotes(model.CategoryAll)
	if all[len(all)-1] != `"NUEVA FRASE"` {
		t.Fatalf("expected extra quote at the end of the full pool")
	}
	if len(Default().Quotes(model.CategoryAll)) != len(all)-1 {
		t.Fatalf("extra quote leaked into the default pool")
	}
	if len(p.Quotes(model.CategoryFunny)) != 3 {
		t.Fatalf("extra quote changed the funny pool")
	}
}

func TestLoadQuotesSkipsBlankAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.txt")
	data := "# mine\n\n  el bloqueo es culpa del clima \n“ya viene la cosecha”\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write quotes: %v", err)
	}
	got, err := LoadQuotes(path)
	if err != nil {
		t.Fatalf("load quotes: %v", err)
	}
	want := []string{`"EL BLOQUEO ES CULPA DEL CLIMA"`, `"YA VIENE LA COSECHA"`}
	if len(got) != len(want) {
		t.Fatalf("expected %d quotes, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("quote %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestLoadQuotesRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.txt")
	if err := os.WriteFile(path, []byte("\n# nothing\n"), 0o644); err != nil {
		t.Fatalf("write quotes: %v", err)
	}
	if _, err := LoadQuotes(path); err == nil {
		t.Fatalf("expected error for empty quote file")
	}
}
