package brief

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBrief(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetect(t *testing.T) {
	assert.Equal(t, KindURL, Detect("https://zero360.de/flexspace"))
	assert.Equal(t, KindURL, Detect("http://example.com/konzept"))
	assert.Equal(t, KindPDF, Detect("konzept.PDF"))
	assert.Equal(t, KindPDF, Detect("/tmp/brief.pdf"))
	assert.Equal(t, KindFile, Detect("brief.md"))
	assert.Equal(t, KindFile, Detect("notizen.txt"))
}

func TestLoadMarkdownBrief(t *testing.T) {
	path := writeBrief(t, "brief.md",
		"# FlexSpace Duschkonzept\n\nEin modulares Duschsystem fuer kleine Baeder.\nMontage ohne Fliesenarbeiten moeglich.\n")

	b, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "FlexSpace Duschkonzept", b.Title)
	assert.Contains(t, b.Body, "modulares Duschsystem")
	assert.Equal(t, "brief.md", b.Source)
	assert.Greater(t, b.WordCount, 5)

	p := b.Product()
	assert.Equal(t, "FlexSpace Duschkonzept", p.Name)
	assert.Contains(t, p.Description, "Montage ohne Fliesenarbeiten")
	require.NoError(t, p.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "fehlt.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")

	_, err = Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")

	empty := writeBrief(t, "leer.txt", "")
	_, err = Load(context.Background(), empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")

	// Missing PDFs fail at the file check, before any parsing.
	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "fehlt.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}

func TestBodyCap(t *testing.T) {
	long := "Titelzeile\n" + strings.Repeat("Badsanierung ohne Staub und Laerm. ", 400)
	path := writeBrief(t, "lang.txt", long)

	b, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, maxBodyRunes+3, utf8.RuneCountInString(b.Body))
	assert.True(t, strings.HasSuffix(b.Body, "..."))
}

func TestTitleFromText(t *testing.T) {
	assert.Equal(t, "Connect Hub", titleFromText("\n\n## Connect Hub\nDetails folgen."))
	assert.Equal(t, "Unbenanntes Produkt", titleFromText("   \n\n"))

	long := titleFromText(strings.Repeat("a", 100))
	assert.Len(t, long, 83)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>FlexSpace System im Test</title></head>
<body>
<article>
<h1>FlexSpace System im Test</h1>
<p>Das modulare Duschsystem richtet sich an Eigentuemer, die ihr Bad ohne Komplettsanierung modernisieren wollen. Die Montage dauert nach Herstellerangaben zwei Tage.</p>
<p>Im Alltagstest ueberzeugte vor allem die werkzeuglose Anpassung der Ablagen. Die Wasserfuehrung blieb auch bei niedrigem Druck stabil.</p>
<p>Fuer Mieter interessant: Das System laesst sich rueckstandsfrei demontieren und in die naechste Wohnung mitnehmen.</p>
</article>
</body>
</html>`)
	}))
	defer srv.Close()

	b, err := Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, b.Title, "FlexSpace")
	assert.Contains(t, b.Body, "modulare Duschsystem")
	assert.Equal(t, srv.URL, b.Source)
}

func TestLoadURLErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL+"/fehlt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
