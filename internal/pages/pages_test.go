package pages

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studentvoice-backend/internal/config"

	"github.com/stretchr/testify/require"
)

var testFirebase = config.FirebaseConfig{
	APIKey:            "api-key",
	AuthDomain:        "studentvoice.firebaseapp.com",
	ProjectID:         "studentvoice",
	StorageBucket:     "studentvoice.appspot.com",
	MessagingSenderID: "1234",
	AppID:             "1:1234:web:abcd",
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head><title>Student Voice</title></head>
<body>
<script>
  %s
  firebase.initializeApp(firebaseConfig);
</script>
</body>
</html>`

func writePage(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestInjector(t *testing.T) *Injector {
	t.Helper()
	inj, err := NewInjector(testFirebase)
	require.NoError(t, err)
	return inj
}

func extractConfig(t *testing.T, document string) map[string]string {
	t.Helper()
	const prefix = "const firebaseConfig = "
	start := strings.Index(document, prefix)
	require.GreaterOrEqual(t, start, 0, "config declaration not found")
	rest := document[start+len(prefix):]
	end := strings.Index(rest, ";")
	require.Greater(t, end, 0)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &got))
	return got
}

func TestRender_ReplacesPlaceholderWithConfig(t *testing.T) {
	path := writePage(t, strings.Replace(pageTemplate, "%s", Placeholder, 1))

	out, err := newTestInjector(t).Render(path)
	require.NoError(t, err)
	require.NotContains(t, string(out), Placeholder)
	require.Equal(t, map[string]string{
		"apiKey":            "api-key",
		"authDomain":        "studentvoice.firebaseapp.com",
		"projectId":         "studentvoice",
		"storageBucket":     "studentvoice.appspot.com",
		"messagingSenderId": "1234",
		"appId":             "1:1234:web:abcd",
	}, extractConfig(t, string(out)))
}

func TestRender_KeepsFieldOrder(t *testing.T) {
	out := newTestInjector(t).Inject(Placeholder)
	require.Equal(t,
		`const firebaseConfig = {"apiKey":"api-key","authDomain":"studentvoice.firebaseapp.com","projectId":"studentvoice","storageBucket":"studentvoice.appspot.com","messagingSenderId":"1234","appId":"1:1234:web:abcd"};`,
		out)
}

func TestRender_EmptyOptionalFieldsStillPresent(t *testing.T) {
	inj, err := NewInjector(config.FirebaseConfig{APIKey: "k", AuthDomain: "d", ProjectID: "p"})
	require.NoError(t, err)

	got := extractConfig(t, inj.Inject(Placeholder))
	require.Len(t, got, 6)
	require.Equal(t, "", got["appId"])
}

func TestRender_WithoutPlaceholderIsUnchanged(t *testing.T) {
	body := strings.Replace(pageTemplate, "%s", "const firebaseConfig = window.cfg;", 1)
	path := writePage(t, body)

	out, err := newTestInjector(t).Render(path)
	require.NoError(t, err)
	require.Equal(t, body, string(out))
}

func TestRender_OnlyFirstPlaceholderReplaced(t *testing.T) {
	out := newTestInjector(t).Inject(Placeholder + "\n" + Placeholder)
	require.Equal(t, 1, strings.Count(out, Placeholder))
}

func TestRender_EscapesMarkupInValues(t *testing.T) {
	inj, err := NewInjector(config.FirebaseConfig{APIKey: "</script><script>alert(1)", AuthDomain: "d", ProjectID: "p"})
	require.NoError(t, err)

	out := inj.Inject(Placeholder)
	require.NotContains(t, out, "</script>")
	require.Equal(t, "</script><script>alert(1)", extractConfig(t, out)["apiKey"])
}

func TestRender_MissingFile(t *testing.T) {
	_, err := newTestInjector(t).Render(filepath.Join(t.TempDir(), "missing.html"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspect(t *testing.T) {
	t.Run("in script", func(t *testing.T) {
		report, err := Inspect(writePage(t, strings.Replace(pageTemplate, "%s", Placeholder, 1)))
		require.NoError(t, err)
		require.True(t, report.HasPlaceholder)
		require.True(t, report.InScript)
	})

	t.Run("outside script", func(t *testing.T) {
		report, err := Inspect(writePage(t, "<html><body><p>"+Placeholder+"</p></body></html>"))
		require.NoError(t, err)
		require.True(t, report.HasPlaceholder)
		require.False(t, report.InScript)
	})

	t.Run("absent", func(t *testing.T) {
		report, err := Inspect(writePage(t, "<html><body></body></html>"))
		require.NoError(t, err)
		require.False(t, report.HasPlaceholder)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Inspect(filepath.Join(t.TempDir(), "nope.html"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
