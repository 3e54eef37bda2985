package roadmap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"change_tracker/internal/domain"
)

const pageData = `{
  "portalTabs": [
    {"id": "t-planned", "name": "Planned", "slug": "planned"},
    {"id": "t-shipped", "name": "Shipped", "slug": "shipped"},
    {"id": "t-ideas", "name": "Ideas", "slug": "ideas"}
  ],
  "portalSections": [
    {"id": "s1", "portalTabId": "t-planned", "position": 0},
    {"id": "s2", "portalTabId": "t-planned", "position": 1},
    {"id": "s3", "portalTabId": "t-shipped", "position": 0}
  ],
  "portalCards": [
    {"id": "c3", "name": "Dark mode", "description": "<p>Finally</p>", "imageUrl": null, "slug": "dark-mode"},
    {"id": "c1", "name": "Exports", "description": "CSV exports", "imageUrl": "https://img.example.com/e.png", "slug": "exports"},
    {"id": "c2", "name": "SSO", "description": "SAML", "slug": "sso"}
  ],
  "portalCardAssignments": [
    {"portalTabId": "t-planned", "portalSectionId": "s2", "portalCardId": "c3", "position": 0},
    {"portalTabId": "t-planned", "portalSectionId": "s1", "portalCardId": "c1", "position": 2},
    {"portalTabId": "t-shipped", "portalSectionId": "s3", "portalCardId": "c2", "position": 5}
  ]
}`

const pageHTML = `<!DOCTYPE html>
<html>
<head>
  <script>var analytics = {"enabled": false};</script>
  <script type="text/javascript">
    window.pbData = ` + pageData + `;
  </script>
</head>
<body><div id="app"></div></body>
</html>`

func TestExtractData(t *testing.T) {
	data, err := ExtractData([]byte(pageHTML))
	require.NoError(t, err)
	assert.JSONEq(t, pageData, string(data))

	_, err = ExtractData([]byte("<html><script>var x = 1;</script></html>"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))

	_, err = ExtractData([]byte("<p>window.pbData = {\"a\": 1}</p>"))
	require.Error(t, err, "marker outside a script must be ignored")
}

func TestBuildSnapshot(t *testing.T) {
	page, err := DecodePage([]byte(pageData))
	require.NoError(t, err)

	r, err := BuildSnapshot(page, []string{"t-planned", "t-ideas"})
	require.NoError(t, err)

	require.Len(t, r.Tabs, 3)
	assert.Equal(t, "Shipped", r.Tabs[1].Name)

	_, ok := r.Cards["t-shipped"]
	assert.False(t, ok, "unwatched tab cards must not be loaded")
	_, ok = r.Cards["t-ideas"]
	assert.False(t, ok, "watched tab without assignments gets no entry")

	planned := r.Cards["t-planned"]
	require.Len(t, planned, 2)
	assert.Equal(t, "c1", planned[0].ExternalID)
	assert.Equal(t, 0, planned[0].SectionPosition)
	assert.Equal(t, 2, planned[0].CardPosition)
	require.NotNil(t, planned[0].ImageURL)
	assert.Equal(t, "c3", planned[1].ExternalID)
	assert.Equal(t, 1, planned[1].SectionPosition)
	assert.Nil(t, planned[1].ImageURL)
}

func TestBuildSnapshot_DanglingReferences(t *testing.T) {
	page, err := DecodePage([]byte(pageData))
	require.NoError(t, err)

	badSection := *page
	badSection.Assignments = []PageAssignment{{TabID: "t-planned", SectionID: "nope", CardID: "c1"}}
	_, err = BuildSnapshot(&badSection, []string{"t-planned"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))

	badCard := *page
	badCard.Assignments = []PageAssignment{{TabID: "t-planned", SectionID: "s1", CardID: "c404"}}
	_, err = BuildSnapshot(&badCard, []string{"t-planned"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))
}

func TestDecodePage_Malformed(t *testing.T) {
	_, err := DecodePage([]byte(`{"portalTabs": [`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(pageHTML))
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Timeout: 2 * time.Second, UserAgent: "test-agent"}, testLogger())

	r, err := c.Fetch(context.Background(), []string{"t-shipped"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.CardCount())
	assert.Equal(t, "SSO", r.Cards["t-shipped"][0].Name)
}

func TestClient_Fetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Timeout: 2 * time.Second}, testLogger())

	_, err := c.Fetch(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
}
