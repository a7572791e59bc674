package rickmorty

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRicks = `{
  "info": {"count": 2, "pages": 1, "next": null, "prev": null},
  "results": [
    {"id": 1, "name": "Rick Sanchez", "status": "Alive", "species": "Human",
     "image": "https://example.com/1.jpeg",
     "episode": ["https://example.com/e/1", "https://example.com/e/2", "https://example.com/e/3"]},
    {"id": 2, "name": "Ricky", "status": "unknown", "species": "Alien",
     "image": "https://example.com/2.jpeg",
     "episode": ["https://example.com/e/7"]}
  ]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL+"/api/character/"), WithHTTPClient(srv.Client()))
}

func TestClient_SearchCharacters_Success(t *testing.T) {
	var gotPath, gotName, gotUA string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoRicks))
	})

	page, err := c.SearchCharacters(context.Background(), "Rick")
	require.NoError(t, err)

	assert.Equal(t, "/api/character/", gotPath)
	assert.Equal(t, "Rick", gotName)
	assert.Equal(t, userAgent, gotUA)

	assert.Equal(t, 2, page.Count)
	assert.Equal(t, 1, page.Pages)
	assert.Empty(t, page.Next)
	require.Len(t, page.Characters, 2)
	assert.Equal(t, Character{
		ID:           1,
		Name:         "Rick Sanchez",
		Status:       "Alive",
		Species:      "Human",
		ImageURL:     "https://example.com/1.jpeg",
		EpisodeCount: 3,
	}, page.Characters[0])
	assert.Equal(t, 1, page.Characters[1].EpisodeCount)
}

func TestClient_SearchCharacters_EscapesTerm(t *testing.T) {
	var rawQuery string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"info":{},"results":[]}`))
	})

	_, err := c.SearchCharacters(context.Background(), "Mr. Poopy & co")
	require.NoError(t, err)
	assert.Equal(t, "name=Mr.+Poopy+%26+co", rawQuery)
}

func TestClient_SearchCharacters_NotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"There is nothing here"}`))
	})

	page, err := c.SearchCharacters(context.Background(), "zzz")
	assert.Nil(t, page)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_SearchCharacters_ServerError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.SearchCharacters(context.Background(), "rick")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServer)
	assert.NotErrorIs(t, err, ErrNotFound)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestClient_SearchCharacters_MalformedBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})

	_, err := c.SearchCharacters(context.Background(), "rick")
	assert.ErrorIs(t, err, ErrServer)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestClient_SearchCharacters_NetworkError(t *testing.T) {
	c := New(WithHTTPClient(&http.Client{Transport: failingTransport{}}))

	_, err := c.SearchCharacters(context.Background(), "rick")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrServer)
}

func TestClient_SearchCharacters_CanceledIsNotClassified(t *testing.T) {
	c := New(WithHTTPClient(&http.Client{Transport: failingTransport{}}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchCharacters(ctx, "rick")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrNetwork)
}

func TestClient_FetchImage(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/1.jpeg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("jpegdata"))
	})
	base := c.BaseURL()[:len(c.BaseURL())-len("/api/character/")]

	data, err := c.FetchImage(context.Background(), base+"/img/1.jpeg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)

	_, err = c.FetchImage(context.Background(), base+"/img/missing.jpeg")
	assert.ErrorIs(t, err, ErrServer)
}

func TestNew_Options(t *testing.T) {
	c := New(WithBaseURL(""), WithUserAgent("test/1.0"))
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, "test/1.0", c.userAgent)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
}
