package infrastructure

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shareconnect-go/internal/domain"
)

func testProfile(service domain.ServiceType, client domain.TorrentClientType) *domain.ServerProfile {
	return &domain.ServerProfile{
		ID:                "p1",
		Name:              "Home",
		Host:              "http://nas.local",
		Port:              8081,
		ServiceType:       service,
		TorrentClientType: client,
	}
}

// profileFor points a profile at a test server
func profileFor(t *testing.T, srv *httptest.Server, service domain.ServiceType, client domain.TorrentClientType) *domain.ServerProfile {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	p := testProfile(service, client)
	p.Host = u.Scheme + "://" + u.Hostname()
	p.Port = port
	return p
}

func readBody(t *testing.T, req *http.Request) string {
	t.Helper()
	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	return string(data)
}

func TestDefaultAdapters_CoverEveryBackend(t *testing.T) {
	keys := make(map[domain.BackendKey]bool)
	for _, a := range DefaultAdapters() {
		assert.False(t, keys[a.Backend()], "duplicate adapter for %s", a.Backend())
		keys[a.Backend()] = true
	}

	for _, service := range domain.ServiceTypes {
		if service == domain.ServiceTorrent {
			for _, client := range domain.TorrentClientTypes {
				assert.True(t, keys[domain.BackendKey{Service: service, Client: client}], "missing %s/%s", service, client)
			}
			continue
		}
		assert.True(t, keys[domain.BackendKey{Service: service}], "missing %s", service)
	}
}

func TestMeTubeAdapter_BuildRequest(t *testing.T) {
	req, err := NewMeTubeAdapter().BuildRequest(context.Background(), testProfile(domain.ServiceMeTube, ""), "https://youtube.com/watch?v=abc")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "http://nas.local:8081/add", req.URL.String())
	assert.Equal(t, "application/json; charset=utf-8", req.Header.Get("Content-Type"))
	assert.Equal(t, `{"url":"https://youtube.com/watch?v=abc","quality":"best"}`, readBody(t, req))
}

func TestYTDLAdapter_NoHTMLEscaping(t *testing.T) {
	link := "https://youtube.com/watch?v=abc&list=PL<1>"
	req, err := NewYTDLAdapter().BuildRequest(context.Background(), testProfile(domain.ServiceYTDL, ""), link)
	require.NoError(t, err)

	assert.Equal(t, `{"url":"https://youtube.com/watch?v=abc&list=PL<1>","quality":"best"}`, readBody(t, req))
}

func TestQBittorrentAdapter_BuildRequest(t *testing.T) {
	link := "magnet:?xt=urn:btih:abc&dn=Ubuntu"
	req, err := NewQBittorrentAdapter().BuildRequest(context.Background(), testProfile(domain.ServiceTorrent, domain.TorrentQBittorrent), link)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "http://nas.local:8081/api/v2/torrents/add", req.URL.String())

	require.NoError(t, req.ParseMultipartForm(1<<20))
	assert.Equal(t, []string{link}, req.MultipartForm.Value["urls"])
}

func TestQBittorrentAdapter_AuthenticateSkippedWithoutUsername(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	profile := profileFor(t, srv, domain.ServiceTorrent, domain.TorrentQBittorrent)
	require.NoError(t, NewQBittorrentAdapter().Authenticate(context.Background(), srv.Client(), profile))
	assert.False(t, called)
}

func TestQBittorrentAdapter_AuthenticateSetsCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/auth/login":
			assert.NoError(t, r.ParseForm())
			if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "secret" {
				io.WriteString(w, "Fails.")
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "SID", Value: "session-1", Path: "/"})
			io.WriteString(w, "Ok.")
		case "/api/v2/torrents/add":
			cookie, err := r.Cookie("SID")
			if err != nil || cookie.Value != "session-1" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			io.WriteString(w, "Ok.")
		}
	}))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	adapter := NewQBittorrentAdapter()
	profile := profileFor(t, srv, domain.ServiceTorrent, domain.TorrentQBittorrent)
	profile.Username = "admin"
	profile.Password = "secret"

	require.NoError(t, adapter.Authenticate(context.Background(), client, profile))

	req, err := adapter.BuildRequest(context.Background(), profile, "magnet:?xt=urn:btih:abc")
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestQBittorrentAdapter_AuthenticateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Fails.")
	}))
	defer srv.Close()

	profile := profileFor(t, srv, domain.ServiceTorrent, domain.TorrentQBittorrent)
	profile.Username = "admin"
	profile.Password = "wrong"

	err := NewQBittorrentAdapter().Authenticate(context.Background(), srv.Client(), profile)
	require.Error(t, err)
	assert.Equal(t, "qBittorrent login failed: Fails.", err.Error())
}

func TestTransmissionAdapter_BuildRequest(t *testing.T) {
	profile := testProfile(domain.ServiceTorrent, domain.TorrentTransmission)
	profile.Username = "user"
	profile.Password = "pass"

	link := "magnet:?xt=urn:btih:abc&dn=Ubuntu"
	req, err := NewTransmissionAdapter().BuildRequest(context.Background(), profile, link)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "http://nas.local:8081/transmission/rpc", req.URL.String())
	assert.Empty(t, req.Header.Get("X-Transmission-Session-Id"))
	assert.Equal(t, `{"method":"torrent-add","arguments":{"filename":"magnet:?xt=urn:btih:abc&dn=Ubuntu"}}`, readBody(t, req))

	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "pass", pass)
}

func TestTransmissionAdapter_Renegotiate(t *testing.T) {
	adapter := NewTransmissionAdapter()
	profile := testProfile(domain.ServiceTorrent, domain.TorrentTransmission)

	// Not a challenge
	assert.False(t, adapter.Renegotiate(profile, &http.Response{StatusCode: http.StatusOK, Header: http.Header{}}))

	// 409 without an id cannot be answered
	assert.False(t, adapter.Renegotiate(profile, &http.Response{StatusCode: http.StatusConflict, Header: http.Header{}}))

	challenge := &http.Response{StatusCode: http.StatusConflict, Header: http.Header{}}
	challenge.Header.Set("X-Transmission-Session-Id", "sess-42")
	assert.True(t, adapter.Renegotiate(profile, challenge))

	req, err := adapter.BuildRequest(context.Background(), profile, "magnet:?xt=urn:btih:abc")
	require.NoError(t, err)
	assert.Equal(t, "sess-42", req.Header.Get("X-Transmission-Session-Id"))

	// Cache is per server
	other := testProfile(domain.ServiceTorrent, domain.TorrentTransmission)
	other.Port = 9091
	req, err = adapter.BuildRequest(context.Background(), other, "magnet:?xt=urn:btih:abc")
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("X-Transmission-Session-Id"))
}

func TestUTorrentAdapter_BuildRequest(t *testing.T) {
	link := "magnet:?xt=urn:btih:abc&dn=Ubuntu 24.04"
	req, err := NewUTorrentAdapter().BuildRequest(context.Background(), testProfile(domain.ServiceTorrent, domain.TorrentUTorrent), link)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "http://nas.local:8081/gui/?action=add-url&s="+url.QueryEscape(link), req.URL.String())
	assert.Equal(t, "add-url", req.URL.Query().Get("action"))
	assert.Equal(t, link, req.URL.Query().Get("s"))

	_, _, ok := req.BasicAuth()
	assert.False(t, ok)
}

func TestJDownloaderAdapter_BuildRequest(t *testing.T) {
	link := "https://example.com/file.zip?a=1&b=2"
	req, err := NewJDownloaderAdapter().BuildRequest(context.Background(), testProfile(domain.ServiceJDownloader, ""), link)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "http://nas.local:8081/flashget?url="+url.QueryEscape(link), req.URL.String())
	assert.Equal(t, link, req.URL.Query().Get("url"))
}

func TestBaseURL_TrailingSlashTrimmed(t *testing.T) {
	profile := testProfile(domain.ServiceMeTube, "")
	profile.Host = "http://nas.local/"

	req, err := NewMeTubeAdapter().BuildRequest(context.Background(), profile, "https://youtube.com/watch?v=abc")
	require.NoError(t, err)
	assert.Equal(t, "http://nas.local:8081/add", req.URL.String())
}
