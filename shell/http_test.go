package shell

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/forgesdk/quarry/contracts"
)

func TestHTTPFetcherFixture(t *testing.T) {
	gunit.Run(new(HTTPFetcherFixture), t)
}

type HTTPFetcherFixture struct {
	*gunit.Fixture

	fetcher *HTTPFetcher
}

func (this *HTTPFetcherFixture) Setup() {
	this.fetcher = NewHTTPFetcher()
}

func (this *HTTPFetcherFixture) TestSuccessfulFetchReturnsBody() {
	server := httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		_, _ = response.Write([]byte("payload"))
	}))
	defer server.Close()

	body, err := this.fetcher.Fetch(server.URL)

	this.So(err, should.BeNil)
	content, _ := io.ReadAll(body)
	_ = body.Close()
	this.So(string(content), should.Equal, "payload")
}

func (this *HTTPFetcherFixture) TestRedirectsAreFollowed() {
	target := httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		_, _ = response.Write([]byte("relocated"))
	}))
	defer target.Close()
	server := httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		http.Redirect(response, request, target.URL, http.StatusFound)
	}))
	defer server.Close()

	body, err := this.fetcher.Fetch(server.URL)

	this.So(err, should.BeNil)
	content, _ := io.ReadAll(body)
	_ = body.Close()
	this.So(string(content), should.Equal, "relocated")
}

func (this *HTTPFetcherFixture) TestRedirectBoundEnforced() {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		http.Redirect(response, request, server.URL, http.StatusFound)
	}))
	defer server.Close()

	_, err := this.fetcher.Fetch(server.URL)

	var transport *contracts.TransportError
	this.So(errors.As(err, &transport), should.BeTrue)
	this.So(err.Error(), should.ContainSubstring, "redirects")
}

func (this *HTTPFetcherFixture) TestNonSuccessStatusIsFatal() {
	server := httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		http.NotFound(response, request)
	}))
	defer server.Close()

	_, err := this.fetcher.Fetch(server.URL)

	var transport *contracts.TransportError
	this.So(errors.As(err, &transport), should.BeTrue)
	this.So(err.Error(), should.ContainSubstring, "404")
}
