package shell

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/forgesdk/quarry/contracts"
)

const MaxRedirects = 10

// HTTPFetcher is the fetch-bytes capability: GET with redirect following
// bounded at MaxRedirects hops. Timeouts are the transport's own; there is no
// retry here (the caller fails over across candidate URLs instead).
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: newHTTPClient()}
}

func (this *HTTPFetcher) Fetch(address string) (io.ReadCloser, error) {
	response, err := this.client.Get(address)
	if err != nil {
		return nil, &contracts.TransportError{URL: address, Err: err}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		_ = response.Body.Close()
		return nil, &contracts.TransportError{URL: address, Err: fmt.Errorf("unexpected status: %s", response.Status)}
	}
	return response.Body, nil
}

func newHTTPClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(request *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", MaxRedirects)
			}
			return nil
		},
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 10 * time.Second,
			}).DialContext,
			MaxIdleConns:          32,
			IdleConnTimeout:       32 * time.Second,
			TLSHandshakeTimeout:   16 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
