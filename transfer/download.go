package transfer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/forgesdk/quarry/contracts"
	"github.com/forgesdk/quarry/core"
)

// DownloadClient fetches a remote artifact to local storage and verifies its
// checksum. A mismatched file is deleted before the error is returned.
type DownloadClient struct {
	fetcher contracts.Fetcher
}

func NewDownloadClient(fetcher contracts.Fetcher) *DownloadClient {
	return &DownloadClient{fetcher: fetcher}
}

func (this *DownloadClient) FetchAndVerify(address, checksum, localPath string) error {
	expected := ""
	if checksum != "" {
		digest, err := core.ParseChecksum(checksum)
		if err != nil {
			return &contracts.TransportError{URL: address, Err: err}
		}
		expected = digest
	}

	body, err := this.fetcher.Fetch(address)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	err = os.MkdirAll(filepath.Dir(localPath), 0755)
	if err != nil {
		return err
	}
	file, err := os.Create(localPath)
	if err != nil {
		return err
	}
	hashed := core.NewTeeHasher(body)
	_, copyErr := io.Copy(file, hashed)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(localPath)
		if copyErr != nil {
			return &contracts.TransportError{URL: address, Err: copyErr}
		}
		return closeErr
	}

	if expected != "" && hashed.Sum() != expected {
		_ = os.Remove(localPath)
		return &contracts.IntegrityError{Path: localPath, Expected: expected, Actual: hashed.Sum()}
	}
	return nil
}
