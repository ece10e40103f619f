package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"recipe-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SourceOptions 資料來源讀取設定
type SourceOptions struct {
	FetchTimeout time.Duration // 遠端下載逾時
	MaxBytes     int64         // 遠端下載大小上限，0 表示不限制
	Client       *resty.Client // 可選，測試時注入
}

// IsRemote 判斷是否為遠端 URL
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// LoadSource 從本地檔案或 HTTP(S) URL 載入語料
func LoadSource(ctx context.Context, path string, opts SourceOptions) (*Corpus, error) {
	if strings.TrimSpace(path) == "" {
		return nil, common.NewCorpusFormatError("<empty>", "corpus path is not configured", nil)
	}

	if IsRemote(path) {
		data, err := fetch(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		return Load(bytes.NewReader(data), path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewCorpusFormatError(path, "cannot open corpus file", err)
	}
	defer f.Close()
	return Load(f, path)
}

// fetch 使用 resty 下載遠端語料
func fetch(ctx context.Context, url string, opts SourceOptions) ([]byte, error) {
	client := opts.Client
	if client == nil {
		client = resty.New().
			SetHeader("Accept", "text/csv, text/plain, */*").
			SetHeader("User-Agent", "recipe-recommender")
	}
	if opts.FetchTimeout > 0 {
		client.SetTimeout(opts.FetchTimeout)
	}

	start := time.Now()
	resp, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, common.NewCorpusFormatError(url, "download failed", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, common.NewCorpusFormatError(url, fmt.Sprintf("unexpected status code %d", resp.StatusCode()), nil)
	}

	var reader io.Reader = body
	if opts.MaxBytes > 0 {
		reader = io.LimitReader(body, opts.MaxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, common.NewCorpusFormatError(url, "failed to read response body", err)
	}
	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		return nil, common.NewCorpusFormatError(url, fmt.Sprintf("corpus exceeds %d bytes", opts.MaxBytes), nil)
	}

	common.LogInfo("Corpus downloaded",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return data, nil
}
