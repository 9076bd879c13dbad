package adplatform

import (
	"KolAnalytics/internal/api/config"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/sethvargo/go-retry"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
	retryBaseBackoff  = 200 * time.Millisecond
)

// envelope 平台统一响应格式，code 为 0 表示成功
type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// StatusError 平台返回非 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("adplatform: unexpected status %d: %s", e.StatusCode, e.Body)
}

type httpClient struct {
	client     *resty.Client
	maxRetries uint64
	backoff    time.Duration
}

func NewHTTPClient(cfg config.AdPlatformConfig) Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Accept", "application/json").
		SetHeader("X-Api-Key", cfg.ApiKey).
		SetHeader("X-Api-Secret", cfg.ApiSecret)

	return &httpClient{
		client:     client,
		maxRetries: maxRetries,
		backoff:    retryBaseBackoff,
	}
}

func (s *httpClient) FetchPromotionRows(ctx context.Context, materialID string, dateRange *DateRange) ([]PromotionRow, error) {
	params := map[string]string{"material_id": materialID}
	if dateRange != nil {
		params["start_date"] = dateRange.Start.Format(time.DateOnly)
		params["end_date"] = dateRange.End.Format(time.DateOnly)
	}

	var rows []PromotionRow
	err := s.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetQueryParams(params).Get("/api/v1/promotion/data")
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *httpClient) FetchInfluencerInfo(ctx context.Context, videoURL string) (*InfluencerInfo, error) {
	var info *InfluencerInfo
	err := s.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetQueryParam("video_url", videoURL).Get("/api/v1/influencer/info")
	}, &info)
	if err != nil {
		return nil, err
	}
	if info == nil || info.UID == "" {
		return nil, ErrNotFound
	}
	return info, nil
}

func (s *httpClient) FetchMaterialBatch(ctx context.Context, materialIDs []string) ([]MaterialRow, error) {
	if len(materialIDs) == 0 {
		return []MaterialRow{}, nil
	}
	var rows []MaterialRow
	err := s.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(map[string]any{"material_ids": materialIDs}).Post("/api/v1/material/batch")
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *httpClient) FetchMaterialIDs(ctx context.Context, influencerUID string) ([]string, error) {
	var ids []string
	err := s.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetQueryParam("uid", influencerUID).Get("/api/v1/influencer/materials")
	}, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// do 发送请求并解析 envelope，网络错误、5xx 与 429 按指数退避重试
func (s *httpClient) do(ctx context.Context, send func(req *resty.Request) (*resty.Response, error), out any) error {
	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(s.backoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := send(s.client.R().SetContext(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.WarnContext(ctx, "adplatform request failed", "err", err)
			return retry.RetryableError(err)
		}

		if resp.StatusCode() == http.StatusNotFound {
			return ErrNotFound
		}
		if resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError {
			log.WarnContext(ctx, "adplatform transient status", "status", resp.StatusCode(), "url", resp.Request.URL)
			return retry.RetryableError(&StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
		}
		if !resp.IsSuccess() {
			return &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
		}

		env := envelope[json.RawMessage]{}
		if err = json.Unmarshal(resp.Body(), &env); err != nil {
			return fmt.Errorf("adplatform: decode response: %w", err)
		}
		if env.Code != 0 {
			return fmt.Errorf("adplatform: business error %d: %s", env.Code, env.Message)
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}
		if err = json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("adplatform: decode data: %w", err)
		}
		return nil
	})
}

// IsNotFound 判断是否为上游无数据
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
