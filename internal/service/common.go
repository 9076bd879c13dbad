package service

import (
	"KolAnalytics/internal/authz"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/adplatform"
	"KolAnalytics/internal/pkg/util"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// authorize 未登录返回 ErrUnauthenticated，策略拒绝返回 ErrForbidden
func authorize(policy authz.AccessPolicy, actor *model.Actor, res model.Resource, action model.Action) error {
	if actor == nil || actor.ID == 0 {
		return ErrUnauthenticated
	}
	if !policy.Can(actor, res, action) {
		return ErrForbidden
	}
	return nil
}

// parseDateRange 两端同时为空时返回 nil，表示使用平台默认窗口
func parseDateRange(start, end string, maxDays int) (*adplatform.DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("%w: start_date 与 end_date 需同时提供", ErrInvalidDateRange)
	}

	startDate, err := util.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDate, start)
	}
	endDate, err := util.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDate, end)
	}

	dateRange := &adplatform.DateRange{Start: startDate, End: endDate}
	if err = validateDateRange(dateRange, maxDays); err != nil {
		return nil, err
	}
	return dateRange, nil
}

func validateDateRange(dateRange *adplatform.DateRange, maxDays int) error {
	if dateRange == nil {
		return nil
	}
	if dateRange.Start.After(dateRange.End) {
		return fmt.Errorf("%w: 开始日期晚于结束日期", ErrInvalidDateRange)
	}
	if dateRange.End.After(util.Today()) {
		return ErrFutureDate
	}
	if maxDays > 0 && int(dateRange.End.Sub(dateRange.Start).Hours()/24)+1 > maxDays {
		return fmt.Errorf("%w: 跨度不能超过 %d 天", ErrInvalidDateRange, maxDays)
	}
	return nil
}

// validateMoney 金额不能为负
func validateMoney(amounts ...decimal.Decimal) error {
	for _, amount := range amounts {
		if amount.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

// upstreamError 统一包装外部数据源错误
func upstreamError(err error) error {
	if errors.Is(err, ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

// materialIDFromURL 取视频链接最后一段路径作为素材ID
func materialIDFromURL(videoURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(videoURL))
	if err != nil || u.Host == "" {
		return "", ErrParamInvalid
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	materialID := segments[len(segments)-1]
	if materialID == "" {
		return "", fmt.Errorf("%w: 无法从链接解析素材ID", ErrParamInvalid)
	}
	return materialID, nil
}

func logCacheError(ctx context.Context, err error) {
	log.WarnContext(ctx, "invalidate dashboard cache failed", "err", err)
}
