package payrollapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/pkg/logger"
)

const sendDataPath = "/api/senddata"

// PayoutLine is one {address, amount} entry of the payroll-data payload
type PayoutLine struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type sendDataRequest struct {
	Data     []PayoutLine `json:"data"`
	Employer string       `json:"employer"`
}

// Client posts payout instructions to the payroll-data service
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a payroll-data client; rps <= 0 disables throttling
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int) *Client {
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Inf, burst)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}
}

// SendWorkerPayout submits a single worker payout for the employer.
// Any non-2xx answer is returned as ErrPayrollDataSubmission.
func (c *Client) SendWorkerPayout(ctx context.Context, employer string, payout entities.WorkerPayout) error {
	return c.SendData(ctx, employer, []PayoutLine{{
		Address: payout.WalletAddress,
		Amount:  payout.Amount.String(),
	}})
}

// SendData posts {data, employer} to /api/senddata
func (c *Client) SendData(ctx context.Context, employer string, lines []PayoutLine) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(sendDataRequest{Data: lines, Employer: employer})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendDataPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrPayrollDataSubmission, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Warn(ctx, "Payroll data API rejected payout",
			zap.String("employer", employer),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(snippet)),
		)
		return fmt.Errorf("%w: status %d", domainerrors.ErrPayrollDataSubmission, resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
