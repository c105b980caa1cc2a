package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Client is the typed surface of the finance API. One method per
// endpoint; every failure is a *APIError.
type Client interface {
	Health(ctx context.Context) (any, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	GetTransaction(ctx context.Context, id string) (Transaction, error)
	CreateTransaction(ctx context.Context, tx Transaction) (Transaction, error)
	UpdateTransaction(ctx context.Context, tx Transaction) (Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListBudgets(ctx context.Context, filter BudgetFilter) ([]Budget, error)
	UpsertBudget(ctx context.Context, budget Budget) (Budget, error)
	BudgetSummary(ctx context.Context, month string) ([]BudgetSummaryItem, error)
	ListGoals(ctx context.Context) ([]Goal, error)
	GetGoal(ctx context.Context, id string) (Goal, error)
	CreateGoal(ctx context.Context, goal Goal) (Goal, error)
	UpdateGoal(ctx context.Context, goal Goal) (Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	Summary(ctx context.Context, query SummaryQuery) (*AnalyticsSummary, error)
	Behaviors(ctx context.Context, dates DateRange) (*BehaviorsReport, error)
	OverspendingAlerts(ctx context.Context, month string) ([]OverspendingAlert, error)
	SavingsAdvice(ctx context.Context, period string) (*SavingsAdvice, error)
	GoalsPlan(ctx context.Context) ([]GoalPlanItem, error)
	SeedDemoLoad(ctx context.Context, opts SeedOptions) error
	SeedDemoClear(ctx context.Context) error
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client against the given base endpoint. Trailing
// slashes are stripped so paths can always start with "/". No request
// timeout is set; callers control lifetime through ctx.
func NewClient(baseURL string) *ClientImpl {
	return &ClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// RequestOptions configures a single untyped request.
type RequestOptions struct {
	Method string
	Query  map[string]string
	Body   any
}

// Request executes one call and returns the decoded payload: structured
// data for application/json responses, the raw text otherwise, nil when
// the body could not be parsed.
func (c *ClientImpl) Request(ctx context.Context, path string, opts RequestOptions) (any, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	var payload any
	if err := c.do(ctx, method, path, opts.Query, opts.Body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// do executes one request and normalizes every failure into *APIError.
// The response payload is decoded into out when out is non-nil; a
// payload that fails to decode is dropped rather than propagated.
func (c *ClientImpl) do(ctx context.Context, method, path string, query map[string]string, body any, out any) error {
	reqId := uuid.NewString()

	target := c.baseURL + path
	if encoded := encodeQuery(query); encoded != "" {
		target += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			reader = strings.NewReader(s)
		} else {
			data, err := json.Marshal(body)
			if err != nil {
				return newNetworkError(err)
			}
			reader = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return newNetworkError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debugf("[%s] %s %s", reqId, method, target)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The client sets no deadlines of its own, so an expired deadline
		// is a caller-side cancellation and reported the same as an
		// explicit abort.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Debugf("[%s] request aborted", reqId)
			return newAbortError()
		}
		log.Debugf("[%s] request failed: %v", reqId, err)
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newNetworkError(err)
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed any
		if isJSON {
			if err := json.Unmarshal(data, &parsed); err != nil {
				parsed = nil
			}
		} else if len(data) > 0 {
			parsed = string(data)
		}
		apiErr := newStatusError(resp.StatusCode, parsed)
		log.Debugf("[%s] %s %s -> %d: %s", reqId, method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if !isJSON {
		if target, ok := out.(*any); ok {
			*target = string(data)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Debugf("[%s] dropping unparseable response payload: %v", reqId, err)
	}
	return nil
}

// encodeQuery serializes query parameters, omitting keys whose value is
// empty instead of encoding them as blanks.
func encodeQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range query {
		if value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values.Encode()
}
