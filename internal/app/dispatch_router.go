package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/yourusername/shareconnect-go/internal/domain"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of an error response ends up in a message
const maxErrorBody = 4096

// DispatchRouter sends links to the back-end of a profile. Each send runs on
// its own goroutine and reports exactly one result.
type DispatchRouter struct {
	client    domain.HTTPDoer
	adapters  map[domain.BackendKey]domain.BackendAdapter
	userAgent string
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewDispatchRouter creates a router over the given adapters
func NewDispatchRouter(client domain.HTTPDoer, adapters []domain.BackendAdapter, userAgent string, logger *zap.Logger) *DispatchRouter {
	if logger == nil {
		logger = zap.NewNop()
	}
	byKey := make(map[domain.BackendKey]domain.BackendAdapter, len(adapters))
	for _, a := range adapters {
		byKey[a.Backend()] = a
	}
	return &DispatchRouter{
		client:    client,
		adapters:  byKey,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Send dispatches link in the background and calls callback once with the
// outcome. Cancellation of ctx is ignored; the transport timeout bounds the
// send instead. callback may be nil; a panic inside it is logged and dropped.
func (r *DispatchRouter) Send(ctx context.Context, profile domain.ServerProfile, link string, callback func(domain.DispatchResult)) {
	ctx = context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		result := r.dispatchSafely(ctx, &profile, link)
		if callback != nil {
			r.deliver(callback, &profile, result)
		}
	}()
}

func (r *DispatchRouter) deliver(callback func(domain.DispatchResult), profile *domain.ServerProfile, result domain.DispatchResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Dispatch callback panicked",
				zap.String("profile_id", profile.ID),
				zap.Bool("success", result.OK),
				zap.Any("panic", rec))
		}
	}()
	callback(result)
}

// Go is the future form of Send. The channel yields one result and is then
// closed.
func (r *DispatchRouter) Go(ctx context.Context, profile domain.ServerProfile, link string) <-chan domain.DispatchResult {
	ch := make(chan domain.DispatchResult, 1)
	r.Send(ctx, profile, link, func(result domain.DispatchResult) {
		ch <- result
		close(ch)
	})
	return ch
}

// Wait blocks until every in-flight send has reported
func (r *DispatchRouter) Wait() {
	r.wg.Wait()
}

func (r *DispatchRouter) dispatchSafely(ctx context.Context, profile *domain.ServerProfile, link string) (result domain.DispatchResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Dispatch panicked",
				zap.String("profile_id", profile.ID),
				zap.Any("panic", rec))
			result = domain.Failure(fmt.Sprintf("internal error: %v", rec))
		}
	}()
	return r.dispatch(ctx, profile, link)
}

func (r *DispatchRouter) dispatch(ctx context.Context, profile *domain.ServerProfile, link string) domain.DispatchResult {
	key, err := profile.Backend()
	if err != nil {
		return domain.Failure(err.Error())
	}
	adapter, ok := r.adapters[key]
	if !ok {
		return domain.Failure("No adapter for " + key.String())
	}

	if auth, ok := adapter.(domain.Authenticator); ok {
		if err := auth.Authenticate(ctx, r.client, profile); err != nil {
			return domain.Failure(err.Error())
		}
	}

	resp, err := r.do(ctx, adapter, profile, link)
	if err != nil {
		return domain.Failure(err.Error())
	}

	// One resend after a session challenge
	if negotiator, ok := adapter.(domain.SessionNegotiator); ok && negotiator.Renegotiate(profile, resp) {
		drain(resp)
		resp, err = r.do(ctx, adapter, profile, link)
		if err != nil {
			return domain.Failure(err.Error())
		}
	}

	return interpret(resp)
}

func (r *DispatchRouter) do(ctx context.Context, adapter domain.BackendAdapter, profile *domain.ServerProfile, link string) (*http.Response, error) {
	req, err := adapter.BuildRequest(ctx, profile, link)
	if err != nil {
		return nil, err
	}
	if r.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	r.logger.Debug("Sending request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.String("backend", adapter.Backend().String()))

	return r.client.Do(req)
}

// interpret maps a response to a result and closes its body
func interpret(resp *http.Response) domain.DispatchResult {
	defer drain(resp)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return domain.Success(resp.StatusCode)
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	body := strings.TrimSpace(string(data))
	if body == "" {
		body = "Unknown error"
	}
	result := domain.Failure(fmt.Sprintf("%d - %s", resp.StatusCode, body))
	result.StatusCode = resp.StatusCode
	return result
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
