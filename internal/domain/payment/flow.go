// internal/domain/payment/flow.go
package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/winston-coffee/ordering-backend/internal/config"
	"github.com/winston-coffee/ordering-backend/internal/domain/cart"
	"github.com/winston-coffee/ordering-backend/internal/domain/order"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
)

// State is the checkout flow's single authoritative state. One value at a
// time; impossible combinations (a countdown with no token) cannot be
// represented.
type State string

const (
	StateSelecting       State = "selecting"
	StateSubmitting      State = "submitting"
	StateRequestingToken State = "requesting_token"
	StateCountdown       State = "countdown_display"
	StateRedeeming       State = "redeeming"
	StateFinalized       State = "finalized"
	StateFailed          State = "failed"
)

// Flow tracks one checkout's progress through the state machine
type Flow struct {
	mu        sync.Mutex
	OrderID   uint
	state     State
	Token     string
	countdown *Countdown
}

// State returns the flow's current state
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CountdownRemaining returns the seconds left before the widget hand-off,
// or zero when no countdown is running
func (f *Flow) CountdownRemaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countdown == nil {
		return 0
	}
	return f.countdown.Remaining()
}

func (f *Flow) transition(to State) {
	f.mu.Lock()
	f.state = to
	f.mu.Unlock()
}

// CheckoutResult is what the handler returns to the client
type CheckoutResult struct {
	OrderID          uint   `json:"order_id"`
	State            State  `json:"state"`
	Token            string `json:"token,omitempty"`
	CountdownSeconds int    `json:"countdown_seconds,omitempty"`
}

// Orchestrator drives the checkout flow: order submission, then either the
// cash finalization or the QRIS token-and-countdown path. A failed step
// leaves the order in whatever status it last reached, with no rollback.
type Orchestrator struct {
	orders  *order.Service
	gateway Gateway
	config  *config.Config
	logger  *logrus.Logger

	// baseCtx outlives individual requests; countdowns are cancelled on
	// shutdown, not when the submitting request returns
	baseCtx context.Context

	mu    sync.Mutex
	flows map[uint]*Flow
}

// NewOrchestrator creates a payment orchestrator
func NewOrchestrator(baseCtx context.Context, orders *order.Service, gateway Gateway, cfg *config.Config, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		orders:  orders,
		gateway: gateway,
		config:  cfg,
		logger:  logger,
		baseCtx: baseCtx,
		flows:   make(map[uint]*Flow),
	}
}

// Checkout submits the cart as an order and runs the chosen payment path.
//
// The order write is awaited before any token request is issued, so a token
// is never requested for an order that does not exist.
func (o *Orchestrator) Checkout(ctx context.Context, crt *cart.Cart, tableNumber, note string, method order.PaymentMethod) (*CheckoutResult, error) {
	flow := &Flow{state: StateSelecting}

	flow.transition(StateSubmitting)
	orderID, err := o.orders.Submit(ctx, crt, tableNumber, note, method)
	if err != nil {
		flow.transition(StateFailed)
		return nil, err
	}

	flow.OrderID = orderID
	o.track(flow)

	if method == order.MethodCash {
		// Submit already set the cash statuses; ConfirmCash keeps the
		// original's explicit confirmation write
		if err := o.orders.ConfirmCash(ctx, orderID); err != nil {
			flow.transition(StateFailed)
			return nil, err
		}
		flow.transition(StateFinalized)
		o.untrack(orderID)
		return &CheckoutResult{OrderID: orderID, State: StateFinalized}, nil
	}

	token, err := o.requestToken(ctx, flow, orderID, crt.Total())
	if err != nil {
		return nil, err
	}

	o.startCountdown(flow, orderID, token)

	return &CheckoutResult{
		OrderID:          orderID,
		State:            StateCountdown,
		Token:            token,
		CountdownSeconds: o.config.Payment.CountdownSeconds,
	}, nil
}

// RetryToken re-requests a token for a QRIS order stuck awaiting payment.
// Idempotent: an already-issued token is returned as is.
func (o *Orchestrator) RetryToken(ctx context.Context, orderID uint) (*CheckoutResult, error) {
	ord, err := o.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord.PaymentMethod != order.MethodQRIS {
		return nil, apperrors.Validation("order is not a QRIS order")
	}
	if ord.PaymentStatus != order.PaymentStatusPending {
		return nil, apperrors.Validation("order is not awaiting payment")
	}

	if ord.SnapToken != "" {
		return &CheckoutResult{
			OrderID:          orderID,
			State:            StateCountdown,
			Token:            ord.SnapToken,
			CountdownSeconds: o.config.Payment.CountdownSeconds,
		}, nil
	}

	flow := &Flow{OrderID: orderID, state: StateSubmitting}
	o.track(flow)

	token, err := o.requestToken(ctx, flow, orderID, ord.TotalAmount)
	if err != nil {
		return nil, err
	}

	o.startCountdown(flow, orderID, token)

	return &CheckoutResult{
		OrderID:          orderID,
		State:            StateCountdown,
		Token:            token,
		CountdownSeconds: o.config.Payment.CountdownSeconds,
	}, nil
}

// FlowState returns the tracked flow for an order, if any
func (o *Orchestrator) FlowState(orderID uint) (*Flow, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	flow, ok := o.flows[orderID]
	return flow, ok
}

func (o *Orchestrator) requestToken(ctx context.Context, flow *Flow, orderID uint, amount int64) (string, error) {
	flow.transition(StateRequestingToken)

	token, err := o.gateway.CreateTransaction(ctx, orderRef(orderID), amount)
	if err != nil {
		// The order stays awaiting_payment; RetryToken covers recovery
		flow.transition(StateFailed)
		return "", err
	}

	if err := o.orders.AttachToken(ctx, orderID, token); err != nil {
		flow.transition(StateFailed)
		return "", err
	}

	flow.mu.Lock()
	flow.Token = token
	flow.mu.Unlock()

	return token, nil
}

func (o *Orchestrator) startCountdown(flow *Flow, orderID uint, token string) {
	countdown := NewCountdown(o.config.Payment.CountdownSeconds)

	flow.mu.Lock()
	flow.countdown = countdown
	flow.state = StateCountdown
	flow.mu.Unlock()

	countdown.Start(o.baseCtx, func() {
		o.countdownElapsed(flow, orderID, token)
	})
}

// countdownElapsed hands the token over to the widget redemption step and
// drops the flow from tracking; its serverside part is over. Failed flows
// stay tracked so the flow endpoint can report them until a retry replaces
// the entry.
func (o *Orchestrator) countdownElapsed(flow *Flow, orderID uint, token string) {
	flow.transition(StateRedeeming)
	o.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"token":    token,
	}).Info("countdown elapsed, handing token to payment widget")
	o.untrack(orderID)
}

func (o *Orchestrator) track(flow *Flow) {
	o.mu.Lock()
	o.flows[flow.OrderID] = flow
	o.mu.Unlock()
}

func (o *Orchestrator) untrack(orderID uint) {
	o.mu.Lock()
	delete(o.flows, orderID)
	o.mu.Unlock()
}

// orderRef builds the gateway-facing order reference. The timestamp suffix
// keeps every transaction request unique, so a retry after a failed request
// never collides with the earlier reference at the gateway.
func orderRef(orderID uint) string {
	return fmt.Sprintf("ORD-%05d-%d", orderID, time.Now().Unix())
}

// ParseOrderRef recovers the internal order ID from a gateway order
// reference produced by orderRef.
func ParseOrderRef(ref string) (uint, error) {
	parts := strings.Split(ref, "-")
	if len(parts) != 3 || parts[0] != "ORD" {
		return 0, apperrors.Validation("malformed order reference")
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("malformed order reference")
	}
	return uint(id), nil
}
