// Package checkout drives one visitor through cart review, sign-in, the
// simulated payment step and the order confirmation.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quote-storefront/internal/auth"
	"quote-storefront/internal/model"

	"go.uber.org/zap"
)

var (
	ErrInvalidTransition = errors.New("checkout: action not available in the current step")
	ErrEmptyCart         = errors.New("checkout: cart is empty")
	ErrProcessing        = errors.New("checkout: order is already being processed")
	ErrNotSignedIn       = errors.New("checkout: sign-in required")
	ErrNotifyFailed      = errors.New("checkout: order notification failed")
)

const (
	noticeEmailSent  = "Order confirmation email sent!"
	msgNotifyFailed  = "We couldn't place your order. Please try again."
	msgNotSignedIn   = "Please sign in again to complete your order."
	msgEmptyCart     = "Your cart is empty."
	msgCartReadError = "We couldn't load your cart. Please try again."
)

// Cart is the part of the cart store checkout may touch.
type Cart interface {
	Items(ctx context.Context) ([]model.CartItem, error)
	RemoveItem(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context) error
}

type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*auth.User, error)
}

// Notifier delivers the order summary to the chat channel.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// Mailer sends the confirmation email. It has no failure result.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *model.Order)
}

type Deps struct {
	Cart     Cart
	Auth     Authenticator
	Notifier Notifier
	Mailer   Mailer
	Delay    Timer
	ChatURL  string
	Log      *zap.Logger

	NewOrderNumber func() string
	Now            func() time.Time
}

// View is a snapshot of the machine for rendering.
type View struct {
	Step       Step
	Processing bool
	Error      string
	Order      *model.Order
	Done       bool
}

type Machine struct {
	mu         sync.Mutex
	step       Step
	history    []Step
	processing bool
	errMsg     string
	notice     string
	order      *model.Order
	done       bool

	deps Deps
}

func NewMachine(deps Deps) *Machine {
	if deps.NewOrderNumber == nil {
		deps.NewOrderNumber = NewOrderNumber
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Delay == nil {
		deps.Delay = Delay(0)
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Machine{
		step:    StepCart,
		history: []Step{StepCart},
		deps:    deps,
	}
}

func (m *Machine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return View{
		Step:       m.step,
		Processing: m.processing,
		Error:      m.errMsg,
		Order:      m.order,
		Done:       m.done,
	}
}

// History lists every step entered, in order.
func (m *Machine) History() []Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Step(nil), m.history...)
}

// TakeNotice returns the pending toast once.
func (m *Machine) TakeNotice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.notice
	m.notice = ""
	return n
}

// Proceed leaves the cart step: to auth when nobody is signed in, else to payment.
func (m *Machine) Proceed(ctx context.Context, user *auth.User) error {
	if err := m.expect(StepCart); err != nil {
		return err
	}

	items, err := m.deps.Cart.Items(ctx)
	if err != nil {
		m.setError(msgCartReadError)
		return fmt.Errorf("read cart: %w", err)
	}
	if len(items) == 0 {
		m.setError(msgEmptyCart)
		return ErrEmptyCart
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepCart {
		return ErrInvalidTransition
	}
	m.errMsg = ""
	if user == nil {
		m.advance(StepAuth)
	} else {
		m.advance(StepPayment)
	}
	return nil
}

// RemoveItem drops an item from the cart while the cart is under review.
func (m *Machine) RemoveItem(ctx context.Context, itemID string) error {
	if err := m.expect(StepCart); err != nil {
		return err
	}
	if err := m.deps.Cart.RemoveItem(ctx, itemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// SignIn authenticates in the auth step. A provider failure keeps the step and
// records the provider's message for display.
func (m *Machine) SignIn(ctx context.Context, email, password string) (*auth.User, error) {
	if err := m.expect(StepAuth); err != nil {
		return nil, err
	}
	m.setError("")

	user, err := m.deps.Auth.SignIn(ctx, email, password)
	if err != nil {
		m.setError(auth.Message(err))
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepAuth {
		return nil, ErrInvalidTransition
	}
	m.advance(StepPayment)
	return user, nil
}

// Complete places the order. The chat notification is awaited, then the
// confirmation email, then the processing delay. A failed notification keeps
// the payment step so the order can be submitted again.
func (m *Machine) Complete(ctx context.Context, user *auth.User) (*model.Order, error) {
	m.mu.Lock()
	switch {
	case m.step != StepPayment:
		m.mu.Unlock()
		return nil, ErrInvalidTransition
	case m.processing:
		m.mu.Unlock()
		return nil, ErrProcessing
	case user == nil:
		m.errMsg = msgNotSignedIn
		m.mu.Unlock()
		return nil, ErrNotSignedIn
	}
	m.processing = true
	m.errMsg = ""
	m.mu.Unlock()

	items, err := m.deps.Cart.Items(ctx)
	if err != nil {
		return nil, m.fail(msgCartReadError, fmt.Errorf("read cart: %w", err))
	}
	if len(items) == 0 {
		return nil, m.fail(msgEmptyCart, ErrEmptyCart)
	}

	order := &model.Order{
		Number:        m.deps.NewOrderNumber(),
		CreatedAt:     m.deps.Now(),
		CustomerEmail: user.Email,
		CustomerName:  user.DisplayName,
		Items:         items,
		Total:         model.Total(items),
	}

	if err := m.deps.Notifier.SendMessage(ctx, OrderSummary(order)); err != nil {
		m.deps.Log.Error("order notification failed",
			zap.String("order_number", order.Number),
			zap.Error(err),
		)
		return nil, m.fail(msgNotifyFailed, fmt.Errorf("%w: %v", ErrNotifyFailed, err))
	}

	m.deps.Mailer.SendOrderConfirmation(ctx, order)

	// the order is out at this point; a cut-short delay still confirms it
	if err := m.deps.Delay.Wait(ctx); err != nil {
		m.deps.Log.Debug("processing delay cut short", zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.processing = false
	m.order = order
	m.notice = noticeEmailSent
	m.advance(StepConfirmation)

	m.deps.Log.Info("order placed",
		zap.String("order_number", order.Number),
		zap.String("customer", order.CustomerEmail),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.String()),
	)
	return order, nil
}

// Continue ends the flow: the cart is cleared and the chat link to follow is returned.
func (m *Machine) Continue(ctx context.Context) (string, error) {
	if err := m.expect(StepConfirmation); err != nil {
		return "", err
	}
	if err := m.deps.Cart.ClearCart(ctx); err != nil {
		return "", fmt.Errorf("clear cart: %w", err)
	}

	m.mu.Lock()
	m.done = true
	m.mu.Unlock()
	return m.deps.ChatURL, nil
}

func (m *Machine) expect(step Step) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != step || m.done {
		return ErrInvalidTransition
	}
	return nil
}

func (m *Machine) setError(msg string) {
	m.mu.Lock()
	m.errMsg = msg
	m.mu.Unlock()
}

func (m *Machine) fail(msg string, err error) error {
	m.mu.Lock()
	m.processing = false
	m.errMsg = msg
	m.mu.Unlock()
	return err
}

// advance must be called with mu held.
func (m *Machine) advance(next Step) {
	if next.Index() <= m.step.Index() {
		panic(fmt.Sprintf("checkout: backward transition %s -> %s", m.step, next))
	}
	m.step = next
	m.history = append(m.history, next)
}
