package adjustment

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Action is the direction of one stock adjustment line.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
)

var (
	ErrDuplicateProduct    = errors.New("product is already in the adjustment list")
	ErrUnknownProduct      = errors.New("product is not in the adjustment list")
	ErrInvalidAction       = errors.New("action must be increase or decrease")
	ErrQuantityNotPositive = errors.New("quantity must be greater than zero")
	ErrInsufficientStock   = errors.New("decrease quantity exceeds current stock")
	ErrEmptyBatch          = errors.New("no adjustment lines to submit")
)

// Line is one scanned product awaiting adjustment. Lines exist only inside a
// Session; nothing is persisted until the whole batch is submitted.
type Line struct {
	ProductID    int    `json:"product_id"`
	ProductName  string `json:"-"`
	CurrentStock int    `json:"current_stock"`
	Action       Action `json:"action"`
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason"`
}

// Session accumulates barcode-scanned lines for a single adjustment batch.
// It is per-request-cycle state: submit or abandon discards it.
type Session struct {
	lines []Line
}

func NewSession() *Session {
	return &Session{}
}

// Add appends a scanned product. Scanning the same product twice is rejected
// so the operator edits the existing line instead of silently doubling it.
func (s *Session) Add(line Line) error {
	for _, l := range s.lines {
		if l.ProductID == line.ProductID {
			return fmt.Errorf("%q: %w", line.ProductName, ErrDuplicateProduct)
		}
	}
	if line.Action == "" {
		line.Action = ActionIncrease
	}
	if line.Quantity == 0 {
		line.Quantity = 1
	}
	s.lines = append(s.lines, line)
	return nil
}

// SetAction updates the direction of one line.
func (s *Session) SetAction(productID int, action Action) error {
	if action != ActionIncrease && action != ActionDecrease {
		return ErrInvalidAction
	}
	return s.update(productID, func(l *Line) { l.Action = action })
}

// SetQuantity updates the quantity of one line.
func (s *Session) SetQuantity(productID, quantity int) error {
	return s.update(productID, func(l *Line) { l.Quantity = quantity })
}

// SetReason updates the free-text reason of one line.
func (s *Session) SetReason(productID int, reason string) error {
	return s.update(productID, func(l *Line) { l.Reason = reason })
}

// Remove drops one line from the batch.
func (s *Session) Remove(productID int) error {
	for i, l := range s.lines {
		if l.ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return nil
		}
	}
	return ErrUnknownProduct
}

func (s *Session) update(productID int, apply func(*Line)) error {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			apply(&s.lines[i])
			return nil
		}
	}
	return ErrUnknownProduct
}

// Lines returns the batch in scan order.
func (s *Session) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Session) Len() int {
	return len(s.lines)
}

// Clear discards every line, as navigating away from the page would.
func (s *Session) Clear() {
	s.lines = nil
}

// Validate enforces the client-side rules before any network call is made:
// every quantity must be positive and a decrease may not exceed the stock the
// product had when it was scanned.
func (s *Session) Validate() error {
	if len(s.lines) == 0 {
		return ErrEmptyBatch
	}
	for _, l := range s.lines {
		if l.Action != ActionIncrease && l.Action != ActionDecrease {
			return fmt.Errorf("%q: %w", l.ProductName, ErrInvalidAction)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("%q: %w", l.ProductName, ErrQuantityNotPositive)
		}
		if l.Action == ActionDecrease && l.Quantity > l.CurrentStock {
			return fmt.Errorf("%q: %w (have %d, want -%d)", l.ProductName, ErrInsufficientStock, l.CurrentStock, l.Quantity)
		}
	}
	return nil
}

// Payload marshals the whole batch as the single-array body the backend's
// adjust endpoint expects. It does not Validate; callers do that first.
func (s *Session) Payload() ([]byte, error) {
	return json.Marshal(s.lines)
}

// ProcessedCount pulls the number of applied items out of a backend adjust
// response. Per-item results are otherwise ignored; the dashboard only ever
// showed a count in the success message. Falls back to the batch size the
// caller supplies when the response carries nothing recognizable.
func ProcessedCount(respBody []byte, fallback int) int {
	var parsed struct {
		Processed int               `json:"processed"`
		Results   []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(respBody, &parsed); err == nil {
		if parsed.Processed > 0 {
			return parsed.Processed
		}
		if len(parsed.Results) > 0 {
			return len(parsed.Results)
		}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(respBody, &items); err == nil && len(items) > 0 {
		return len(items)
	}
	return fallback
}
