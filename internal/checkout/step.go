package checkout

// Step is a checkout stage. Steps only ever move forward.
type Step string

const (
	StepCart         Step = "cart"
	StepAuth         Step = "auth"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

type StepInfo struct {
	ID          Step
	Title       string
	Description string
}

var Steps = []StepInfo{
	{ID: StepCart, Title: "Review Cart", Description: "Review your selected items"},
	{ID: StepAuth, Title: "Authentication", Description: "Sign in to continue"},
	{ID: StepPayment, Title: "Payment", Description: "Choose payment method"},
	{ID: StepConfirmation, Title: "Confirmation", Description: "Complete your order"},
}

// Index is the position of s in Steps, or -1.
func (s Step) Index() int {
	for i, info := range Steps {
		if info.ID == s {
			return i
		}
	}
	return -1
}
