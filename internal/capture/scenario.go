package capture

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
)

// Step is a single interaction with the page under test.
type Step interface {
	Run(page *rod.Page) error
	fmt.Stringer
}

// Navigate opens URL and waits for the load event.
type Navigate struct {
	URL string
}

// Run implements Step.
func (s Navigate) Run(page *rod.Page) error {
	if err := page.Navigate(s.URL); err != nil {
		return errors.Wrapf(err, "unable to navigate to %s", s.URL)
	}
	return page.WaitLoad()
}

func (s Navigate) String() string {
	return "navigate to " + s.URL
}

// WaitText waits until an element matching Selector with text matching Pattern is rendered.
type WaitText struct {
	Selector string
	Pattern  string
}

// Run implements Step.
func (s WaitText) Run(page *rod.Page) error {
	_, err := page.ElementR(s.Selector, s.Pattern)
	return err
}

func (s WaitText) String() string {
	return fmt.Sprintf("wait for %s /%s/", s.Selector, s.Pattern)
}

// Fill replaces the content of the input element matching Selector with Text.
type Fill struct {
	Selector string
	Text     string
}

// Run implements Step.
func (s Fill) Run(page *rod.Page) error {
	el, err := page.Element(s.Selector)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(s.Text)
}

func (s Fill) String() string {
	return fmt.Sprintf("fill %s with %q", s.Selector, s.Text)
}

// Click clicks the element matching Selector whose text matches Pattern.
type Click struct {
	Selector string
	Pattern  string
}

// Run implements Step.
func (s Click) Run(page *rod.Page) error {
	el, err := page.ElementR(s.Selector, s.Pattern)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (s Click) String() string {
	return fmt.Sprintf("click %s /%s/", s.Selector, s.Pattern)
}

// Pause gives the application time to process the previous interactions.
type Pause struct {
	Duration time.Duration
}

// Run implements Step.
func (s Pause) Run(page *rod.Page) error {
	select {
	case <-time.After(s.Duration):
		return nil
	case <-page.GetContext().Done():
		return page.GetContext().Err()
	}
}

func (s Pause) String() string {
	return "pause " + s.Duration.String()
}

// Eval runs JS, a function expression, in the page.
type Eval struct {
	JS string
}

// Run implements Step.
func (s Eval) Run(page *rod.Page) error {
	_, err := page.Eval(s.JS)
	return err
}

func (s Eval) String() string {
	return "eval " + s.JS
}

// DefaultScenario exercises the avatar generator: it enters two prompts and generates an avatar for
// each, then fires a resize so that registered window handlers run as well.
func DefaultScenario() []Step {
	return []Step{
		WaitText{Selector: "h1", Pattern: "Who You Were Meant To Be"},
		Fill{Selector: "textarea", Text: "A futuristic robot with glowing blue eyes"},
		Click{Selector: "button", Pattern: "Create Your Legend"},
		Pause{Duration: 2 * time.Second},
		Fill{Selector: "textarea", Text: "A wizard with a flowing purple cloak"},
		Click{Selector: "button", Pattern: "Create Your Legend"},
		Pause{Duration: 2 * time.Second},
		Eval{JS: `() => window.dispatchEvent(new Event("resize"))`},
	}
}
