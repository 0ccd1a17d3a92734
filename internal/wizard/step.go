package wizard

import "fmt"

// Step is one screen of the venue creation wizard.
type Step int

const (
	StepName Step = iota + 1
	StepDescription
	StepLocation
	StepPricing
	StepImages
	StepSummary
)

// TotalSteps is the number of wizard steps.
const TotalSteps = int(StepSummary)

// edge holds the legal moves out of a step. A zero Step means no move.
type edge struct {
	forward Step
	back    Step
}

var transitions = map[Step]edge{
	StepName:        {forward: StepDescription},
	StepDescription: {forward: StepLocation, back: StepName},
	StepLocation:    {forward: StepPricing, back: StepDescription},
	StepPricing:     {forward: StepImages, back: StepLocation},
	StepImages:      {forward: StepSummary, back: StepPricing},
	StepSummary:     {back: StepImages},
}

var stepTitles = map[Step]string{
	StepName:        "Name",
	StepDescription: "Description",
	StepLocation:    "Location",
	StepPricing:     "Pricing & capacity",
	StepImages:      "Images",
	StepSummary:     "Summary",
}

// String returns the step title.
func (s Step) String() string {
	if title, ok := stepTitles[s]; ok {
		return title
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Valid reports whether s is one of the six wizard steps.
func (s Step) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsLast reports whether s is the summary step, where advancing submits.
func (s Step) IsLast() bool {
	return transitions[s].forward == 0 && s.Valid()
}

// Next returns the step after s and whether one exists.
func (s Step) Next() (Step, bool) {
	e, ok := transitions[s]
	if !ok || e.forward == 0 {
		return s, false
	}
	return e.forward, true
}

// Prev returns the step before s and whether one exists.
func (s Step) Prev() (Step, bool) {
	e, ok := transitions[s]
	if !ok || e.back == 0 {
		return s, false
	}
	return e.back, true
}
